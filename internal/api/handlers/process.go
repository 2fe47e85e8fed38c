package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lfmartins-dev/extrato-ai/internal/jobs"
	"github.com/lfmartins-dev/extrato-ai/internal/pdf"
	"github.com/lfmartins-dev/extrato-ai/internal/statement"
)

// Process handles POST /api/process: a multipart upload answered with a
// server-sent event stream that ends in a done or error event.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	stream, ok := newSSEWriter(w)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		stream.send(statement.Errorf("Upload inválido ou acima do tamanho máximo permitido"))
		return
	}

	file, _, err := r.FormFile("pdf")
	apiKey := r.FormValue("api_key")
	if apiKey == "" {
		apiKey = h.serverKey
	}
	if err != nil || apiKey == "" {
		stream.send(statement.Errorf("PDF e chave API são obrigatórios"))
		return
	}
	defer file.Close()

	jobID := uuid.NewString()[:8]
	uploadName := jobID + ".pdf"
	if err := h.uploads.Save(r.Context(), uploadName, file); err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to save upload")
		stream.send(statement.Errorf("Erro geral: %v", err))
		return
	}

	req := statement.Request{
		JobID:   jobID,
		PDFPath: h.uploads.Path(uploadName),
		APIKey:  apiKey,
		Bank:    formValueOr(r, "banco", h.defaults.Bank),
		Branch:  formValueOr(r, "agencia", h.defaults.Branch),
		Account: formValueOr(r, "conta", h.defaults.Account),
	}

	job := &jobs.ExtractionJob{
		JobID:     jobID,
		Status:    jobs.JobStatusPending,
		CreatedAt: time.Now(),
	}
	if err := h.jobs.SaveJob(r.Context(), job); err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to register job")
	}

	stream.send(statement.Progress(0, 0, "Iniciando processamento..."))

	ctx := r.Context()
	events := make(chan statement.Event, 16)
	go func() {
		defer close(events)
		// The upload is temporary regardless of outcome.
		defer h.uploads.Remove(context.Background(), uploadName)

		send := func(e statement.Event) {
			select {
			case events <- e:
			case <-ctx.Done():
			}
		}

		result, err := h.processor.Process(ctx, req, send)
		if err != nil {
			h.log.Error().Err(err).Str("job_id", jobID).Msg("Job failed")
			send(errorEvent(err))
			return
		}
		send(statement.Done(
			fmt.Sprintf("Concluído! %d lançamentos processados.", result.RecordCount),
			result.OutputName,
			result.RecordCount,
		))
	}()

	for e := range events {
		stream.send(e)
		h.trackEvent(job, e)
	}
}

// trackEvent mirrors stream events into the job registry so the job can be
// polled after the stream ends.
func (h *Handler) trackEvent(job *jobs.ExtractionJob, e statement.Event) {
	switch e.Type {
	case statement.EventProgress:
		job.Status = jobs.JobStatusRunning
		if e.Page > 0 {
			job.Page = e.Page
		}
		if e.Total > 0 {
			job.TotalPages = e.Total
		}
	case statement.EventDone:
		now := time.Now()
		job.Status = jobs.JobStatusCompleted
		job.OutputName = e.OutputReference
		job.RecordCount = e.RecordCount
		job.CompletedAt = &now
	case statement.EventError:
		now := time.Now()
		job.Status = jobs.JobStatusFailed
		job.Error = e.Message
		job.CompletedAt = &now
	}
	if err := h.jobs.SaveJob(context.Background(), job); err != nil {
		h.log.Error().Err(err).Str("job_id", job.JobID).Msg("Failed to update job")
	}
}

// errorEvent translates a pipeline error into the terminal stream event.
func errorEvent(err error) statement.Event {
	var unreadable *pdf.UnreadableError
	switch {
	case errors.Is(err, statement.ErrNoTransactions):
		return statement.Errorf("Nenhum lançamento encontrado no PDF.")
	case errors.As(err, &unreadable):
		return statement.Errorf("Não foi possível ler o PDF enviado: %v", unreadable.Err)
	default:
		return statement.Errorf("Erro geral: %v", err)
	}
}

func formValueOr(r *http.Request, key, fallback string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return fallback
}

// sseWriter frames events as server-sent events and flushes each one.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

func newSSEWriter(w http.ResponseWriter) (*sseWriter, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	return &sseWriter{w: w, flusher: flusher}, true
}

func (s *sseWriter) send(e statement.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		return
	}
	fmt.Fprintf(s.w, "data: %s\n\n", payload)
	s.flusher.Flush()
}
