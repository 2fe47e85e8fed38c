package statement

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lfmartins-dev/extrato-ai/internal/docgen"
	"github.com/lfmartins-dev/extrato-ai/internal/extract"
	"github.com/lfmartins-dev/extrato-ai/internal/llm"
	"github.com/lfmartins-dev/extrato-ai/internal/pdf"
	"github.com/lfmartins-dev/extrato-ai/internal/storage"
)

// ErrNoTransactions reports a statement from which no page yielded a
// single transaction.
var ErrNoTransactions = errors.New("nenhum lançamento encontrado no PDF")

// Request describes one processing job.
type Request struct {
	JobID   string
	PDFPath string
	APIKey  string // overrides the server key when set
	Bank    string
	Branch  string
	Account string
}

// Result is the outcome of a completed job.
type Result struct {
	OutputName  string
	RecordCount int
}

// Processor runs the whole pipeline for one uploaded statement:
// rasterize, extract page by page, assemble, generate the document and
// persist it.
type Processor struct {
	llmConfig   llm.Config
	outputs     storage.Store
	pageTimeout time.Duration
	log         zerolog.Logger

	// newClient is swapped in tests to avoid real provider calls.
	newClient func(ctx context.Context, cfg llm.Config) (llm.Client, error)
}

// NewProcessor wires the pipeline. llmConfig carries the server-wide
// provider settings; a per-request API key takes precedence over its key.
func NewProcessor(llmConfig llm.Config, outputs storage.Store, pageTimeout time.Duration, log zerolog.Logger) *Processor {
	return &Processor{
		llmConfig:   llmConfig,
		outputs:     outputs,
		pageTimeout: pageTimeout,
		log:         log,
		newClient:   llm.New,
	}
}

// Process executes the job, emitting one progress event per step and per
// page. The caller owns terminal events: on success it should emit done,
// on error an error event built from the returned error.
func (p *Processor) Process(ctx context.Context, req Request, emit func(Event)) (*Result, error) {
	log := p.log.With().Str("job_id", req.JobID).Logger()

	// Step 1: rasterize every page at high resolution.
	emit(Progress(0, 0, "Convertendo PDF em imagens de alta resolução..."))
	pages, err := pdf.RasterizeFile(req.PDFPath, pdf.DefaultDPI)
	if err != nil {
		return nil, fmt.Errorf("Process: %w", err)
	}
	log.Info().Int("pages", len(pages)).Msg("PDF rasterized")
	emit(Progress(0, len(pages), fmt.Sprintf("PDF tem %d páginas. Enviando para análise da IA...", len(pages))))

	// Step 2: extract transactions page by page.
	cfg := p.llmConfig
	if req.APIKey != "" {
		cfg.APIKey = req.APIKey
	}
	client, err := p.newClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("Process: %w", err)
	}

	extractor := extract.NewPageExtractor(client, log)
	assembler := NewAssembler(extractor, p.pageTimeout, log)
	records := assembler.Run(ctx, pages, func(page, total int, message string) {
		emit(Progress(page, total, message))
	})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("Process: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoTransactions
	}

	// Step 3: generate and persist the document.
	emit(Progress(len(pages), len(pages), fmt.Sprintf("Gerando documento DOCX com %d lançamentos...", len(records))))
	name := fmt.Sprintf("movimentacao_%s.docx", req.JobID)

	var buf bytes.Buffer
	if err := docgen.Write(&buf, records, docgen.Params{
		Bank:    req.Bank,
		Branch:  req.Branch,
		Account: req.Account,
	}); err != nil {
		return nil, fmt.Errorf("Process: gerar documento: %w", err)
	}
	if err := p.outputs.Save(ctx, name, &buf); err != nil {
		return nil, fmt.Errorf("Process: gravar documento: %w", err)
	}

	log.Info().Str("output", name).Int("records", len(records)).Msg("Job completed")
	return &Result{OutputName: name, RecordCount: len(records)}, nil
}
