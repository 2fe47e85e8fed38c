package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lfmartins-dev/extrato-ai/internal/api/middleware"
)

// JobStatus handles GET /api/jobs/{id}.
func (h *Handler) JobStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, http.StatusNotFound, "Job não encontrado")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, job)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
