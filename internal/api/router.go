// Package api assembles the HTTP router of the extraction service.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/lfmartins-dev/extrato-ai/internal/api/handlers"
	"github.com/lfmartins-dev/extrato-ai/internal/api/middleware"
)

// NewRouter wires the endpoints behind the service middleware stack.
func NewRouter(h *handlers.Handler, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         3600,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/process", h.Process)
		r.Get("/download/{file}", h.Download)
		r.Get("/jobs/{id}", h.JobStatus)
	})

	return r
}
