// Package handlers implements the HTTP endpoints of the extraction service.
package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lfmartins-dev/extrato-ai/internal/jobs"
	"github.com/lfmartins-dev/extrato-ai/internal/statement"
	"github.com/lfmartins-dev/extrato-ai/internal/storage"
)

// Processor runs one extraction job end to end, emitting progress events.
type Processor interface {
	Process(ctx context.Context, req statement.Request, emit func(statement.Event)) (*statement.Result, error)
}

// Defaults are the statement parameters applied when the client omits them.
type Defaults struct {
	Bank    string
	Branch  string
	Account string
}

// Handler bundles the service endpoints and their dependencies.
type Handler struct {
	processor      Processor
	uploads        *storage.Local
	outputs        storage.Store
	jobs           jobs.Store
	defaults       Defaults
	serverKey      string
	maxUploadBytes int64
	log            zerolog.Logger
}

// New creates the handler set. serverKey is the fallback API key used when
// a request carries none.
func New(processor Processor, uploads *storage.Local, outputs storage.Store, jobStore jobs.Store, defaults Defaults, serverKey string, maxUploadBytes int64, log zerolog.Logger) *Handler {
	return &Handler{
		processor:      processor,
		uploads:        uploads,
		outputs:        outputs,
		jobs:           jobStore,
		defaults:       defaults,
		serverKey:      serverKey,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}
