package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lfmartins-dev/extrato-ai/internal/api"
	"github.com/lfmartins-dev/extrato-ai/internal/api/handlers"
	"github.com/lfmartins-dev/extrato-ai/internal/config"
	"github.com/lfmartins-dev/extrato-ai/internal/jobs/inmemory"
	"github.com/lfmartins-dev/extrato-ai/internal/llm"
	"github.com/lfmartins-dev/extrato-ai/internal/logger"
	"github.com/lfmartins-dev/extrato-ai/internal/statement"
	"github.com/lfmartins-dev/extrato-ai/internal/storage"
)

func main() {
	cfg := config.Load()

	var (
		port      = flag.String("port", cfg.Port, "HTTP server port")
		uploadDir = flag.String("upload-dir", cfg.UploadDir, "directory for temporary PDF uploads")
		outputDir = flag.String("output-dir", cfg.OutputDir, "directory for generated documents")
	)
	flag.Parse()

	log := logger.New()

	if cfg.APIKey == "" {
		log.Warn().Msg("No server API key configured - requests must carry their own key")
	}

	ctx := context.Background()

	uploads, err := storage.NewLocal(*uploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create upload directory")
	}

	var outputs storage.Store
	if cfg.OutputBucket != "" {
		gcs, err := storage.NewGCS(ctx, cfg.OutputBucket, "resultados", cfg.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to output bucket")
		}
		defer gcs.Close()
		outputs = gcs
		log.Info().Str("bucket", cfg.OutputBucket).Msg("Retaining documents in GCS")
	} else {
		local, err := storage.NewLocal(*outputDir)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create output directory")
		}
		outputs = local
	}

	processor := statement.NewProcessor(llm.Config{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
	}, outputs, cfg.PageTimeout, log)

	jobStore := inmemory.NewStore()
	defaults := handlers.Defaults{
		Bank:    cfg.DefaultBank,
		Branch:  cfg.DefaultBranch,
		Account: cfg.DefaultAccount,
	}
	h := handlers.New(processor, uploads, outputs, jobStore, defaults, cfg.APIKey, cfg.MaxUploadBytes, log)

	server := &http.Server{
		Addr:    ":" + *port,
		Handler: api.NewRouter(h, log),
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
