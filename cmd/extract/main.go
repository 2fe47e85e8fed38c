package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lfmartins-dev/extrato-ai/internal/config"
	"github.com/lfmartins-dev/extrato-ai/internal/llm"
	"github.com/lfmartins-dev/extrato-ai/internal/logger"
	"github.com/lfmartins-dev/extrato-ai/internal/statement"
	"github.com/lfmartins-dev/extrato-ai/internal/storage"
)

// One-shot extraction: statement PDF in, DOCX out, progress on stderr.
func main() {
	cfg := config.Load()

	var (
		pdfPath = flag.String("pdf", "", "path to the statement PDF (required)")
		out     = flag.String("out", "", "output directory (default: alongside the PDF)")
		bank    = flag.String("banco", cfg.DefaultBank, "bank name for the document header")
		branch  = flag.String("agencia", cfg.DefaultBranch, "branch number for the document header")
		account = flag.String("conta", cfg.DefaultAccount, "account number for the document header")
		apiKey  = flag.String("api-key", cfg.APIKey, "model provider API key")
	)
	flag.Parse()

	log := logger.New()

	if *pdfPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *apiKey == "" {
		log.Fatal().Msg("API key is required (flag -api-key or env)")
	}

	// The processor names its output movimentacao_<job>.docx inside the
	// chosen directory, with the job id taken from the PDF name.
	jobID := strings.TrimSuffix(filepath.Base(*pdfPath), filepath.Ext(*pdfPath))
	outDir := filepath.Dir(*pdfPath)
	if *out != "" {
		outDir = *out
	}

	outputs, err := storage.NewLocal(outDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare output directory")
	}

	processor := statement.NewProcessor(llm.Config{
		Provider: cfg.Provider,
		APIKey:   *apiKey,
		Model:    cfg.Model,
	}, outputs, cfg.PageTimeout, log)

	result, err := processor.Process(context.Background(), statement.Request{
		JobID:   jobID,
		PDFPath: *pdfPath,
		Bank:    *bank,
		Branch:  *branch,
		Account: *account,
	}, func(e statement.Event) {
		fmt.Fprintln(os.Stderr, e.Message)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Extraction failed")
	}

	log.Info().
		Int("records", result.RecordCount).
		Str("output", filepath.Join(outDir, result.OutputName)).
		Msg("Extraction completed")
}
