// Package statement assembles the per-page extraction results of a whole
// bank statement and drives the end-to-end processing job.
package statement

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lfmartins-dev/extrato-ai/internal/extract"
)

// PageExtractor is the per-page extraction dependency of the assembler.
type PageExtractor interface {
	ExtractPage(ctx context.Context, imagePNG []byte, page int, lastDate string) (*extract.PageResult, error)
}

// ProgressFunc receives one status notification per processed page.
// page is 1-based and strictly increasing across calls.
type ProgressFunc func(page, total int, message string)

// Assembler runs the extractor over all pages in order, carrying the last
// explicit transaction date forward so blank dates can inherit it.
type Assembler struct {
	extractor   PageExtractor
	pageTimeout time.Duration
	log         zerolog.Logger
}

// NewAssembler creates an assembler. pageTimeout bounds each model call;
// zero disables the bound.
func NewAssembler(extractor PageExtractor, pageTimeout time.Duration, log zerolog.Logger) *Assembler {
	return &Assembler{extractor: extractor, pageTimeout: pageTimeout, log: log}
}

// Run processes all page images sequentially and returns the assembled
// transaction list with dates backward-filled. A failed page contributes
// no records and a progress message naming it; it never aborts the run.
func (a *Assembler) Run(ctx context.Context, pages [][]byte, progress ProgressFunc) []extract.Transaction {
	total := len(pages)
	all := make([]extract.Transaction, 0, total*8)
	lastDate := ""

	for i, img := range pages {
		if ctx.Err() != nil {
			a.log.Warn().Int("page", i+1).Msg("Assembly canceled")
			break
		}

		page := i + 1
		progress(page, total, fmt.Sprintf("Analisando página %d de %d...", page, total))

		result, err := a.extractPage(ctx, img, page, lastDate)
		if err != nil {
			a.log.Error().Err(err).Int("page", page).Msg("Page extraction failed")
			progress(page, total, fmt.Sprintf("ERRO na página %d: %v", page, err))
			continue
		}

		if len(result.Records) == 0 {
			notes := result.Notes
			if notes == "" {
				notes = "Sem lançamentos"
			}
			progress(page, total, fmt.Sprintf("Página %d: %s", page, notes))
			continue
		}

		if d := lastExplicitDate(result.Records); d != "" {
			lastDate = d
		}
		all = append(all, result.Records...)

		progress(page, total, fmt.Sprintf("Página %d: %d lançamentos extraídos.", page, len(result.Records)))
	}

	fillMissingDates(all)
	return all
}

func (a *Assembler) extractPage(ctx context.Context, img []byte, page int, lastDate string) (*extract.PageResult, error) {
	if a.pageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.pageTimeout)
		defer cancel()
	}
	return a.extractor.ExtractPage(ctx, img, page, lastDate)
}

// lastExplicitDate returns the date of the last record on the page that
// has one, or empty. This becomes the carry-forward value for the next page.
func lastExplicitDate(records []extract.Transaction) string {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Date != "" {
			return records[i].Date
		}
	}
	return ""
}

// fillMissingDates assigns to every record with an empty date the date of
// the nearest preceding record that has one. Records before the first
// explicit date keep an empty date; the document generator sends those to
// the sentinel month group.
func fillMissingDates(records []extract.Transaction) {
	last := ""
	for i := range records {
		if records[i].Date != "" {
			last = records[i].Date
		} else {
			records[i].Date = last
		}
	}
}
