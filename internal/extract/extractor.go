package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lfmartins-dev/extrato-ai/internal/llm"
)

// PageExtractor extracts the transactions of a single statement page.
type PageExtractor struct {
	client llm.Client
	log    zerolog.Logger
}

// NewPageExtractor creates an extractor backed by the given vision client.
func NewPageExtractor(client llm.Client, log zerolog.Logger) *PageExtractor {
	return &PageExtractor{client: client, log: log}
}

// pagePayload mirrors the model's reply contract. Fields are optional on
// the wire; decodePage applies the defaults.
type pagePayload struct {
	Lancamentos []struct {
		Data      string `json:"data"`
		Tipo      string `json:"tipo"`
		Descricao string `json:"descricao"`
		Valor     string `json:"valor"`
	} `json:"lancamentos"`
	PaginaTemContinuacao bool   `json:"pagina_tem_continuacao"`
	Observacoes          string `json:"observacoes"`
}

// ExtractPage sends one page image to the model and parses the reply.
// page is 1-based and used only for prompts and diagnostics. lastDate is
// the most recent explicit transaction date from earlier pages, or empty.
func (e *PageExtractor) ExtractPage(ctx context.Context, imagePNG []byte, page int, lastDate string) (*PageResult, error) {
	raw, err := e.client.Complete(ctx, llm.Request{
		System:   systemPrompt,
		Prompt:   buildPagePrompt(page, lastDate),
		ImagePNG: imagePNG,
	})
	if err != nil {
		return nil, err
	}

	result, err := decodePage(raw, page)
	if err != nil {
		return nil, err
	}

	for _, tx := range result.Records {
		if warn := CheckAmount(tx.Amount); warn != nil {
			e.log.Warn().Int("page", page).Str("valor", tx.Amount).Err(warn).
				Msg("Suspicious amount in extracted record")
		}
	}

	e.log.Debug().Int("page", page).Int("records", len(result.Records)).
		Bool("continuation", result.HasContinuation).Msg("Page extracted")

	return result, nil
}

// decodePage parses a raw model reply into a PageResult. The repair
// sequence is: strip a markdown fence wrapper, try strict JSON, then fall
// back to the substring between the first '{' and the last '}'.
func decodePage(raw string, page int) (*PageResult, error) {
	clean := stripFences(raw)

	var payload pagePayload
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		start := strings.Index(clean, "{")
		end := strings.LastIndex(clean, "}")
		if start == -1 || end <= start {
			return nil, newMalformedResponseError(page, raw)
		}
		if err := json.Unmarshal([]byte(clean[start:end+1]), &payload); err != nil {
			return nil, newMalformedResponseError(page, raw)
		}
	}

	result := &PageResult{
		Records:         make([]Transaction, 0, len(payload.Lancamentos)),
		HasContinuation: payload.PaginaTemContinuacao,
		Notes:           payload.Observacoes,
	}
	for _, l := range payload.Lancamentos {
		result.Records = append(result.Records, Transaction{
			Date:        strings.TrimSpace(l.Data),
			Kind:        ParseKind(l.Tipo),
			Description: strings.TrimSpace(l.Descricao),
			Amount:      CleanAmount(l.Valor),
		})
	}

	return result, nil
}

// stripFences removes a leading/trailing markdown code fence wrapper:
// the first line is dropped when the reply starts with ``` and a trailing
// ``` line is dropped if present.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	} else {
		s = s[3:]
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = s[:len(s)-3]
	}

	return strings.TrimSpace(s)
}
