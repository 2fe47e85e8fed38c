package statement

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfmartins-dev/extrato-ai/internal/llm"
	"github.com/lfmartins-dev/extrato-ai/internal/pdf"
	"github.com/lfmartins-dev/extrato-ai/internal/pdf/pdftest"
	"github.com/lfmartins-dev/extrato-ai/internal/storage"
)

// scriptedClient returns one canned model reply per call, in order.
type scriptedClient struct {
	replies []string
	calls   int
}

func (c *scriptedClient) Complete(context.Context, llm.Request) (string, error) {
	if c.calls >= len(c.replies) {
		return "", fmt.Errorf("unexpected call %d", c.calls+1)
	}
	reply := c.replies[c.calls]
	c.calls++
	return reply, nil
}

func writeTestPDF(t *testing.T, pages int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "extrato.pdf")
	require.NoError(t, os.WriteFile(path, pdftest.Minimal(pages), 0o644))
	return path
}

func newTestProcessor(t *testing.T, client llm.Client) (*Processor, *storage.Local) {
	t.Helper()
	outputs, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	p := NewProcessor(llm.Config{Provider: llm.ProviderOpenAI, APIKey: "base-key"}, outputs, time.Minute, zerolog.Nop())
	p.newClient = func(context.Context, llm.Config) (llm.Client, error) {
		return client, nil
	}
	return p, outputs
}

func TestProcessEndToEnd(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"lancamentos": [{"data": "05/03/2024", "tipo": "D", "descricao": "PIX ENVIADO", "valor": "150,00"}], "pagina_tem_continuacao": true}`,
		`{"lancamentos": [{"data": "", "tipo": "C", "descricao": "TED RECEBIDA", "valor": "1.200,00"}]}`,
	}}
	p, outputs := newTestProcessor(t, client)

	var events []Event
	result, err := p.Process(context.Background(), Request{
		JobID:   "ab12cd34",
		PDFPath: writeTestPDF(t, 2),
		Bank:    "BRADESCO",
		Branch:  "3050",
		Account: "7223-0",
	}, func(e Event) { events = append(events, e) })

	require.NoError(t, err)
	assert.Equal(t, "movimentacao_ab12cd34.docx", result.OutputName)
	assert.Equal(t, 2, result.RecordCount)
	assert.Equal(t, 2, client.calls)

	// The generated document landed in the output store.
	r, err := outputs.Open(context.Background(), result.OutputName)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	r.Close()
	assert.Equal(t, "PK", string(data[:2]))

	require.NotEmpty(t, events)
	assert.Contains(t, events[0].Message, "Convertendo PDF")
	assert.Contains(t, events[1].Message, "PDF tem 2 páginas")

	// Page indexes never regress, and the closing generation event sits
	// at the last page.
	lastPage := 0
	for _, e := range events {
		assert.Equal(t, EventProgress, e.Type)
		if e.Page > 0 {
			assert.GreaterOrEqual(t, e.Page, lastPage)
			lastPage = e.Page
		}
	}
	final := events[len(events)-1]
	assert.Contains(t, final.Message, "Gerando documento")
	assert.Equal(t, 2, final.Page)
	assert.Equal(t, 2, final.Total)
}

func TestProcessMalformedPageIsIsolated(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`Não consegui identificar uma tabela nesta página.`,
		`{"lancamentos": [{"data": "10/03/2024", "tipo": "D", "descricao": "BOLETO", "valor": "80,00"}]}`,
	}}
	p, _ := newTestProcessor(t, client)

	var events []Event
	result, err := p.Process(context.Background(), Request{
		JobID:   "job1",
		PDFPath: writeTestPDF(t, 2),
	}, func(e Event) { events = append(events, e) })

	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordCount)

	found := false
	for _, e := range events {
		if e.Page == 1 && strings.HasPrefix(e.Message, "ERRO na página 1") {
			found = true
		}
	}
	assert.True(t, found, "expected an ERRO progress event for page 1")
}

func TestProcessNoTransactions(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"lancamentos": [], "observacoes": "Página de capa"}`,
	}}
	p, _ := newTestProcessor(t, client)

	_, err := p.Process(context.Background(), Request{
		JobID:   "job2",
		PDFPath: writeTestPDF(t, 1),
	}, func(Event) {})

	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestProcessUnreadablePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quebrado.pdf")
	require.NoError(t, os.WriteFile(path, []byte("isto não é um PDF"), 0o644))

	p, _ := newTestProcessor(t, &scriptedClient{})

	_, err := p.Process(context.Background(), Request{JobID: "job3", PDFPath: path}, func(Event) {})
	require.Error(t, err)

	var unreadable *pdf.UnreadableError
	assert.True(t, errors.As(err, &unreadable))
}

func TestProcessRequestKeyOverridesServerKey(t *testing.T) {
	client := &scriptedClient{replies: []string{
		`{"lancamentos": [{"data": "01/01/2024", "tipo": "D", "descricao": "X", "valor": "1,00"}]}`,
	}}
	p, _ := newTestProcessor(t, client)

	var gotKey string
	p.newClient = func(_ context.Context, cfg llm.Config) (llm.Client, error) {
		gotKey = cfg.APIKey
		return client, nil
	}

	_, err := p.Process(context.Background(), Request{
		JobID:   "job4",
		PDFPath: writeTestPDF(t, 1),
		APIKey:  "chave-do-usuario",
	}, func(Event) {})

	require.NoError(t, err)
	assert.Equal(t, "chave-do-usuario", gotKey)
}
