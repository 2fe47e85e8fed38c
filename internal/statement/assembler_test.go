package statement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfmartins-dev/extrato-ai/internal/extract"
)

// fakeExtractor replays one canned result (or error) per page and records
// the lastDate hint it received for each call.
type fakeExtractor struct {
	results   []*extract.PageResult
	errs      []error
	lastDates []string
}

func (f *fakeExtractor) ExtractPage(_ context.Context, _ []byte, page int, lastDate string) (*extract.PageResult, error) {
	f.lastDates = append(f.lastDates, lastDate)
	if err := f.errs[page-1]; err != nil {
		return nil, err
	}
	return f.results[page-1], nil
}

func tx(date, kind, desc, amount string) extract.Transaction {
	return extract.Transaction{Date: date, Kind: extract.Kind(kind), Description: desc, Amount: amount}
}

func pages(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte{0x89, 'P', 'N', 'G'}
	}
	return out
}

func TestRunCarriesDateAcrossPages(t *testing.T) {
	fake := &fakeExtractor{
		results: []*extract.PageResult{
			{Records: []extract.Transaction{
				tx("05/03/2024", "D", "PIX ENVIADO", "150,00"),
				tx("", "D", "TARIFA", "9,90"),
			}},
			{Records: []extract.Transaction{
				tx("", "C", "TED RECEBIDA", "1.200,00"),
				tx("12/03/2024", "D", "BOLETO", "80,00"),
			}},
		},
		errs: []error{nil, nil},
	}
	a := NewAssembler(fake, 0, zerolog.Nop())

	records := a.Run(context.Background(), pages(2), func(int, int, string) {})

	require.Len(t, records, 4)
	// Empty dates inherit the nearest preceding explicit one, even across
	// the page boundary.
	assert.Equal(t, "05/03/2024", records[1].Date)
	assert.Equal(t, "05/03/2024", records[2].Date)
	assert.Equal(t, "12/03/2024", records[3].Date)

	// Page two was told the last date seen on page one.
	assert.Equal(t, []string{"", "05/03/2024"}, fake.lastDates)
}

func TestRunContinuesAfterPageFailure(t *testing.T) {
	fake := &fakeExtractor{
		results: []*extract.PageResult{
			{Records: []extract.Transaction{tx("01/02/2024", "D", "SAQUE", "200,00")}},
			nil,
			{Records: []extract.Transaction{tx("", "C", "DEPOSITO", "500,00")}},
		},
		errs: []error{nil, errors.New("resposta truncada"), nil},
	}
	a := NewAssembler(fake, 0, zerolog.Nop())

	var messages []string
	records := a.Run(context.Background(), pages(3), func(_, _ int, msg string) {
		messages = append(messages, msg)
	})

	require.Len(t, records, 2)
	assert.Equal(t, "01/02/2024", records[1].Date)
	assert.Contains(t, messages, "ERRO na página 2: resposta truncada")
}

func TestRunAllPagesEmpty(t *testing.T) {
	fake := &fakeExtractor{
		results: []*extract.PageResult{
			{Notes: "Página de capa"},
			{},
		},
		errs: []error{nil, nil},
	}
	a := NewAssembler(fake, 0, zerolog.Nop())

	var messages []string
	records := a.Run(context.Background(), pages(2), func(_, _ int, msg string) {
		messages = append(messages, msg)
	})

	assert.Empty(t, records)
	assert.Contains(t, messages, "Página 1: Página de capa")
	assert.Contains(t, messages, "Página 2: Sem lançamentos")
}

func TestRunProgressPagesIncrease(t *testing.T) {
	fake := &fakeExtractor{
		results: []*extract.PageResult{
			{Records: []extract.Transaction{tx("01/01/2024", "D", "A", "1,00")}},
			{Records: []extract.Transaction{tx("02/01/2024", "D", "B", "2,00")}},
			{Records: []extract.Transaction{tx("03/01/2024", "D", "C", "3,00")}},
		},
		errs: []error{nil, nil, nil},
	}
	a := NewAssembler(fake, 0, zerolog.Nop())

	lastPage := 0
	a.Run(context.Background(), pages(3), func(page, total int, _ string) {
		assert.Equal(t, 3, total)
		assert.GreaterOrEqual(t, page, lastPage)
		lastPage = page
	})
	assert.Equal(t, 3, lastPage)
}

func TestRunStopsOnCanceledContext(t *testing.T) {
	fake := &fakeExtractor{
		results: []*extract.PageResult{
			{Records: []extract.Transaction{tx("01/01/2024", "D", "A", "1,00")}},
		},
		errs: []error{nil},
	}
	a := NewAssembler(fake, time.Second, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := a.Run(ctx, pages(1), func(int, int, string) {})
	assert.Empty(t, records)
	assert.Empty(t, fake.lastDates)
}

func TestFillMissingDatesLeadingEmpty(t *testing.T) {
	records := []extract.Transaction{
		tx("", "D", "SALDO ANTERIOR", "0,00"),
		tx("10/04/2024", "D", "PIX", "50,00"),
		tx("", "C", "ESTORNO PIX", "50,00"),
	}
	fillMissingDates(records)

	// Nothing precedes the first record, so its date stays empty.
	assert.Equal(t, "", records[0].Date)
	assert.Equal(t, "10/04/2024", records[2].Date)
}
