// Package extract turns one statement page image into structured
// transaction records via a vision model.
package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind classifies a transaction by the monetary column it was printed in.
type Kind string

const (
	KindCredit Kind = "C"
	KindDebit  Kind = "D"
)

// creditLiterals are the model spellings accepted as credit. Anything
// else, including a missing field, is treated as debit.
var creditLiterals = map[string]bool{
	"C":       true,
	"CREDITO": true,
	"CRÉDITO": true,
}

// ParseKind normalizes the loosely-typed "tipo" field from the model.
func ParseKind(raw string) Kind {
	if creditLiterals[strings.ToUpper(strings.TrimSpace(raw))] {
		return KindCredit
	}
	return KindDebit
}

// Transaction is one extracted statement line item.
type Transaction struct {
	// Date is DD/MM/YYYY; empty when the statement left the cell blank
	// because it repeats the previous line. The assembler fills it in.
	Date        string `json:"data"`
	Kind        Kind   `json:"tipo"`
	Description string `json:"descricao"`
	// Amount keeps the statement's locale formatting ("34.695,00"),
	// without the currency symbol.
	Amount string `json:"valor"`
}

// IsCredit reports whether the row should be rendered as a credit.
func (t Transaction) IsCredit() bool { return t.Kind == KindCredit }

// PageResult is the outcome of extracting a single page. It is consumed
// once by the assembler and discarded.
type PageResult struct {
	Records         []Transaction
	HasContinuation bool
	Notes           string
}

// snippetLen bounds how much of a malformed reply is kept for diagnostics.
const snippetLen = 200

// MalformedResponseError reports a model reply that could not be parsed
// as JSON, carrying the page number and the start of the raw reply.
type MalformedResponseError struct {
	Page    int
	Snippet string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("página %d: resposta do modelo não é JSON válido: %s", e.Page, e.Snippet)
}

func newMalformedResponseError(page int, raw string) *MalformedResponseError {
	snippet := raw
	if len(snippet) > snippetLen {
		// Cut on a rune boundary so accented replies stay valid UTF-8.
		cut := snippetLen
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut]
	}
	return &MalformedResponseError{Page: page, Snippet: snippet}
}
