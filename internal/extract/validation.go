package extract

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CleanAmount strips a stray currency symbol the model was told to omit
// but occasionally includes anyway. Separators are preserved as printed.
func CleanAmount(valor string) string {
	s := strings.TrimSpace(valor)
	s = strings.TrimPrefix(s, "R$")
	return strings.TrimSpace(s)
}

// CheckAmount verifies that an amount reads as a Brazilian-locale decimal
// ("1.234,56"). Failures are reported, not fatal: totals are never
// reconciled here, the check only flags likely extraction noise.
func CheckAmount(valor string) error {
	if valor == "" {
		return fmt.Errorf("empty amount")
	}

	normalized := strings.ReplaceAll(valor, ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	normalized = strings.TrimPrefix(normalized, "-")

	if _, err := decimal.NewFromString(normalized); err != nil {
		return fmt.Errorf("amount %q is not a decimal: %w", valor, err)
	}
	return nil
}
