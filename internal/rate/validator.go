package rate

import (
	"fmt"
	"fxconvert/internal/domain"
	"strings"
)

var (
	ErrSourceRequired = fmt.Errorf("%w: source currency is required", domain.ErrUnknownCurrency)
	ErrTargetRequired = fmt.Errorf("%w: target currency is required", domain.ErrUnknownCurrency)
)

// NormalizeCode trims and upper-cases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCodes checks that both normalized codes are present in table.
func ValidateCodes(table *domain.RateTable, from, to string) error {
	if from == "" {
		return ErrSourceRequired
	}
	if to == "" {
		return ErrTargetRequired
	}
	if !table.Has(from) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, from)
	}
	if !table.Has(to) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCurrency, to)
	}
	return nil
}
