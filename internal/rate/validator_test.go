package rate

import (
	"testing"

	"fxconvert/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestValidateCodes_Errors(t *testing.T) {
	table := sampleTable(t)

	require.Equal(t, ErrSourceRequired, ValidateCodes(table, "", "EUR"))
	require.Equal(t, ErrTargetRequired, ValidateCodes(table, "USD", ""))
	require.ErrorIs(t, ValidateCodes(table, "ABC", "EUR"), domain.ErrUnknownCurrency)
	require.ErrorIs(t, ValidateCodes(table, "USD", "ZZZ"), domain.ErrUnknownCurrency)
	require.ErrorIs(t, ValidateCodes(nil, "USD", "EUR"), domain.ErrUnknownCurrency)
}

func TestValidateCodes_Success(t *testing.T) {
	table := sampleTable(t)
	require.NoError(t, ValidateCodes(table, "USD", "EUR"))
	require.NoError(t, ValidateCodes(table, "JPY", "JPY"))
}

func TestNormalizeCode(t *testing.T) {
	require.Equal(t, "EUR", NormalizeCode(" eur\t"))
	require.Equal(t, "", NormalizeCode("  "))
}
