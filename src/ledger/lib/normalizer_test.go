package ledger_test

import (
	"errors"
	"testing"

	ledger "profit-calculus/src/ledger/lib"
	profit "profit-calculus/src/profit/lib"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseCost(t *testing.T) {
	normalizer := ledger.DefaultNormalizer()

	tests := []struct {
		raw      string
		expected string
	}{
		{raw: "10,00 €", expected: "10"},
		{raw: "1.234,56€", expected: "1234.56"},
		{raw: "1.234.567,8 €", expected: "1234567.8"},
		{raw: " 5 ", expected: "5"},
		{raw: "0,99", expected: "0.99"},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			cost, err := normalizer.ParseCost(tc.raw)
			require.NoError(t, err)
			require.Truef(t, decimal.RequireFromString(tc.expected).Equal(cost), "got %s", cost)
		})
	}
}

func TestParseCostMalformed(t *testing.T) {
	normalizer := ledger.DefaultNormalizer()

	for _, raw := range []string{"", "€", "ten", "1,2,3"} {
		_, err := normalizer.ParseCost(raw)
		require.Errorf(t, err, "raw %q", raw)
		require.True(t, errors.Is(err, profit.ErrMalformedNumericField))
	}
}

func TestParseQuantity(t *testing.T) {
	normalizer := ledger.DefaultNormalizer()

	quantity, err := normalizer.ParseQuantity("1.000")
	require.NoError(t, err)
	require.Equal(t, int64(1000), quantity)

	quantity, err = normalizer.ParseQuantity(" 7 ")
	require.NoError(t, err)
	require.Equal(t, int64(7), quantity)

	_, err = normalizer.ParseQuantity("3,5")
	require.True(t, errors.Is(err, profit.ErrMalformedNumericField))
}

func TestNormalizerWithDotDecimals(t *testing.T) {
	normalizer := ledger.Normalizer{
		CurrencySymbols:    []string{"$"},
		ThousandsSeparator: ",",
		DecimalSeparator:   ".",
	}

	cost, err := normalizer.ParseCost("$1,234.50")
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("1234.5").Equal(cost))
	require.Equal(t, "1234.50", normalizer.NormalizeCost("$1,234.50"))
}

func TestParseCellValues(t *testing.T) {
	normalizer := ledger.DefaultNormalizer()

	cost, err := normalizer.ParseCellCost("1.5", true)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("1.5").Equal(cost))

	cost, err = normalizer.ParseCellCost("1.500", false)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("1500").Equal(cost))

	cost, err = normalizer.ParseCellCost("10,50 €", false)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("10.5").Equal(cost))

	_, err = normalizer.ParseCellCost("10,50 €", true)
	require.True(t, errors.Is(err, profit.ErrMalformedNumericField))

	quantity, err := normalizer.ParseCellQuantity("3.0", true)
	require.NoError(t, err)
	require.Equal(t, int64(3), quantity)

	_, err = normalizer.ParseCellQuantity("3.5", true)
	require.True(t, errors.Is(err, profit.ErrMalformedNumericField))

	_, err = normalizer.ParseCellQuantity("many", false)
	require.True(t, errors.Is(err, profit.ErrMalformedNumericField))
}
