package ledger

import (
	"fmt"
	"strconv"
	"strings"

	profit "profit-calculus/src/profit/lib"

	"github.com/shopspring/decimal"
)

const (
	DEFAULT_THOUSANDS_SEPARATOR = "."
	DEFAULT_DECIMAL_SEPARATOR   = ","
)

var DEFAULT_LEDGER_CURRENCY_SYMBOLS = []string{"€"}

// Normalizer turns locale formatted ledger amounts like "1.234,50 €" into numbers.
// It is a value: configure it once and share it between readers.
type Normalizer struct {
	CurrencySymbols    []string
	ThousandsSeparator string
	DecimalSeparator   string
}

func DefaultNormalizer() Normalizer {
	return Normalizer{
		CurrencySymbols:    DEFAULT_LEDGER_CURRENCY_SYMBOLS,
		ThousandsSeparator: DEFAULT_THOUSANDS_SEPARATOR,
		DecimalSeparator:   DEFAULT_DECIMAL_SEPARATOR,
	}
}

func (n Normalizer) strip(raw string) string {
	s := raw
	for _, symbol := range n.CurrencySymbols {
		if symbol != "" {
			s = strings.ReplaceAll(s, symbol, "")
		}
	}

	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' || r == '\t' {
			return -1
		}
		return r
	}, s)

	if n.ThousandsSeparator != "" && n.ThousandsSeparator != n.DecimalSeparator {
		s = strings.ReplaceAll(s, n.ThousandsSeparator, "")
	}
	return s
}

// NormalizeCost returns raw as a plain decimal string ("1234.50").
func (n Normalizer) NormalizeCost(raw string) string {
	s := n.strip(raw)
	if n.DecimalSeparator != "" && n.DecimalSeparator != "." {
		s = strings.ReplaceAll(s, n.DecimalSeparator, ".")
	}
	return s
}

func (n Normalizer) ParseCost(raw string) (decimal.Decimal, error) {
	cost, err := decimal.NewFromString(n.NormalizeCost(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: %w", COST_COLUMN, raw, profit.ErrMalformedNumericField)
	}
	return cost, nil
}

func (n Normalizer) ParseQuantity(raw string) (int64, error) {
	quantity, err := strconv.ParseInt(n.strip(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", QUANTITY_COLUMN, raw, profit.ErrMalformedNumericField)
	}
	return quantity, nil
}

// ParseCellCost reads a spreadsheet cell. Numeric cells hold plain decimals and
// are taken as they are, text cells follow the same locale rules as CSV fields.
func (n Normalizer) ParseCellCost(raw string, numeric bool) (decimal.Decimal, error) {
	if !numeric {
		return n.ParseCost(raw)
	}

	cost, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: %w", COST_COLUMN, raw, profit.ErrMalformedNumericField)
	}
	return cost, nil
}

// ParseCellQuantity accepts numeric cells holding whole numbers, including
// floats such as "3.0". Text cells follow the CSV rules.
func (n Normalizer) ParseCellQuantity(raw string, numeric bool) (int64, error) {
	if !numeric {
		return n.ParseQuantity(raw)
	}

	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !value.IsInteger() {
		return 0, fmt.Errorf("%s %q: %w", QUANTITY_COLUMN, raw, profit.ErrMalformedNumericField)
	}
	return value.IntPart(), nil
}
