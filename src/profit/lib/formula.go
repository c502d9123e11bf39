package profit

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

type TermKind int

const (
	// PERCENTAGE_TERM is a share of the revenue: magnitude% of unit cost times quantity.
	PERCENTAGE_TERM TermKind = iota
	// FLAT_TERM is a fixed amount per unit sold.
	FLAT_TERM
)

const (
	PLUS_SIGN      = '+'
	MINUS_SIGN     = '-'
	DECIMAL_POINT  = '.'
	PERCENT_SYMBOL = "%"
)

// DEFAULT_CURRENCY_SYMBOLS are the units that mark a flat term when none are configured.
var DEFAULT_CURRENCY_SYMBOLS = []string{"€"}

func (k TermKind) String() string {
	if k == PERCENTAGE_TERM {
		return "percentage"
	}
	return "flat"
}

// FormulaTerm is one signed contribution of a formula.
type FormulaTerm struct {
	Sign      int
	Magnitude decimal.Decimal
	Kind      TermKind
}

// String renders the term as "+15 percentage" or "-0.5 flat".
func (t FormulaTerm) String() string {
	sign := string(PLUS_SIGN)
	if t.Sign < 0 {
		sign = string(MINUS_SIGN)
	}
	return sign + t.Magnitude.String() + " " + t.Kind.String()
}

// Contribution returns the signed value of the term for a group.
func (t FormulaTerm) Contribution(unitCost decimal.Decimal, quantity int64) decimal.Decimal {
	qty := decimal.NewFromInt(quantity)

	var value decimal.Decimal
	switch t.Kind {
	case PERCENTAGE_TERM:
		value = t.Magnitude.Shift(-2).Mul(unitCost).Mul(qty)
	default:
		value = t.Magnitude.Mul(qty)
	}

	if t.Sign < 0 {
		return value.Neg()
	}
	return value
}

// FormulaEvaluator parses formulas made of terms shaped like
//
//	sign{1,} digit{1,} ["."] [digit] unit
//
// where sign is '+' or '-' (the last one of a run wins) and unit is '%' or one of
// the configured currency symbols. Text that does not form a term is skipped, so
// a formula with no terms evaluates to zero.
type FormulaEvaluator struct {
	currencySymbols []string
}

// NewFormulaEvaluator builds an evaluator recognizing the given currency symbols
// as flat-term units. With no symbols DEFAULT_CURRENCY_SYMBOLS is used.
func NewFormulaEvaluator(currencySymbols ...string) *FormulaEvaluator {
	symbols := []string{}
	for _, symbol := range currencySymbols {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" || symbol == PERCENT_SYMBOL {
			continue
		}
		symbols = append(symbols, symbol)
	}

	if len(symbols) == 0 {
		symbols = append(symbols, DEFAULT_CURRENCY_SYMBOLS...)
	}

	// longest first so "US$" wins over "$"
	sort.SliceStable(symbols, func(i, j int) bool { return len(symbols[i]) > len(symbols[j]) })

	return &FormulaEvaluator{currencySymbols: symbols}
}

// CurrencySymbols returns a copy of the flat-term units.
func (e *FormulaEvaluator) CurrencySymbols() []string {
	out := make([]string, len(e.currencySymbols))
	copy(out, e.currencySymbols)
	return out
}

// Parse returns the terms of formula in the order they appear.
func (e *FormulaEvaluator) Parse(formula string) []FormulaTerm {
	terms := []FormulaTerm{}

	for pos := 0; pos < len(formula); {
		term, end, ok := e.matchTerm(formula, pos)
		if !ok {
			pos++
			continue
		}
		terms = append(terms, term)
		pos = end
	}

	return terms
}

// Evaluate sums the contributions of every term of formula.
func (e *FormulaEvaluator) Evaluate(formula string, unitCost decimal.Decimal, quantity int64) decimal.Decimal {
	return EvaluateTerms(e.Parse(formula), unitCost, quantity)
}

func EvaluateTerms(terms []FormulaTerm, unitCost decimal.Decimal, quantity int64) decimal.Decimal {
	total := decimal.Zero
	for _, term := range terms {
		total = total.Add(term.Contribution(unitCost, quantity))
	}
	return total
}

// matchTerm tries to read a term starting at start. Signs, digits and the decimal
// point are ASCII, so stepping byte by byte never matches inside a multibyte symbol.
func (e *FormulaEvaluator) matchTerm(formula string, start int) (FormulaTerm, int, bool) {
	pos := start

	sign := 0
	for pos < len(formula) && isSign(formula[pos]) {
		sign = signOf(formula[pos])
		pos++
	}
	if sign == 0 {
		return FormulaTerm{}, start, false
	}

	digitsStart := pos
	for pos < len(formula) && isDigit(formula[pos]) {
		pos++
	}
	if pos == digitsStart {
		return FormulaTerm{}, start, false
	}

	number := formula[digitsStart:pos]
	if pos < len(formula) && formula[pos] == DECIMAL_POINT {
		pos++
		if pos < len(formula) && isDigit(formula[pos]) {
			number += string(DECIMAL_POINT) + formula[pos:pos+1]
			pos++
		}
	}

	kind, width, ok := e.matchUnit(formula[pos:])
	if !ok {
		return FormulaTerm{}, start, false
	}

	magnitude, err := decimal.NewFromString(number)
	if err != nil {
		return FormulaTerm{}, start, false
	}

	return FormulaTerm{Sign: sign, Magnitude: magnitude, Kind: kind}, pos + width, true
}

func (e *FormulaEvaluator) matchUnit(rest string) (TermKind, int, bool) {
	if strings.HasPrefix(rest, PERCENT_SYMBOL) {
		return PERCENTAGE_TERM, len(PERCENT_SYMBOL), true
	}

	for _, symbol := range e.currencySymbols {
		if strings.HasPrefix(rest, symbol) {
			return FLAT_TERM, len(symbol), true
		}
	}

	return FLAT_TERM, 0, false
}

func isSign(c byte) bool {
	return c == PLUS_SIGN || c == MINUS_SIGN
}

func signOf(c byte) int {
	if c == MINUS_SIGN {
		return -1
	}
	return 1
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
