package profit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const PROFIT_DECIMAL_PLACES = 2

// ProfitResult maps a category to its profit fixed at two decimals, keeping the
// order in which categories were first set.
type ProfitResult struct {
	order  []Category
	values map[Category]string
}

func NewProfitResult() *ProfitResult {
	return &ProfitResult{
		order:  []Category{},
		values: make(map[Category]string),
	}
}

// FormatProfit rounds half away from zero and always prints two decimals.
func FormatProfit(profit decimal.Decimal) string {
	return profit.Round(PROFIT_DECIMAL_PLACES).StringFixed(PROFIT_DECIMAL_PLACES)
}

// Set stores profit under category. Setting an existing category overwrites its
// value but keeps its original position.
func (r *ProfitResult) Set(category Category, profit decimal.Decimal) {
	if _, exists := r.values[category]; !exists {
		r.order = append(r.order, category)
	}
	r.values[category] = FormatProfit(profit)
}

func (r *ProfitResult) Get(category Category) (string, bool) {
	value, ok := r.values[category]
	return value, ok
}

func (r *ProfitResult) Categories() []Category {
	out := make([]Category, len(r.order))
	copy(out, r.order)
	return out
}

func (r *ProfitResult) Len() int {
	return len(r.order)
}

// ToMap returns an unordered copy of the result.
func (r *ProfitResult) ToMap() map[Category]string {
	out := make(map[Category]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Lines renders the result as "<category>: <profit>" lines.
func (r *ProfitResult) Lines() []string {
	lines := make([]string, 0, len(r.order))
	for _, category := range r.order {
		lines = append(lines, fmt.Sprintf("%s: %s", category, r.values[category]))
	}
	return lines
}
