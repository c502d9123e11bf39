package profit

import (
	"profit-calculus/src/common/logger"

	"github.com/shopspring/decimal"
)

var log = logger.GetLoggerWithPrefix("[PROFIT]")

// Aggregator keeps the running quantity of every (category, unit cost) group.
// Batches may arrive one at a time; nothing is evaluated until Calculate.
// It is owned by a single calculation pass and is not safe for concurrent use.
type Aggregator struct {
	evaluator *FormulaEvaluator
	order     []GroupKey
	groups    map[GroupKey]Group
	records   int
}

// NewAggregator returns an empty aggregator. A nil evaluator means the default
// currency symbols.
func NewAggregator(evaluator *FormulaEvaluator) *Aggregator {
	if evaluator == nil {
		evaluator = NewFormulaEvaluator()
	}

	return &Aggregator{
		evaluator: evaluator,
		order:     []GroupKey{},
		groups:    make(map[GroupKey]Group),
	}
}

func (a *Aggregator) Add(record SaleRecord) {
	key := keyOf(record)
	a.records++

	existing, exists := a.groups[key]
	if !exists {
		a.order = append(a.order, key)
		existing = Group{Category: record.Category, UnitCost: record.UnitCost}
	}
	a.groups[key] = sumGroups(existing, record)
}

func (a *Aggregator) AddBatch(records []SaleRecord) {
	for _, record := range records {
		a.Add(record)
	}
	log.Debugf("Folded batch of %d records | groups: %d", len(records), len(a.groups))
}

// Groups returns the aggregate groups in first-seen order.
func (a *Aggregator) Groups() []Group {
	out := make([]Group, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, a.groups[key])
	}
	return out
}

// Get returns the group of category at unitCost.
func (a *Aggregator) Get(category Category, unitCost decimal.Decimal) (Group, bool) {
	group, ok := a.groups[GroupKey{Category: category, cost: unitCost.String()}]
	return group, ok
}

// RecordCount is the number of records folded so far.
func (a *Aggregator) RecordCount() int {
	return a.records
}

// Calculate evaluates every group with its category formula (or the wildcard
// one). The result is keyed by category only: when a category has several cost
// groups, the last group evaluated overwrites the earlier ones. Calculate does
// not modify the aggregator, so calling it twice gives the same result.
func (a *Aggregator) Calculate(formulas CategoryFormulas) (*ProfitResult, error) {
	result := NewProfitResult()
	parsed := make(map[string][]FormulaTerm)

	for _, key := range a.order {
		group := a.groups[key]

		formula, err := formulas.Resolve(group.Category)
		if err != nil {
			return nil, err
		}

		terms, ok := parsed[formula]
		if !ok {
			terms = a.evaluator.Parse(formula)
			parsed[formula] = terms
			if len(terms) == 0 {
				log.Warningf("Formula %q has no terms, its categories will have zero profit", formula)
			} else {
				log.Debugf("Formula %q parsed into %v", formula, terms)
			}
		}

		profit := EvaluateTerms(terms, group.UnitCost, group.Quantity)
		log.Debugf("Group %s @ %s | quantity: %d | formula: %s | profit: %s",
			group.Category, group.UnitCost, group.Quantity, formula, profit)

		result.Set(group.Category, profit)
	}

	return result, nil
}

// CalculateProfit groups records and evaluates them in one call.
func CalculateProfit(records []SaleRecord, formulas CategoryFormulas) (*ProfitResult, error) {
	aggregator := NewAggregator(nil)
	aggregator.AddBatch(records)
	return aggregator.Calculate(formulas)
}
