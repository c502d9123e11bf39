package ledger

import (
	"fmt"
	"strings"

	profit "profit-calculus/src/profit/lib"

	"github.com/shopspring/decimal"
)

const (
	CATEGORY_COLUMN = "CATEGORY"
	COST_COLUMN     = "COST"
	QUANTITY_COLUMN = "QUANTITY"

	DEFAULT_BATCH_SIZE = 10000
)

// Batch is a bounded slice of ledger records.
type Batch struct {
	Records []profit.SaleRecord
	size    int
}

func NewBatch(batchSize int) *Batch {
	if batchSize <= 0 {
		batchSize = DEFAULT_BATCH_SIZE
	}

	return &Batch{
		Records: []profit.SaleRecord{},
		size:    batchSize,
	}
}

// AddRecord appends record. Callers check IsFull before reading the next row.
func (b *Batch) AddRecord(record profit.SaleRecord) {
	b.Records = append(b.Records, record)
}

func (b *Batch) IsFull() bool {
	return len(b.Records) >= b.size
}

func (b *Batch) Len() int {
	return len(b.Records)
}

// LedgerReader hands out a sales ledger in bounded batches.
type LedgerReader interface {
	GetNextBatch(batchSize int) (*Batch, error)
	IsReading() bool
	Close() error
}

type ledgerColumns struct {
	category int
	cost     int
	quantity int
}

func toIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimPrefix(h, "\ufeff")
		idx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	return idx
}

func findColumns(headers []string) (ledgerColumns, error) {
	col := toIndex(headers)
	for _, k := range []string{CATEGORY_COLUMN, COST_COLUMN, QUANTITY_COLUMN} {
		if _, ok := col[k]; !ok {
			return ledgerColumns{}, fmt.Errorf("missing column: %s", k)
		}
	}

	return ledgerColumns{
		category: col[CATEGORY_COLUMN],
		cost:     col[COST_COLUMN],
		quantity: col[QUANTITY_COLUMN],
	}, nil
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// parseFields builds a record from one ledger row. Cost and quantity parsing are
// passed in since spreadsheet cells and CSV text follow different rules.
func parseFields(
	fields []string,
	columns ledgerColumns,
	parseCost func(string) (decimal.Decimal, error),
	parseQuantity func(string) (int64, error),
) (profit.SaleRecord, error) {
	category := strings.TrimSpace(fieldAt(fields, columns.category))

	cost, err := parseCost(fieldAt(fields, columns.cost))
	if err != nil {
		return profit.SaleRecord{}, err
	}

	quantity, err := parseQuantity(fieldAt(fields, columns.quantity))
	if err != nil {
		return profit.SaleRecord{}, err
	}

	return profit.NewSaleRecord(category, cost, quantity), nil
}
