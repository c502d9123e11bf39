package profit

import "github.com/shopspring/decimal"

type Category = string

// SaleRecord is one normalized ledger line.
type SaleRecord struct {
	Category Category
	UnitCost decimal.Decimal
	Quantity int64
}

func NewSaleRecord(category Category, unitCost decimal.Decimal, quantity int64) SaleRecord {
	return SaleRecord{
		Category: category,
		UnitCost: unitCost,
		Quantity: quantity,
	}
}

// GroupKey identifies an aggregate group: records sharing category and unit cost.
type GroupKey struct {
	Category Category
	// cost is the canonical decimal string, so 10.0 and 10.00 land in the same group
	cost string
}

func keyOf(record SaleRecord) GroupKey {
	return GroupKey{
		Category: record.Category,
		cost:     record.UnitCost.String(),
	}
}

// Group is the summed quantity of every record sharing a GroupKey.
type Group struct {
	Category Category
	UnitCost decimal.Decimal
	Quantity int64
}

func sumGroups(group Group, record SaleRecord) Group {
	return Group{
		Category: group.Category,
		UnitCost: group.UnitCost,
		Quantity: group.Quantity + record.Quantity,
	}
}
