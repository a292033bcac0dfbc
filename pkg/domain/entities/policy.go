package entities

import (
	"github.com/shopspring/decimal"
)

// SupplyMethod represents how a product is replenished in an area.
type SupplyMethod int

const (
	Buy SupplyMethod = iota
	Make
)

func (m SupplyMethod) String() string {
	switch m {
	case Buy:
		return "Buy"
	case Make:
		return "Make"
	default:
		return "Unknown"
	}
}

// PlanningPolicy holds the replenishment parameters for one product in one
// MRP area. It is resolved once at the start of a run and immutable within it.
type PlanningPolicy struct {
	SupplyMethod        SupplyMethod
	LeadTimeDays        int
	TransitDelayDays    int
	InspectionDelayDays int
	MinimumStock        decimal.Decimal
	GroupingDays        int // 0 = lot-for-lot, N = group shortfalls into N-day buckets

	// Order-quantity adjustment parameters consumed by the default adjuster.
	MinOrderQty decimal.Decimal
	MaxOrderQty decimal.Decimal
	QtyMultiple decimal.Decimal
}
