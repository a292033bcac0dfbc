package entities

import (
	"github.com/shopspring/decimal"
)

// ProductID represents a unique product identifier
type ProductID string

// AreaID represents a unique MRP area identifier
type AreaID string

// ProductType represents the inventory behavior of a product
type ProductType int

const (
	Stockable ProductType = iota
	Consumable
	Service
)

func (t ProductType) String() string {
	switch t {
	case Stockable:
		return "Stockable"
	case Consumable:
		return "Consumable"
	case Service:
		return "Service"
	default:
		return "Unknown"
	}
}

// Product represents a catalog product. LLC and Applicable are derived
// planning attributes recomputed at the start of every run; everything else is
// owned by the external catalog.
type Product struct {
	ID          ProductID
	Name        string
	Type        ProductType
	UOMRounding decimal.Decimal // unit-of-measure rounding step, e.g. 1 or 0.01
	Excluded    bool            // excluded from planning by the default exclusion hook

	// Recomputed each run
	LLC        int
	Applicable bool
}

// MrpArea represents a planning scope corresponding to a stock location
// subtree. CalendarID references a working calendar; empty means plain
// calendar-day arithmetic applies for lead time offsets.
type MrpArea struct {
	ID         AreaID
	Name       string
	LocationID string
	CalendarID string
}

// RoundToPrecision rounds qty half-up to the given unit-of-measure rounding
// step. A zero or negative step leaves the quantity untouched.
func RoundToPrecision(qty, rounding decimal.Decimal) decimal.Decimal {
	if !rounding.IsPositive() {
		return qty
	}
	return qty.Div(rounding).Round(0).Mul(rounding)
}
