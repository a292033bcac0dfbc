package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BOMLine represents a single component line of a bill of materials.
type BOMLine struct {
	Component ProductID
	QtyPer    decimal.Decimal // quantity of the component per unit of the parent
}

// BOM maps a parent product to its component lines. Only the first active BOM
// with at least one line is used per parent; inactive or empty BOMs are
// skipped entirely.
type BOM struct {
	ID        string
	ProductID ProductID
	Active    bool
	Lines     []BOMLine
}

// NewBOMLine creates a validated BOM line.
func NewBOMLine(component ProductID, qtyPer decimal.Decimal) (*BOMLine, error) {
	if component == "" {
		return nil, fmt.Errorf("component product id cannot be empty")
	}
	if !qtyPer.IsPositive() {
		return nil, fmt.Errorf("quantity per unit must be positive, got %s", qtyPer)
	}
	return &BOMLine{Component: component, QtyPer: qtyPer}, nil
}
