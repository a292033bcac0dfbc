package services

import (
	"github.com/shopspring/decimal"

	"mrp-multilevel/pkg/domain/entities"
)

// AdjustToOrder returns the next quantity chunk to order for a requested
// quantity under the policy's minimum / maximum / multiple rules. The order
// generator calls it repeatedly with the remaining quantity until the request
// is exhausted.
//
// The maximum caps each chunk; the minimum and the multiple raise it. A
// policy with no rules set returns the request unchanged.
func AdjustToOrder(p entities.PlanningPolicy, requested decimal.Decimal) decimal.Decimal {
	qty := requested
	if p.MinOrderQty.IsPositive() && qty.LessThan(p.MinOrderQty) {
		qty = p.MinOrderQty
	}
	if p.MaxOrderQty.IsPositive() && qty.GreaterThan(p.MaxOrderQty) {
		qty = p.MaxOrderQty
	}
	if p.QtyMultiple.IsPositive() && !qty.Mod(p.QtyMultiple).IsZero() {
		qty = qty.Div(p.QtyMultiple).Ceil().Mul(p.QtyMultiple)
	}
	return qty
}
