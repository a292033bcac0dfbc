package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mrp-multilevel/pkg/domain/entities"
	"mrp-multilevel/pkg/infrastructure/events"
)

// calculate runs the net-requirements pass for every planning unit, per area
// in ascending low-level-code order. A component's pass only starts after
// every parent level has completed its order generation, so all dependent
// demand from explosions is already on the component's timeline. The host
// may abort between level boundaries via the context.
func (p *Planner) calculate(ctx context.Context, r *run, levels int, runID string) error {
	for _, area := range r.areas {
		for llc := 0; llc < levels; llc++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			counter := 0
			for _, mp := range r.mrpProducts {
				if mp.AreaID != area.ID || mp.LLC != llc {
					continue
				}
				if err := p.planProduct(ctx, r, mp); err != nil {
					return err
				}
				p.publish(events.ProductPlannedEvent, runID, events.ProductPlanned{
					ProductID: mp.ProductID,
					AreaID:    mp.AreaID,
					LLC:       llc,
				})
				counter++
			}
			p.log.Info().
				Str("area", string(area.ID)).
				Int("llc", llc).
				Int("products", counter).
				Msg("mrp calculation level finished")
		}
	}
	return nil
}

// planProduct walks the product's timeline, proposes replenishment per the
// policy's lot sizing mode, and finishes with the trailing safety check: if
// projected on-hand is still below minimum stock and the pass created no
// order, one final order is issued dated today.
func (p *Planner) planProduct(ctx context.Context, r *run, mp *entities.MrpProduct) error {
	var (
		onhand  decimal.Decimal
		created int
		err     error
	)
	if mp.Policy.GroupingDays == 0 {
		onhand, created, err = p.planLotForLot(ctx, r, mp)
	} else {
		onhand, created, err = p.planGrouped(ctx, r, mp)
	}
	if err != nil {
		return err
	}

	if onhand.LessThan(mp.Policy.MinimumStock) && created == 0 {
		toOrder := mp.Policy.MinimumStock.Sub(onhand)
		if _, err := p.createOrder(ctx, r, mp, r.today, toOrder, "Minimum Stock"); err != nil {
			return err
		}
	}
	return nil
}

// planLotForLot replenishes exactly the shortfall on the date it occurs: for
// each event in chronological order, if projected on-hand would breach
// minimum stock, an order sized to restore it is proposed at the event's
// date.
func (p *Planner) planLotForLot(ctx context.Context, r *run, mp *entities.MrpProduct) (decimal.Decimal, int, error) {
	min := mp.Policy.MinimumStock
	onhand := mp.QtyAvailable
	created := 0
	for _, mv := range r.timeline(mp) {
		if mv.Action != entities.ActionNone {
			continue
		}
		projected := onhand.Add(mv.Qty)
		if projected.LessThan(min) {
			toOrder := min.Sub(onhand).Sub(mv.Qty)
			ordered, err := p.createOrder(ctx, r, mp, mv.Date, toOrder, mv.Name)
			if err != nil {
				return onhand, created, err
			}
			onhand = projected.Add(ordered)
			created++
		} else {
			onhand = projected
		}
	}
	return onhand, created, nil
}

// planGrouped batches consecutive shortfall events into buckets of the
// policy's grouping window. A bucket is flushed into one order, dated at the
// bucket's start and sized to bring projected on-hand back to minimum stock,
// when the next event falls outside the window and on-hand would still
// breach the minimum.
func (p *Planner) planGrouped(ctx context.Context, r *run, mp *entities.MrpProduct) (decimal.Decimal, int, error) {
	min := mp.Policy.MinimumStock
	window := mp.Policy.GroupingDays
	name := fmt.Sprintf("Grouped Demand for %d Days", window)

	onhand := mp.QtyAvailable
	var bucketDate time.Time
	bucketQty := decimal.Zero
	created := 0

	for _, mv := range r.timeline(mp) {
		if mv.Action != entities.ActionNone {
			continue
		}
		if !bucketDate.IsZero() && mv.Date.After(bucketDate.AddDate(0, 0, window)) {
			if onhand.Add(bucketQty).Add(mv.Qty).LessThan(min) || onhand.Add(bucketQty).LessThan(min) {
				toOrder := min.Sub(onhand).Sub(bucketQty)
				ordered, err := p.createOrder(ctx, r, mp, bucketDate, toOrder, name)
				if err != nil {
					return onhand, created, err
				}
				onhand = onhand.Add(bucketQty).Add(ordered)
				bucketDate = time.Time{}
				bucketQty = decimal.Zero
				created++
			}
		}
		if onhand.Add(bucketQty).Add(mv.Qty).LessThan(min) || onhand.Add(bucketQty).LessThan(min) {
			if bucketDate.IsZero() {
				bucketDate = mv.Date
				bucketQty = mv.Qty
			} else {
				bucketQty = bucketQty.Add(mv.Qty)
			}
		} else {
			bucketDate = mv.Date
			onhand = onhand.Add(mv.Qty)
		}
	}

	if !bucketDate.IsZero() && !bucketQty.IsZero() {
		toOrder := min.Sub(onhand).Sub(bucketQty)
		ordered, err := p.createOrder(ctx, r, mp, bucketDate, toOrder, name)
		if err != nil {
			return onhand, created, err
		}
		onhand = onhand.Add(bucketQty).Add(ordered)
		created++
	}
	return onhand, created, nil
}
