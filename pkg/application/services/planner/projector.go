package planner

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"mrp-multilevel/pkg/domain/entities"
)

// actionHorizonDays bounds the near-term action counter.
const actionHorizonDays = 28

// finalize runs the time-phased projection over every planning unit. Each
// unit's timeline is independent at this point, so the pass fans out across
// the worker pool; per-unit inventory rows are flattened back in planning-unit
// order to keep the output deterministic.
func (p *Planner) finalize(ctx context.Context, r *run) error {
	rows := make([][]*entities.MrpInventory, len(r.mrpProducts))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, mp := range r.mrpProducts {
		g.Go(func() error {
			rows[i] = p.projectProduct(r, mp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, rs := range rows {
		r.inventory = append(r.inventory, rs...)
	}
	return nil
}

// projectProduct computes running availability over the unit's sorted
// timeline, aggregates daily inventory buckets and marks the unit's action
// counters. Within a date supply is applied before demand, so the running
// figure never dips below its end-of-day value mid-date.
func (p *Planner) projectProduct(r *run, mp *entities.MrpProduct) []*entities.MrpInventory {
	moves := r.moves[mp.ID]
	sortForProjection(moves)

	qoh := mp.QtyAvailable
	for _, mv := range moves {
		qoh = qoh.Add(mv.Qty)
		mv.RunningAvailability = qoh
	}

	var rows []*entities.MrpInventory
	onhand := mp.QtyAvailable
	horizon := r.today.AddDate(0, 0, actionHorizonDays)
	actions, actions4w := 0, 0

	i := 0
	for i < len(moves) {
		date := moves[i].Date
		demand, supply, toProcure := decimal.Zero, decimal.Zero, decimal.Zero
		for ; i < len(moves) && moves[i].Date.Equal(date); i++ {
			mv := moves[i]
			switch {
			case mv.Type == entities.Demand:
				demand = demand.Add(mv.Qty)
			case mv.Action == entities.ActionNone:
				supply = supply.Add(mv.Qty)
			default:
				if !mv.Qty.IsZero() {
					toProcure = toProcure.Add(mv.Qty)
				}
				actions++
				if actionDateBefore(mv.ActionDate, horizon) {
					actions4w++
				}
			}
		}
		// Demand is reported as a positive magnitude; the on-hand math below
		// keeps the signed flow.
		row := &entities.MrpInventory{
			MrpProductID:  mp.ID,
			Date:          date,
			DemandQty:     demand.Abs(),
			SupplyQty:     supply,
			ToProcure:     toProcure,
			InitialOnHand: onhand,
		}
		onhand = onhand.Add(supply).Add(demand)
		row.FinalOnHand = onhand
		rows = append(rows, row)
	}

	if actions > 0 {
		mp.NbrActions = actions
		mp.NbrActions4W = actions4w
	}
	return rows
}

func actionDateBefore(actionDate, horizon time.Time) bool {
	return !actionDate.IsZero() && actionDate.Before(horizon)
}
