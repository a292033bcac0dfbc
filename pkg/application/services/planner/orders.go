package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mrp-multilevel/pkg/domain/entities"
	"mrp-multilevel/pkg/infrastructure/events"
)

const explosionPrefix = "Demand Bom Explosion: "

// createOrder proposes supply for the requested quantity at the need date.
// The request is split into chunks by the quantity-adjustment hook until the
// cumulative ordered quantity covers it; each chunk becomes one supply event
// with a propose-buy or propose-make action. For manufactured items every
// chunk is exploded into dependent demand on the BOM components. Returns the
// total quantity actually ordered.
func (p *Planner) createOrder(ctx context.Context, r *run, mp *entities.MrpProduct, needDate time.Time, qty decimal.Decimal, name string) (decimal.Decimal, error) {
	ordered := decimal.Zero
	if !qty.IsPositive() {
		return ordered, nil
	}

	action := entities.ActionProposeBuy
	if mp.Policy.SupplyMethod == entities.Make {
		action = entities.ActionProposeMake
	}

	needDate = dateOnly(needDate)
	supplyDate := maxDate(needDate, r.today)
	var actionDate time.Time
	if p.calendar != nil && p.calendar.HasCalendar(mp.AreaID) && mp.Policy.LeadTimeDays > 0 {
		actionDate = p.calendar.OffsetWorkingDays(mp.AreaID, needDate, -mp.Policy.LeadTimeDays-1)
	} else {
		actionDate = needDate.AddDate(0, 0, -mp.Policy.LeadTimeDays)
	}

	toOrder := qty
	for ordered.LessThan(qty) {
		chunk := p.adjustQty(mp, toOrder)
		if !chunk.IsPositive() {
			p.log.Warn().
				Str("product", string(mp.ProductID)).
				Str("area", string(mp.AreaID)).
				Msg("quantity adjustment returned no quantity, order truncated")
			break
		}
		toOrder = toOrder.Sub(chunk)

		r.newMove(&entities.MrpMove{
			MrpProductID: mp.ID,
			ProductID:    mp.ProductID,
			AreaID:       mp.AreaID,
			Name:         "Supply: " + name,
			Qty:          chunk,
			Date:         supplyDate,
			Type:         entities.Supply,
			Action:       action,
			ActionDate:   actionDate,
		})
		r.ordersProposed++
		ordered = ordered.Add(chunk)
		p.publish(events.OrderProposedEvent, string(mp.ProductID), events.OrderProposed{
			ProductID:  mp.ProductID,
			AreaID:     mp.AreaID,
			Qty:        chunk,
			Date:       supplyDate,
			ActionDate: actionDate,
			Action:     action.String(),
		})

		if action == entities.ActionProposeMake {
			if err := p.explodeBOM(ctx, r, mp, chunk, actionDate, name); err != nil {
				return ordered, err
			}
		}
	}
	return ordered, nil
}

// explodeBOM expands the first active BOM of a manufactured item into
// dependent demand on its components, offset backward by the policy's
// transit and inspection delays. Components must already have a planning
// unit in the area; a missing one is a fatal configuration error. Explosion
// only creates demand events: the component's own net-requirements pass runs
// later, at its strictly greater level.
func (p *Planner) explodeBOM(ctx context.Context, r *run, mp *entities.MrpProduct, qty decimal.Decimal, actionDate time.Time, name string) error {
	bom, err := p.catalog.GetActiveBOM(ctx, mp.ProductID)
	if err != nil {
		return fmt.Errorf("active bom for %s: %w", mp.ProductID, err)
	}
	if bom == nil || len(bom.Lines) == 0 {
		return nil
	}

	demandStart := maxDate(actionDate, r.today)
	delay := mp.Policy.TransitDelayDays + mp.Policy.InspectionDelayDays
	depDate := maxDate(demandStart.AddDate(0, 0, -delay), r.today)
	area := r.areasByID[mp.AreaID]
	label := explosionLabel(name)

	for _, line := range bom.Lines {
		if !line.QtyPer.IsPositive() {
			continue
		}
		comp := r.productsByID[line.Component]
		if comp == nil || comp.Type != entities.Stockable {
			continue
		}
		if p.exclude(area, comp) {
			continue
		}
		childMP := r.byProductArea[productAreaKey{line.Component, mp.AreaID}]
		if childMP == nil {
			return fmt.Errorf("%w: component %s in area %s (parent %s)",
				ErrMRPProductNotFound, line.Component, mp.AreaID, mp.ProductID)
		}
		r.newMove(&entities.MrpMove{
			MrpProductID:    childMP.ID,
			ProductID:       comp.ID,
			AreaID:          mp.AreaID,
			Name:            label,
			Qty:             qty.Mul(line.QtyPer).Neg(),
			Date:            depDate,
			Type:            entities.Demand,
			Origin:          entities.OriginExplosion,
			ParentProductID: mp.ProductID,
		})
	}
	return nil
}

// explosionLabel prefixes a move name for exploded demand, collapsing the
// prefix when the name already carries one so multi-level explosions never
// stack it.
func explosionLabel(name string) string {
	return strings.Replace(explosionPrefix+name, explosionPrefix+explosionPrefix, explosionPrefix, 1)
}
