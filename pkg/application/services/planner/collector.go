package planner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"mrp-multilevel/pkg/domain/entities"
	"mrp-multilevel/pkg/infrastructure/events"
)

// initialize creates one MrpProduct per applicable (product, area)
// combination and collects its initial timeline from forecasts, open
// transfers and open purchase lines. Timelines are independent, so the
// collection runs in parallel per planning unit.
func (p *Planner) initialize(ctx context.Context, r *run) error {
	for _, area := range r.areas {
		for _, prod := range r.products {
			if !prod.Applicable || p.exclude(area, prod) {
				continue
			}
			policy, err := p.catalog.GetPolicy(ctx, prod.ID, area.ID)
			if err != nil {
				return fmt.Errorf("resolve policy for %s in %s: %w", prod.ID, area.ID, err)
			}
			avail, err := p.stock.GetAvailability(ctx, prod.ID, area.ID)
			if err != nil {
				return fmt.Errorf("availability for %s in %s: %w", prod.ID, area.ID, err)
			}
			mp := &entities.MrpProduct{
				ID:           int64(len(r.mrpProducts) + 1),
				ProductID:    prod.ID,
				AreaID:       area.ID,
				Name:         fmt.Sprintf("[%s] %s", area.Name, prod.Name),
				QtyAvailable: avail,
				LLC:          prod.LLC,
				UOMRounding:  prod.UOMRounding,
				Policy:       policy,
			}
			r.mrpProducts = append(r.mrpProducts, mp)
			r.byProductArea[productAreaKey{prod.ID, area.ID}] = mp
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for _, mp := range r.mrpProducts {
		g.Go(func() error {
			return p.collectMoves(ctx, r, mp)
		})
	}
	return g.Wait()
}

func (p *Planner) collectMoves(ctx context.Context, r *run, mp *entities.MrpProduct) error {
	if err := p.collectForecasts(ctx, r, mp); err != nil {
		return err
	}
	if err := p.collectTransfers(ctx, r, mp); err != nil {
		return err
	}
	return p.collectPurchaseLines(ctx, r, mp)
}

// collectForecasts emits one demand event per day of every estimate range
// intersecting [today, inf), clipped to today, with the daily quantity
// rounded half-up to the product's unit-of-measure precision.
func (p *Planner) collectForecasts(ctx context.Context, r *run, mp *entities.MrpProduct) error {
	estimates, err := p.forecasts.ListForecasts(ctx, mp.ProductID, mp.AreaID, r.today)
	if err != nil {
		return fmt.Errorf("list forecasts for %s in %s: %w", mp.ProductID, mp.AreaID, err)
	}
	for _, est := range estimates {
		end := dateOnly(est.DateEnd)
		if end.Before(r.today) {
			continue
		}
		start := maxDate(dateOnly(est.DateStart), r.today)
		daily := entities.RoundToPrecision(est.DailyQty, mp.UOMRounding)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			r.newMove(&entities.MrpMove{
				MrpProductID: mp.ID,
				ProductID:    mp.ProductID,
				AreaID:       mp.AreaID,
				Name:         "Forecast",
				Qty:          daily.Neg(),
				Date:         d,
				Type:         entities.Demand,
				Origin:       entities.OriginForecast,
			})
		}
	}
	return nil
}

// collectTransfers emits a supply event for every open transfer into the
// area and a demand event for every open transfer out of it, dated no
// earlier than today.
func (p *Planner) collectTransfers(ctx context.Context, r *run, mp *entities.MrpProduct) error {
	in, err := p.stock.ListOpenTransfersIn(ctx, mp.ProductID, mp.AreaID)
	if err != nil {
		return fmt.Errorf("list inbound transfers for %s in %s: %w", mp.ProductID, mp.AreaID, err)
	}
	for _, t := range in {
		p.addTransferMove(r, mp, t, true)
	}
	out, err := p.stock.ListOpenTransfersOut(ctx, mp.ProductID, mp.AreaID)
	if err != nil {
		return fmt.Errorf("list outbound transfers for %s in %s: %w", mp.ProductID, mp.AreaID, err)
	}
	for _, t := range out {
		p.addTransferMove(r, mp, t, false)
	}
	return nil
}

func (p *Planner) addTransferMove(r *run, mp *entities.MrpProduct, t *entities.StockTransfer, inbound bool) {
	if !t.Qty.IsPositive() {
		return
	}
	if t.ExpectedDate.IsZero() {
		p.log.Warn().
			Str("transfer", t.ID).
			Str("product", string(mp.ProductID)).
			Msg("transfer without expected date skipped")
		p.publish(events.AnomalySkippedEvent, t.ID, events.AnomalySkipped{
			ProductID: mp.ProductID,
			AreaID:    mp.AreaID,
			Reason:    "transfer without expected date",
		})
		return
	}

	qty := t.Qty
	moveType := entities.Supply
	if !inbound {
		qty = qty.Neg()
		moveType = entities.Demand
	}

	origin, orderNumber, parent := resolveTransferOrigin(t)
	name := orderNumber
	if name == "" {
		name = t.Name
	}
	r.newMove(&entities.MrpMove{
		MrpProductID:    mp.ID,
		ProductID:       mp.ProductID,
		AreaID:          mp.AreaID,
		Name:            name,
		Qty:             qty,
		Date:            maxDate(dateOnly(t.ExpectedDate), r.today),
		Type:            moveType,
		Origin:          origin,
		OrderNumber:     orderNumber,
		StockMoveID:     t.ID,
		PurchaseOrderID: t.PurchaseOrderID,
		PurchaseLineID:  t.PurchaseLineID,
		ProductionID:    t.ProductionID,
		ParentProductID: parent,
	})
}

// resolveTransferOrigin resolves the originating document of a transfer: the
// manufacturing order producing it, a manufacturing order fed through a
// downstream linked transfer, else the linked purchase line. The caller falls
// back to the transfer's own name when nothing resolves.
func resolveTransferOrigin(t *entities.StockTransfer) (entities.MoveOrigin, string, entities.ProductID) {
	if t.ProductionID != "" {
		return entities.OriginStockMove, t.ProductionName, ""
	}
	if t.DestProductionID != "" {
		return entities.OriginStockMove, t.DestProductionName, t.DestParentProductID
	}
	if t.PurchaseLineID != "" {
		return entities.OriginPurchaseOrder, t.PurchaseOrderName, ""
	}
	return entities.OriginNone, "", ""
}

// collectPurchaseLines emits a supply event for every open purchase line
// delivering the product into the area, dated no earlier than today.
func (p *Planner) collectPurchaseLines(ctx context.Context, r *run, mp *entities.MrpProduct) error {
	lines, err := p.purchases.ListOpenPurchaseLines(ctx, mp.ProductID, mp.AreaID)
	if err != nil {
		return fmt.Errorf("list purchase lines for %s in %s: %w", mp.ProductID, mp.AreaID, err)
	}
	for _, line := range lines {
		if !line.Qty.IsPositive() {
			continue
		}
		if line.PlannedDate.IsZero() {
			p.log.Warn().
				Str("purchase_line", line.ID).
				Str("product", string(mp.ProductID)).
				Msg("purchase line without planned date skipped")
			continue
		}
		r.newMove(&entities.MrpMove{
			MrpProductID:    mp.ID,
			ProductID:       mp.ProductID,
			AreaID:          mp.AreaID,
			Name:            line.OrderName,
			Qty:             line.Qty,
			Date:            maxDate(dateOnly(line.PlannedDate), r.today),
			Type:            entities.Supply,
			Origin:          entities.OriginPurchaseOrder,
			OrderNumber:     line.OrderName,
			PurchaseOrderID: line.OrderID,
			PurchaseLineID:  line.ID,
		})
	}
	return nil
}
