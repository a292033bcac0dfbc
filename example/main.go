package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mrp-multilevel/pkg/application/services/planner"
	"mrp-multilevel/pkg/domain/entities"
	"mrp-multilevel/pkg/domain/services"
	"mrp-multilevel/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	// Create repositories
	catalog := memory.NewCatalogRepository()
	stock := memory.NewStockRepository()
	forecasts := memory.NewForecastRepository()
	purchases := memory.NewPurchaseRepository()
	calendar := services.NewCalendarResolver()

	setupBicycleFactory(catalog, stock, forecasts, calendar)

	// Create planner
	p := planner.New(catalog, stock, forecasts, purchases, calendar)

	fmt.Println("🚲 Running multi-level MRP for the bicycle factory...")
	fmt.Println()

	result, err := p.Run(ctx)
	if err != nil {
		fmt.Printf("❌ Planning run failed: %v\n", err)
		return
	}

	// Display results
	fmt.Println("📊 Run Results:")
	fmt.Printf("  Levels: %d\n", result.Stats.Levels)
	fmt.Printf("  Products Planned: %d\n", result.Stats.ProductsPlanned)
	fmt.Printf("  Moves Created: %d\n", result.Stats.MovesCreated)
	fmt.Printf("  Orders Proposed: %d\n", result.Stats.OrdersProposed)
	fmt.Println()

	fmt.Println("📝 Proposed Orders:")
	for _, mv := range result.Moves {
		if mv.Action == entities.ActionNone {
			continue
		}
		fmt.Printf("  %s: %s units on %s (act by %s, %s)\n",
			mv.ProductID,
			mv.Qty.String(),
			mv.Date.Format("2006-01-02"),
			mv.ActionDate.Format("2006-01-02"),
			mv.Action)
	}
	fmt.Println()

	fmt.Println("📦 Projected Inventory:")
	for _, row := range result.Inventory {
		fmt.Printf("  unit %d on %s: demand %s, supply %s, to procure %s, on hand %s -> %s\n",
			row.MrpProductID,
			row.Date.Format("2006-01-02"),
			row.DemandQty.String(),
			row.SupplyQty.String(),
			row.ToProcure.String(),
			row.InitialOnHand.String(),
			row.FinalOnHand.String())
	}
}

// setupBicycleFactory seeds a two-level bill of materials: a manufactured
// bike built from purchased wheels and a manufactured frame, which in turn
// consumes purchased tubes.
func setupBicycleFactory(
	catalog *memory.CatalogRepository,
	stock *memory.StockRepository,
	forecasts *memory.ForecastRepository,
	calendar *services.CalendarResolver,
) {
	catalog.AddArea(&entities.MrpArea{ID: "MAIN", Name: "Main Warehouse", CalendarID: "weekdays"})
	calendar.SetCalendar("MAIN", services.NewWeekdayCalendar("weekdays"))

	one := decimal.NewFromInt(1)
	products := []struct {
		id     entities.ProductID
		name   string
		policy entities.PlanningPolicy
	}{
		{"BIKE", "City Bike", entities.PlanningPolicy{
			SupplyMethod: entities.Make,
			LeadTimeDays: 2,
		}},
		{"FRAME", "Steel Frame", entities.PlanningPolicy{
			SupplyMethod: entities.Make,
			LeadTimeDays: 3,
		}},
		{"WHEEL", "28 Inch Wheel", entities.PlanningPolicy{
			SupplyMethod: entities.Buy,
			LeadTimeDays: 7,
			MinOrderQty:  decimal.NewFromInt(20),
		}},
		{"TUBE", "Steel Tube", entities.PlanningPolicy{
			SupplyMethod: entities.Buy,
			LeadTimeDays: 14,
			GroupingDays: 7,
		}},
	}
	for _, p := range products {
		catalog.AddProduct(&entities.Product{
			ID:          p.id,
			Name:        p.name,
			Type:        entities.Stockable,
			UOMRounding: one,
		})
		catalog.SetPolicy(p.id, "MAIN", p.policy)
	}

	catalog.AddBOM(&entities.BOM{
		ID: "BOM-BIKE", ProductID: "BIKE", Active: true,
		Lines: []entities.BOMLine{
			{Component: "WHEEL", QtyPer: decimal.NewFromInt(2)},
			{Component: "FRAME", QtyPer: one},
		},
	})
	catalog.AddBOM(&entities.BOM{
		ID: "BOM-FRAME", ProductID: "FRAME", Active: true,
		Lines: []entities.BOMLine{
			{Component: "TUBE", QtyPer: decimal.NewFromInt(4)},
		},
	})

	stock.SetAvailability("WHEEL", "MAIN", decimal.NewFromInt(10))
	stock.SetAvailability("TUBE", "MAIN", decimal.NewFromInt(40))

	today := time.Now()
	forecasts.AddEstimate(&entities.DemandEstimate{
		ProductID: "BIKE",
		AreaID:    "MAIN",
		DateStart: today.AddDate(0, 0, 14),
		DateEnd:   today.AddDate(0, 0, 18),
		DailyQty:  decimal.NewFromInt(5),
	})
}
