package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"mrp-multilevel/pkg/domain/entities"
)

func TestCatalogRepository_GetActiveBOM(t *testing.T) {
	repo := NewCatalogRepository()

	line, err := entities.NewBOMLine("WHEEL", decimal.NewFromInt(4))
	if err != nil {
		t.Fatalf("Failed to create BOM line: %v", err)
	}

	repo.AddBOM(&entities.BOM{ID: "B1", ProductID: "BIKE", Active: false, Lines: []entities.BOMLine{*line}})
	repo.AddBOM(&entities.BOM{ID: "B2", ProductID: "BIKE", Active: true})
	repo.AddBOM(&entities.BOM{ID: "B3", ProductID: "BIKE", Active: true, Lines: []entities.BOMLine{*line}})

	bom, err := repo.GetActiveBOM(context.Background(), "BIKE")
	if err != nil {
		t.Fatalf("Failed to get active BOM: %v", err)
	}
	if bom == nil {
		t.Fatal("Expected an active BOM, got nil")
	}
	if bom.ID != "B3" {
		t.Errorf("Expected BOM B3 (first active with lines), got %s", bom.ID)
	}

	bom, err = repo.GetActiveBOM(context.Background(), "WHEEL")
	if err != nil {
		t.Fatalf("Failed to get active BOM: %v", err)
	}
	if bom != nil {
		t.Errorf("Expected nil for a product without a BOM, got %v", bom)
	}
}

func TestCatalogRepository_GetPolicy_DefaultsToZeroPolicy(t *testing.T) {
	repo := NewCatalogRepository()

	repo.SetPolicy("BIKE", "MAIN", entities.PlanningPolicy{
		SupplyMethod: entities.Make,
		LeadTimeDays: 5,
	})

	policy, err := repo.GetPolicy(context.Background(), "BIKE", "MAIN")
	if err != nil {
		t.Fatalf("Failed to get policy: %v", err)
	}
	if policy.SupplyMethod != entities.Make {
		t.Errorf("Expected supply method %v, got %v", entities.Make, policy.SupplyMethod)
	}
	if policy.LeadTimeDays != 5 {
		t.Errorf("Expected lead time 5, got %d", policy.LeadTimeDays)
	}

	policy, err = repo.GetPolicy(context.Background(), "WHEEL", "MAIN")
	if err != nil {
		t.Fatalf("Failed to get policy: %v", err)
	}
	if policy.SupplyMethod != entities.Buy {
		t.Errorf("Expected unregistered pair to default to buy, got %v", policy.SupplyMethod)
	}
	if !policy.MinimumStock.IsZero() {
		t.Errorf("Expected zero minimum stock, got %s", policy.MinimumStock)
	}
}

func TestStockRepository_FiltersByProductAndArea(t *testing.T) {
	repo := NewStockRepository()

	repo.SetAvailability("BIKE", "MAIN", decimal.NewFromInt(12))
	repo.AddTransferIn(&entities.StockTransfer{ID: "T1", ProductID: "BIKE", AreaID: "MAIN", Qty: decimal.NewFromInt(5), ExpectedDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)})
	repo.AddTransferIn(&entities.StockTransfer{ID: "T2", ProductID: "BIKE", AreaID: "SECONDARY", Qty: decimal.NewFromInt(3), ExpectedDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)})
	repo.AddTransferOut(&entities.StockTransfer{ID: "T3", ProductID: "WHEEL", AreaID: "MAIN", Qty: decimal.NewFromInt(8), ExpectedDate: time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)})

	qty, err := repo.GetAvailability(context.Background(), "BIKE", "MAIN")
	if err != nil {
		t.Fatalf("Failed to get availability: %v", err)
	}
	if !qty.Equal(decimal.NewFromInt(12)) {
		t.Errorf("Expected availability 12, got %s", qty)
	}

	in, err := repo.ListOpenTransfersIn(context.Background(), "BIKE", "MAIN")
	if err != nil {
		t.Fatalf("Failed to list inbound transfers: %v", err)
	}
	if len(in) != 1 || in[0].ID != "T1" {
		t.Errorf("Expected only transfer 1 inbound for BIKE/MAIN, got %v", in)
	}

	out, err := repo.ListOpenTransfersOut(context.Background(), "BIKE", "MAIN")
	if err != nil {
		t.Fatalf("Failed to list outbound transfers: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Expected no outbound transfers for BIKE/MAIN, got %d", len(out))
	}
}

func TestStockRepository_ClosedTransfersExcluded(t *testing.T) {
	repo := NewStockRepository()
	expected := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	repo.AddTransferIn(&entities.StockTransfer{ID: "T1", ProductID: "BIKE", AreaID: "MAIN", Qty: decimal.NewFromInt(5), ExpectedDate: expected, State: "assigned"})
	repo.AddTransferIn(&entities.StockTransfer{ID: "T2", ProductID: "BIKE", AreaID: "MAIN", Qty: decimal.NewFromInt(4), ExpectedDate: expected, State: "done"})
	repo.AddTransferOut(&entities.StockTransfer{ID: "T3", ProductID: "BIKE", AreaID: "MAIN", Qty: decimal.NewFromInt(2), ExpectedDate: expected, State: "cancel"})

	in, err := repo.ListOpenTransfersIn(context.Background(), "BIKE", "MAIN")
	if err != nil {
		t.Fatalf("Failed to list inbound transfers: %v", err)
	}
	if len(in) != 1 || in[0].ID != "T1" {
		t.Errorf("Expected only the assigned transfer inbound, got %v", in)
	}

	out, err := repo.ListOpenTransfersOut(context.Background(), "BIKE", "MAIN")
	if err != nil {
		t.Fatalf("Failed to list outbound transfers: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Expected cancelled outbound transfer to be excluded, got %d", len(out))
	}
}

func TestPurchaseRepository_ListsOnlyOpenLines(t *testing.T) {
	repo := NewPurchaseRepository()
	planned := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	repo.AddLine(&entities.PurchaseLine{ID: "L1", OrderID: "PO1", ProductID: "WHEEL", AreaID: "MAIN", Qty: decimal.NewFromInt(10), PlannedDate: planned, State: "draft"})
	repo.AddLine(&entities.PurchaseLine{ID: "L2", OrderID: "PO2", ProductID: "WHEEL", AreaID: "MAIN", Qty: decimal.NewFromInt(6), PlannedDate: planned, State: "to approve"})
	repo.AddLine(&entities.PurchaseLine{ID: "L3", OrderID: "PO3", ProductID: "WHEEL", AreaID: "MAIN", Qty: decimal.NewFromInt(8), PlannedDate: planned, State: "purchase"})
	repo.AddLine(&entities.PurchaseLine{ID: "L4", OrderID: "PO4", ProductID: "WHEEL", AreaID: "MAIN", Qty: decimal.NewFromInt(3), PlannedDate: planned, State: "cancel"})

	lines, err := repo.ListOpenPurchaseLines(context.Background(), "WHEEL", "MAIN")
	if err != nil {
		t.Fatalf("Failed to list purchase lines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("Expected 2 open lines, got %d", len(lines))
	}
	if lines[0].ID != "L1" || lines[1].ID != "L2" {
		t.Errorf("Expected lines L1 and L2, got %s and %s", lines[0].ID, lines[1].ID)
	}
}

func TestResultStore_CleanupDestroysStoredRun(t *testing.T) {
	store := NewResultStore()
	ctx := context.Background()

	err := store.SaveRun(ctx, "run-1",
		[]*entities.MrpProduct{{ID: 1, ProductID: "BIKE", AreaID: "MAIN"}},
		[]*entities.MrpMove{{ID: 1, MrpProductID: 1}},
		[]*entities.MrpInventory{{MrpProductID: 1}})
	if err != nil {
		t.Fatalf("Failed to save run: %v", err)
	}

	if store.LastRunID() != "run-1" {
		t.Errorf("Expected run id run-1, got %s", store.LastRunID())
	}
	if len(store.Moves()) != 1 {
		t.Errorf("Expected 1 stored move, got %d", len(store.Moves()))
	}

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Failed to cleanup: %v", err)
	}

	if store.LastRunID() != "" {
		t.Errorf("Expected empty run id after cleanup, got %s", store.LastRunID())
	}
	if len(store.Products()) != 0 || len(store.Moves()) != 0 || len(store.Inventory()) != 0 {
		t.Error("Expected cleanup to destroy all stored rows")
	}
}
