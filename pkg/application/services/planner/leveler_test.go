package planner

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"mrp-multilevel/pkg/domain/entities"
)

func levelerProducts(ids ...entities.ProductID) []*entities.Product {
	var products []*entities.Product
	for _, id := range ids {
		products = append(products, &entities.Product{ID: id, Type: entities.Stockable})
	}
	return products
}

func levelerBOM(parent entities.ProductID, components ...entities.ProductID) *entities.BOM {
	bom := &entities.BOM{ID: string(parent) + "-bom", ProductID: parent, Active: true}
	for _, comp := range components {
		bom.Lines = append(bom.Lines, entities.BOMLine{Component: comp, QtyPer: decimal.NewFromInt(1)})
	}
	return bom
}

func TestAssignLowLevelCodes_Chain(t *testing.T) {
	products := levelerProducts("A", "B", "C")
	boms := []*entities.BOM{
		levelerBOM("A", "B"),
		levelerBOM("B", "C"),
	}

	levels, err := assignLowLevelCodes(products, boms)
	if err != nil {
		t.Fatalf("Failed to assign low level codes: %v", err)
	}
	if levels != 3 {
		t.Errorf("Expected 3 levels, got %d", levels)
	}

	want := map[entities.ProductID]int{"A": 0, "B": 1, "C": 2}
	for _, prod := range products {
		if prod.LLC != want[prod.ID] {
			t.Errorf("Product %s: expected LLC %d, got %d", prod.ID, want[prod.ID], prod.LLC)
		}
	}
}

func TestAssignLowLevelCodes_SharedComponentTakesDeepestLevel(t *testing.T) {
	// C is consumed both at the top level (by A) and one level down (by B);
	// its code must be the longest path.
	products := levelerProducts("A", "B", "C")
	boms := []*entities.BOM{
		levelerBOM("A", "B", "C"),
		levelerBOM("B", "C"),
	}

	levels, err := assignLowLevelCodes(products, boms)
	if err != nil {
		t.Fatalf("Failed to assign low level codes: %v", err)
	}
	if levels != 3 {
		t.Errorf("Expected 3 levels, got %d", levels)
	}

	byID := make(map[entities.ProductID]int)
	for _, prod := range products {
		byID[prod.ID] = prod.LLC
	}
	if byID["C"] != 2 {
		t.Errorf("Expected shared component C at level 2, got %d", byID["C"])
	}
	if byID["B"] != 1 {
		t.Errorf("Expected B at level 1, got %d", byID["B"])
	}
}

func TestAssignLowLevelCodes_FlatCatalog(t *testing.T) {
	products := levelerProducts("A", "B")

	levels, err := assignLowLevelCodes(products, nil)
	if err != nil {
		t.Fatalf("Failed to assign low level codes: %v", err)
	}
	if levels != 1 {
		t.Errorf("Expected 1 level without BOMs, got %d", levels)
	}
}

func TestAssignLowLevelCodes_CycleDetected(t *testing.T) {
	products := levelerProducts("A", "B")
	boms := []*entities.BOM{
		levelerBOM("A", "B"),
		levelerBOM("B", "A"),
	}

	_, err := assignLowLevelCodes(products, boms)
	if !errors.Is(err, ErrBOMCycle) {
		t.Fatalf("Expected ErrBOMCycle, got %v", err)
	}
}

func TestAssignLowLevelCodes_SelfReferenceDetected(t *testing.T) {
	products := levelerProducts("A")
	boms := []*entities.BOM{levelerBOM("A", "A")}

	_, err := assignLowLevelCodes(products, boms)
	if !errors.Is(err, ErrBOMCycle) {
		t.Fatalf("Expected ErrBOMCycle, got %v", err)
	}
}
