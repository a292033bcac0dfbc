package planner

import (
	"mrp-multilevel/pkg/domain/entities"
)

// assignLowLevelCodes assigns every product its low-level code: the longest
// path from the product to any top-level (non-component) product in the BOM
// graph. All products start at level 0; each iteration pushes the components
// of the current frontier one level down, until no product moves. Returns the
// number of levels (the calculation's loop bound).
//
// On an acyclic graph of N products the loop terminates within N iterations;
// a graph that keeps pushing past that bound contains a cycle and is reported
// as a fatal configuration error.
func assignLowLevelCodes(products []*entities.Product, boms []*entities.BOM) (int, error) {
	byID := make(map[entities.ProductID]*entities.Product, len(products))
	for _, prod := range products {
		prod.LLC = 0
		byID[prod.ID] = prod
	}

	llc := 0
	for {
		next := llc + 1
		if next > len(products) {
			return 0, ErrBOMCycle
		}
		moved := 0
		for _, bom := range boms {
			parent := byID[bom.ProductID]
			if parent == nil || parent.LLC != llc {
				continue
			}
			for _, line := range bom.Lines {
				comp := byID[line.Component]
				if comp == nil || comp.LLC == next {
					continue
				}
				// Push the component below the deepest parent seen so far.
				comp.LLC = next
				moved++
			}
		}
		if moved == 0 {
			break
		}
		llc = next
	}
	return llc + 1, nil
}
