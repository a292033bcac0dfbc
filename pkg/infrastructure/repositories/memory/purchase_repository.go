package memory

import (
	"context"

	"mrp-multilevel/pkg/domain/entities"
	"mrp-multilevel/pkg/domain/repositories"
)

// PurchaseRepository provides in-memory open purchase line storage
type PurchaseRepository struct {
	lines []*entities.PurchaseLine
}

// NewPurchaseRepository creates a new in-memory purchase repository
func NewPurchaseRepository() *PurchaseRepository {
	return &PurchaseRepository{}
}

// Verify interface compliance
var _ repositories.PurchaseRepository = (*PurchaseRepository)(nil)

// AddLine adds an open purchase line
func (r *PurchaseRepository) AddLine(l *entities.PurchaseLine) {
	r.lines = append(r.lines, l)
}

// ListOpenPurchaseLines returns the open purchase lines delivering the
// product into the area
func (r *PurchaseRepository) ListOpenPurchaseLines(ctx context.Context, product entities.ProductID, area entities.AreaID) ([]*entities.PurchaseLine, error) {
	var out []*entities.PurchaseLine
	for _, l := range r.lines {
		if l.ProductID == product && l.AreaID == area && l.Open() {
			out = append(out, l)
		}
	}
	return out, nil
}
