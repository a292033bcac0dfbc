package repositories

import (
	"context"

	"mrp-multilevel/pkg/domain/entities"
)

// PurchaseRepository provides access to open purchase order lines. The
// listing returns lines on draft, sent or to-approve orders delivering the
// product into the area.
type PurchaseRepository interface {
	ListOpenPurchaseLines(ctx context.Context, product entities.ProductID, area entities.AreaID) ([]*entities.PurchaseLine, error)
}
