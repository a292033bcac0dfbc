package repositories

import (
	"context"

	"mrp-multilevel/pkg/domain/entities"
)

// CatalogRepository provides access to the external product catalog: products,
// bills of materials, MRP areas and per-product planning policies.
type CatalogRepository interface {
	GetAllProducts(ctx context.Context) ([]*entities.Product, error)
	GetAllBOMs(ctx context.Context) ([]*entities.BOM, error)

	// GetActiveBOM returns the first active BOM with at least one line for
	// the product, or nil if none exists.
	GetActiveBOM(ctx context.Context, product entities.ProductID) (*entities.BOM, error)

	GetAllAreas(ctx context.Context) ([]*entities.MrpArea, error)

	// GetPolicy resolves the planning policy for one product in one area.
	GetPolicy(ctx context.Context, product entities.ProductID, area entities.AreaID) (entities.PlanningPolicy, error)
}
