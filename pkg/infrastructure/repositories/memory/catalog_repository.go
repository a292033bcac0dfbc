package memory

import (
	"context"

	"mrp-multilevel/pkg/domain/entities"
	"mrp-multilevel/pkg/domain/repositories"
)

type policyKey struct {
	Product entities.ProductID
	Area    entities.AreaID
}

// CatalogRepository provides in-memory catalog storage
type CatalogRepository struct {
	products []*entities.Product
	boms     []*entities.BOM
	areas    []*entities.MrpArea
	policies map[policyKey]entities.PlanningPolicy
}

// NewCatalogRepository creates a new in-memory catalog repository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		policies: make(map[policyKey]entities.PlanningPolicy),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// AddProduct adds a product to the catalog
func (r *CatalogRepository) AddProduct(p *entities.Product) {
	r.products = append(r.products, p)
}

// AddBOM adds a bill of materials to the catalog
func (r *CatalogRepository) AddBOM(b *entities.BOM) {
	r.boms = append(r.boms, b)
}

// AddArea adds an MRP area to the catalog
func (r *CatalogRepository) AddArea(a *entities.MrpArea) {
	r.areas = append(r.areas, a)
}

// SetPolicy registers the planning policy for a product/area pair
func (r *CatalogRepository) SetPolicy(product entities.ProductID, area entities.AreaID, policy entities.PlanningPolicy) {
	r.policies[policyKey{product, area}] = policy
}

// GetAllProducts returns every product in the catalog
func (r *CatalogRepository) GetAllProducts(ctx context.Context) ([]*entities.Product, error) {
	return r.products, nil
}

// GetAllBOMs returns every bill of materials in the catalog
func (r *CatalogRepository) GetAllBOMs(ctx context.Context) ([]*entities.BOM, error) {
	return r.boms, nil
}

// GetActiveBOM returns the first active BOM with at least one line for the
// product, or nil if the product has no usable BOM
func (r *CatalogRepository) GetActiveBOM(ctx context.Context, product entities.ProductID) (*entities.BOM, error) {
	for _, b := range r.boms {
		if b.ProductID == product && b.Active && len(b.Lines) > 0 {
			return b, nil
		}
	}
	return nil, nil
}

// GetAllAreas returns every MRP area in the catalog
func (r *CatalogRepository) GetAllAreas(ctx context.Context) ([]*entities.MrpArea, error) {
	return r.areas, nil
}

// GetPolicy resolves the planning policy for a product/area pair. Pairs
// without a registered policy fall back to the zero policy: buy, no lead
// time, lot-for-lot.
func (r *CatalogRepository) GetPolicy(ctx context.Context, product entities.ProductID, area entities.AreaID) (entities.PlanningPolicy, error) {
	return r.policies[policyKey{product, area}], nil
}
