package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"mrp-multilevel/pkg/domain/entities"
	"mrp-multilevel/pkg/domain/repositories"
)

// StockRepository provides in-memory on-hand quantities and open stock
// transfers
type StockRepository struct {
	onHand       map[policyKey]decimal.Decimal
	transfersIn  []*entities.StockTransfer
	transfersOut []*entities.StockTransfer
}

// NewStockRepository creates a new in-memory stock repository
func NewStockRepository() *StockRepository {
	return &StockRepository{
		onHand: make(map[policyKey]decimal.Decimal),
	}
}

// Verify interface compliance
var _ repositories.StockRepository = (*StockRepository)(nil)

// SetAvailability registers the on-hand quantity for a product/area pair
func (r *StockRepository) SetAvailability(product entities.ProductID, area entities.AreaID, qty decimal.Decimal) {
	r.onHand[policyKey{product, area}] = qty
}

// AddTransferIn adds an open inbound transfer
func (r *StockRepository) AddTransferIn(t *entities.StockTransfer) {
	r.transfersIn = append(r.transfersIn, t)
}

// AddTransferOut adds an open outbound transfer
func (r *StockRepository) AddTransferOut(t *entities.StockTransfer) {
	r.transfersOut = append(r.transfersOut, t)
}

// GetAvailability returns the on-hand quantity for a product/area pair
func (r *StockRepository) GetAvailability(ctx context.Context, product entities.ProductID, area entities.AreaID) (decimal.Decimal, error) {
	return r.onHand[policyKey{product, area}], nil
}

// ListOpenTransfersIn returns the open inbound transfers for a product/area
// pair
func (r *StockRepository) ListOpenTransfersIn(ctx context.Context, product entities.ProductID, area entities.AreaID) ([]*entities.StockTransfer, error) {
	return filterTransfers(r.transfersIn, product, area), nil
}

// ListOpenTransfersOut returns the open outbound transfers for a product/area
// pair
func (r *StockRepository) ListOpenTransfersOut(ctx context.Context, product entities.ProductID, area entities.AreaID) ([]*entities.StockTransfer, error) {
	return filterTransfers(r.transfersOut, product, area), nil
}

func filterTransfers(transfers []*entities.StockTransfer, product entities.ProductID, area entities.AreaID) []*entities.StockTransfer {
	var out []*entities.StockTransfer
	for _, t := range transfers {
		if t.ProductID == product && t.AreaID == area && t.Open() {
			out = append(out, t)
		}
	}
	return out
}
