package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"mrp-multilevel/pkg/domain/entities"
)

// StockRepository provides access to current on-hand quantities and open
// stock transfers. Availability is summed over the child locations of the
// area; the transfer listings return only open documents (not done or
// cancelled) with a positive quantity.
type StockRepository interface {
	GetAvailability(ctx context.Context, product entities.ProductID, area entities.AreaID) (decimal.Decimal, error)
	ListOpenTransfersIn(ctx context.Context, product entities.ProductID, area entities.AreaID) ([]*entities.StockTransfer, error)
	ListOpenTransfersOut(ctx context.Context, product entities.ProductID, area entities.AreaID) ([]*entities.StockTransfer, error)
}
