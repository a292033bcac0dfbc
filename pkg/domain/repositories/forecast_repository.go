package repositories

import (
	"context"
	"time"

	"mrp-multilevel/pkg/domain/entities"
)

// ForecastRepository provides access to demand estimate records. ListForecasts
// returns every estimate for the product and area whose date range ends on or
// after the given date.
type ForecastRepository interface {
	ListForecasts(ctx context.Context, product entities.ProductID, area entities.AreaID, from time.Time) ([]*entities.DemandEstimate, error)
}
