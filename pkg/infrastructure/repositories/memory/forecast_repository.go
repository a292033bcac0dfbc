package memory

import (
	"context"
	"time"

	"mrp-multilevel/pkg/domain/entities"
	"mrp-multilevel/pkg/domain/repositories"
)

// ForecastRepository provides in-memory demand estimate storage
type ForecastRepository struct {
	estimates []*entities.DemandEstimate
}

// NewForecastRepository creates a new in-memory forecast repository
func NewForecastRepository() *ForecastRepository {
	return &ForecastRepository{}
}

// Verify interface compliance
var _ repositories.ForecastRepository = (*ForecastRepository)(nil)

// AddEstimate adds a demand estimate
func (r *ForecastRepository) AddEstimate(e *entities.DemandEstimate) {
	r.estimates = append(r.estimates, e)
}

// ListForecasts returns every estimate for the product and area whose range
// ends on or after the given date
func (r *ForecastRepository) ListForecasts(ctx context.Context, product entities.ProductID, area entities.AreaID, from time.Time) ([]*entities.DemandEstimate, error) {
	var out []*entities.DemandEstimate
	for _, e := range r.estimates {
		if e.ProductID == product && e.AreaID == area && !e.DateEnd.Before(from) {
			out = append(out, e)
		}
	}
	return out, nil
}
