package repositories

import (
	"context"

	"mrp-multilevel/pkg/domain/entities"
)

// ResultStore persists the finished output of a planning run. Cleanup
// destroys every row left over from a prior run; a run is always rebuilt
// from scratch, never incrementally.
type ResultStore interface {
	Cleanup(ctx context.Context) error
	SaveRun(ctx context.Context, runID string,
		products []*entities.MrpProduct,
		moves []*entities.MrpMove,
		inventory []*entities.MrpInventory) error
}
