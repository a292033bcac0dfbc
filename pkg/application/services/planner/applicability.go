package planner

import (
	"mrp-multilevel/pkg/domain/entities"
)

// computeApplicability marks every stockable product applicable to planning
// and returns the applicable count. Area-specific suppression happens later
// through the exclusion hook; this pass only sets the global flag.
func (p *Planner) computeApplicability(r *run) int {
	count := 0
	for _, prod := range r.products {
		prod.Applicable = prod.Type == entities.Stockable
		if prod.Applicable {
			count++
		}
	}
	return count
}
