package dto

import (
	"time"

	"mrp-multilevel/pkg/domain/entities"
)

// RunStats holds per-phase counters for one planning run.
type RunStats struct {
	Levels          int           `json:"levels"`
	ProductsPlanned int           `json:"products_planned"`
	MovesCreated    int           `json:"moves_created"`
	OrdersProposed  int           `json:"orders_proposed"`
	InventoryRows   int           `json:"inventory_rows"`
	Elapsed         time.Duration `json:"elapsed"`
}

// RunResult is the complete output of a planning run: every planning unit,
// every timeline event and every time-phased projection row, available for
// downstream reporting and export.
type RunResult struct {
	RunID        string                   `json:"run_id"`
	PlanningDate time.Time                `json:"planning_date"`
	Products     []*entities.MrpProduct   `json:"products"`
	Moves        []*entities.MrpMove      `json:"moves"`
	Inventory    []*entities.MrpInventory `json:"inventory"`
	Stats        RunStats                 `json:"stats"`
}
