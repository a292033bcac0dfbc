package events

import (
	"time"

	"github.com/shopspring/decimal"

	"mrp-multilevel/pkg/domain/entities"
)

const (
	RunStartedEvent     = "run.started"
	RunFinishedEvent    = "run.finished"
	LevelsComputedEvent = "levels.computed"
	ProductPlannedEvent = "product.planned"
	OrderProposedEvent  = "order.proposed"
	AnomalySkippedEvent = "anomaly.skipped"
)

// RunStarted marks the beginning of a planning run.
type RunStarted struct {
	RunID string    `json:"run_id"`
	Today time.Time `json:"today"`
}

// RunFinished marks the end of a planning run.
type RunFinished struct {
	RunID          string `json:"run_id"`
	MovesCreated   int    `json:"moves_created"`
	OrdersProposed int    `json:"orders_proposed"`
}

// LevelsComputed records the outcome of the low-level-code pass.
type LevelsComputed struct {
	Levels   int `json:"levels"`
	Products int `json:"products"`
}

// ProductPlanned records completion of one planning unit's requirements pass.
type ProductPlanned struct {
	ProductID entities.ProductID `json:"product_id"`
	AreaID    entities.AreaID    `json:"area_id"`
	LLC       int                `json:"llc"`
}

// OrderProposed records one proposed replenishment chunk.
type OrderProposed struct {
	ProductID  entities.ProductID `json:"product_id"`
	AreaID     entities.AreaID    `json:"area_id"`
	Qty        decimal.Decimal    `json:"qty"`
	Date       time.Time          `json:"date"`
	ActionDate time.Time          `json:"action_date"`
	Action     string             `json:"action"`
}

// AnomalySkipped records a locally absorbed data anomaly.
type AnomalySkipped struct {
	ProductID entities.ProductID `json:"product_id"`
	AreaID    entities.AreaID    `json:"area_id"`
	Reason    string             `json:"reason"`
}
