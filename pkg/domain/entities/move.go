package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoveType distinguishes demand events from supply events on a timeline.
type MoveType int

const (
	Demand MoveType = iota
	Supply
)

func (t MoveType) String() string {
	switch t {
	case Demand:
		return "Demand"
	case Supply:
		return "Supply"
	default:
		return "Unknown"
	}
}

// MoveOrigin records which document or phase produced a timeline event.
type MoveOrigin int

const (
	OriginNone MoveOrigin = iota
	OriginForecast
	OriginStockMove
	OriginPurchaseOrder
	OriginExplosion
)

func (o MoveOrigin) String() string {
	switch o {
	case OriginForecast:
		return "Forecast"
	case OriginStockMove:
		return "StockMove"
	case OriginPurchaseOrder:
		return "PurchaseOrder"
	case OriginExplosion:
		return "Explosion"
	default:
		return "None"
	}
}

// MoveAction marks a proposed replenishment on a supply event.
type MoveAction int

const (
	ActionNone MoveAction = iota
	ActionProposeBuy
	ActionProposeMake
)

func (a MoveAction) String() string {
	switch a {
	case ActionProposeBuy:
		return "ProposeBuy"
	case ActionProposeMake:
		return "ProposeMake"
	default:
		return "None"
	}
}

// MrpProduct is the planning unit: one product in one MRP area, with the
// on-hand snapshot and level captured at run initialisation. NbrActions and
// NbrActions4W are written once by the final time-phased pass.
type MrpProduct struct {
	ID           int64
	ProductID    ProductID
	AreaID       AreaID
	Name         string
	QtyAvailable decimal.Decimal
	LLC          int
	UOMRounding  decimal.Decimal
	Policy       PlanningPolicy

	NbrActions   int
	NbrActions4W int
}

// MrpMove is one timeline event for an MrpProduct. Quantity is signed:
// negative for demand, positive for supply. RunningAvailability is written
// once by the final time-phased pass; everything else is immutable after
// creation.
type MrpMove struct {
	ID           int64
	MrpProductID int64
	ProductID    ProductID
	AreaID       AreaID
	Name         string
	Qty          decimal.Decimal
	Date         time.Time
	Type         MoveType
	Origin       MoveOrigin
	Action       MoveAction
	ActionDate   time.Time // set only on actionable supply
	Processed    bool      // true once a proposal has been converted into a real document

	OrderNumber     string
	StockMoveID     string
	PurchaseOrderID string
	PurchaseLineID  string
	ProductionID    string
	ParentProductID ProductID // manufacturing parent, for exploded demand

	RunningAvailability decimal.Decimal
}

// MrpInventory is one time-phased projection row: the per-date demand, supply
// and to-procure totals plus the projected on-hand before and after the date.
// DemandQty is a positive magnitude. Produced entirely by the final pass,
// write-once.
type MrpInventory struct {
	MrpProductID  int64
	Date          time.Time
	DemandQty     decimal.Decimal
	SupplyQty     decimal.Decimal
	ToProcure     decimal.Decimal
	InitialOnHand decimal.Decimal
	FinalOnHand   decimal.Decimal
}
