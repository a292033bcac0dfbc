package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DemandEstimate is a forecast record: a constant daily demand quantity over
// an inclusive date range.
type DemandEstimate struct {
	ProductID ProductID
	AreaID    AreaID
	DateStart time.Time
	DateEnd   time.Time
	DailyQty  decimal.Decimal
}

// StockTransfer is an open stock movement crossing an MRP area boundary.
// The optional document links let the collector resolve the originating
// order number: a linked purchase line, the producing manufacturing order,
// or a manufacturing order consuming a downstream linked transfer.
type StockTransfer struct {
	ID           string
	Name         string
	ProductID    ProductID
	AreaID       AreaID
	Qty          decimal.Decimal
	ExpectedDate time.Time
	State        string

	PurchaseOrderID   string
	PurchaseOrderName string
	PurchaseLineID    string

	ProductionID   string
	ProductionName string

	// Set when a destination transfer feeds a manufacturing order.
	DestProductionID    string
	DestProductionName  string
	DestParentProductID ProductID
}

// Open reports whether the transfer still moves stock. Done and cancelled
// transfers are finished documents and carry no future supply or demand.
func (t *StockTransfer) Open() bool {
	return t.State != "done" && t.State != "cancel"
}

// PurchaseLine is an open purchase order line delivering into an MRP area.
type PurchaseLine struct {
	ID          string
	OrderID     string
	OrderName   string
	ProductID   ProductID
	AreaID      AreaID
	Qty         decimal.Decimal
	PlannedDate time.Time
	State       string
}

// Open reports whether the line still awaits receipt. Only lines on draft,
// sent and to-approve orders count as incoming supply.
func (l *PurchaseLine) Open() bool {
	switch l.State {
	case "draft", "sent", "to approve":
		return true
	}
	return false
}
