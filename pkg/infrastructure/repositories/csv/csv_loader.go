package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mrp-multilevel/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

// Loader handles loading planning data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadAreas loads MRP areas from a CSV file
func (l *Loader) LoadAreas(filename string) ([]*entities.MrpArea, error) {
	records, err := readAll(filename, "areas")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"area_id", "name", "location_id", "calendar_id"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("areas CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var areas []*entities.MrpArea
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("areas CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		areas = append(areas, &entities.MrpArea{
			ID:         entities.AreaID(record[0]),
			Name:       record[1],
			LocationID: record[2],
			CalendarID: record[3],
		})
	}
	return areas, nil
}

// LoadProducts loads products from a CSV file
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readAll(filename, "products")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "name", "type", "uom_rounding", "excluded"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("products CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var products []*entities.Product
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("products CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		product, err := parseProduct(record)
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		products = append(products, product)
	}
	return products, nil
}

// LoadBOMs loads bills of materials from a CSV file. Rows sharing a bom_id
// form the lines of one BOM; rows of a BOM must be contiguous.
func (l *Loader) LoadBOMs(filename string) ([]*entities.BOM, error) {
	records, err := readAll(filename, "boms")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"bom_id", "parent_id", "active", "component_id", "qty_per"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("boms CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var boms []*entities.BOM
	var current *entities.BOM
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("boms CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		bomID := record[0]
		if current == nil || current.ID != bomID {
			active, err := strconv.ParseBool(record[2])
			if err != nil {
				return nil, fmt.Errorf("boms CSV row %d: invalid active: %s", i+2, record[2])
			}
			current = &entities.BOM{
				ID:        bomID,
				ProductID: entities.ProductID(record[1]),
				Active:    active,
			}
			boms = append(boms, current)
		}

		qtyPer, err := decimal.NewFromString(record[4])
		if err != nil {
			return nil, fmt.Errorf("boms CSV row %d: invalid qty_per: %s", i+2, record[4])
		}
		line, err := entities.NewBOMLine(entities.ProductID(record[3]), qtyPer)
		if err != nil {
			return nil, fmt.Errorf("boms CSV row %d: %w", i+2, err)
		}
		current.Lines = append(current.Lines, *line)
	}
	return boms, nil
}

// PolicyRecord pairs a planning policy with the product/area it applies to
type PolicyRecord struct {
	ProductID entities.ProductID
	AreaID    entities.AreaID
	Policy    entities.PlanningPolicy
}

// LoadPolicies loads per-product planning policies from a CSV file
func (l *Loader) LoadPolicies(filename string) ([]PolicyRecord, error) {
	records, err := readAll(filename, "policies")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{
		"product_id", "area_id", "supply_method", "lead_time_days",
		"transit_delay_days", "inspection_delay_days", "minimum_stock",
		"grouping_days", "min_order_qty", "max_order_qty", "qty_multiple",
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("policies CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var policies []PolicyRecord
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("policies CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		policy, err := parsePolicy(record)
		if err != nil {
			return nil, fmt.Errorf("policies CSV row %d: %w", i+2, err)
		}
		policies = append(policies, policy)
	}
	return policies, nil
}

// InventoryRecord is one on-hand quantity for a product in an area
type InventoryRecord struct {
	ProductID entities.ProductID
	AreaID    entities.AreaID
	Qty       decimal.Decimal
}

// LoadInventory loads on-hand quantities from a CSV file
func (l *Loader) LoadInventory(filename string) ([]InventoryRecord, error) {
	records, err := readAll(filename, "inventory")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "area_id", "qty_available"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("inventory CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var rows []InventoryRecord
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("inventory CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		qty, err := decimal.NewFromString(record[2])
		if err != nil {
			return nil, fmt.Errorf("inventory CSV row %d: invalid qty_available: %s", i+2, record[2])
		}
		rows = append(rows, InventoryRecord{
			ProductID: entities.ProductID(record[0]),
			AreaID:    entities.AreaID(record[1]),
			Qty:       qty,
		})
	}
	return rows, nil
}

// LoadForecasts loads demand estimates from a CSV file
func (l *Loader) LoadForecasts(filename string) ([]*entities.DemandEstimate, error) {
	records, err := readAll(filename, "forecasts")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"product_id", "area_id", "date_start", "date_end", "daily_qty"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("forecasts CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var estimates []*entities.DemandEstimate
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("forecasts CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		dateStart, err := time.Parse(dateLayout, record[2])
		if err != nil {
			return nil, fmt.Errorf("forecasts CSV row %d: invalid date_start: %s (expected YYYY-MM-DD)", i+2, record[2])
		}
		dateEnd, err := time.Parse(dateLayout, record[3])
		if err != nil {
			return nil, fmt.Errorf("forecasts CSV row %d: invalid date_end: %s (expected YYYY-MM-DD)", i+2, record[3])
		}
		dailyQty, err := decimal.NewFromString(record[4])
		if err != nil {
			return nil, fmt.Errorf("forecasts CSV row %d: invalid daily_qty: %s", i+2, record[4])
		}

		estimates = append(estimates, &entities.DemandEstimate{
			ProductID: entities.ProductID(record[0]),
			AreaID:    entities.AreaID(record[1]),
			DateStart: dateStart,
			DateEnd:   dateEnd,
			DailyQty:  dailyQty,
		})
	}
	return estimates, nil
}

// LoadTransfers loads open stock transfers from a CSV file. The direction
// column is "in" or "out" relative to the area. Returns the inbound and
// outbound transfers separately.
func (l *Loader) LoadTransfers(filename string) (in, out []*entities.StockTransfer, err error) {
	records, err := readAll(filename, "transfers")
	if err != nil {
		return nil, nil, err
	}

	expectedHeader := []string{
		"id", "name", "product_id", "area_id", "direction", "qty",
		"expected_date", "state", "purchase_order_id", "purchase_order_name",
		"purchase_line_id", "production_id", "production_name",
		"dest_production_id", "dest_production_name", "dest_parent_product_id",
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, nil, fmt.Errorf("transfers CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, nil, fmt.Errorf("transfers CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		qty, err := decimal.NewFromString(record[5])
		if err != nil {
			return nil, nil, fmt.Errorf("transfers CSV row %d: invalid qty: %s", i+2, record[5])
		}
		expectedDate, err := parseOptionalDate(record[6])
		if err != nil {
			return nil, nil, fmt.Errorf("transfers CSV row %d: invalid expected_date: %s (expected YYYY-MM-DD)", i+2, record[6])
		}

		transfer := &entities.StockTransfer{
			ID:                record[0],
			Name:              record[1],
			ProductID:         entities.ProductID(record[2]),
			AreaID:            entities.AreaID(record[3]),
			Qty:               qty,
			ExpectedDate:      expectedDate,
			State:             record[7],
			PurchaseOrderID:   record[8],
			PurchaseOrderName: record[9],
			PurchaseLineID:    record[10],
			ProductionID:      record[11],
			ProductionName:    record[12],

			DestProductionID:    record[13],
			DestProductionName:  record[14],
			DestParentProductID: entities.ProductID(record[15]),
		}

		switch strings.ToLower(record[4]) {
		case "in":
			in = append(in, transfer)
		case "out":
			out = append(out, transfer)
		default:
			return nil, nil, fmt.Errorf("transfers CSV row %d: invalid direction: %s (expected in or out)", i+2, record[4])
		}
	}
	return in, out, nil
}

// LoadPurchaseLines loads open purchase order lines from a CSV file
func (l *Loader) LoadPurchaseLines(filename string) ([]*entities.PurchaseLine, error) {
	records, err := readAll(filename, "purchase lines")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"id", "order_id", "order_name", "product_id", "area_id", "qty", "planned_date", "state"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("purchase lines CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var lines []*entities.PurchaseLine
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("purchase lines CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		qty, err := decimal.NewFromString(record[5])
		if err != nil {
			return nil, fmt.Errorf("purchase lines CSV row %d: invalid qty: %s", i+2, record[5])
		}
		plannedDate, err := parseOptionalDate(record[6])
		if err != nil {
			return nil, fmt.Errorf("purchase lines CSV row %d: invalid planned_date: %s (expected YYYY-MM-DD)", i+2, record[6])
		}

		lines = append(lines, &entities.PurchaseLine{
			ID:          record[0],
			OrderID:     record[1],
			OrderName:   record[2],
			ProductID:   entities.ProductID(record[3]),
			AreaID:      entities.AreaID(record[4]),
			Qty:         qty,
			PlannedDate: plannedDate,
			State:       record[7],
		})
	}
	return lines, nil
}

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseProduct(record []string) (*entities.Product, error) {
	productType, err := parseProductType(record[2])
	if err != nil {
		return nil, err
	}

	rounding, err := decimal.NewFromString(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid uom_rounding: %s", record[3])
	}

	excluded, err := strconv.ParseBool(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid excluded: %s", record[4])
	}

	return &entities.Product{
		ID:          entities.ProductID(record[0]),
		Name:        record[1],
		Type:        productType,
		UOMRounding: rounding,
		Excluded:    excluded,
	}, nil
}

func parseProductType(s string) (entities.ProductType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stockable", "product":
		return entities.Stockable, nil
	case "consumable", "consu":
		return entities.Consumable, nil
	case "service":
		return entities.Service, nil
	default:
		return 0, fmt.Errorf("invalid product type: %s", s)
	}
}

func parsePolicy(record []string) (PolicyRecord, error) {
	method, err := parseSupplyMethod(record[2])
	if err != nil {
		return PolicyRecord{}, err
	}

	leadTimeDays, err := strconv.Atoi(record[3])
	if err != nil {
		return PolicyRecord{}, fmt.Errorf("invalid lead_time_days: %s", record[3])
	}
	transitDelayDays, err := strconv.Atoi(record[4])
	if err != nil {
		return PolicyRecord{}, fmt.Errorf("invalid transit_delay_days: %s", record[4])
	}
	inspectionDelayDays, err := strconv.Atoi(record[5])
	if err != nil {
		return PolicyRecord{}, fmt.Errorf("invalid inspection_delay_days: %s", record[5])
	}
	minimumStock, err := decimal.NewFromString(record[6])
	if err != nil {
		return PolicyRecord{}, fmt.Errorf("invalid minimum_stock: %s", record[6])
	}
	groupingDays, err := strconv.Atoi(record[7])
	if err != nil {
		return PolicyRecord{}, fmt.Errorf("invalid grouping_days: %s", record[7])
	}
	minOrderQty, err := decimal.NewFromString(record[8])
	if err != nil {
		return PolicyRecord{}, fmt.Errorf("invalid min_order_qty: %s", record[8])
	}
	maxOrderQty, err := decimal.NewFromString(record[9])
	if err != nil {
		return PolicyRecord{}, fmt.Errorf("invalid max_order_qty: %s", record[9])
	}
	qtyMultiple, err := decimal.NewFromString(record[10])
	if err != nil {
		return PolicyRecord{}, fmt.Errorf("invalid qty_multiple: %s", record[10])
	}

	return PolicyRecord{
		ProductID: entities.ProductID(record[0]),
		AreaID:    entities.AreaID(record[1]),
		Policy: entities.PlanningPolicy{
			SupplyMethod:        method,
			LeadTimeDays:        leadTimeDays,
			TransitDelayDays:    transitDelayDays,
			InspectionDelayDays: inspectionDelayDays,
			MinimumStock:        minimumStock,
			GroupingDays:        groupingDays,
			MinOrderQty:         minOrderQty,
			MaxOrderQty:         maxOrderQty,
			QtyMultiple:         qtyMultiple,
		},
	}, nil
}

func parseSupplyMethod(s string) (entities.SupplyMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy", "purchase":
		return entities.Buy, nil
	case "make", "manufacture":
		return entities.Make, nil
	default:
		return 0, fmt.Errorf("invalid supply method: %s", s)
	}
}

// parseOptionalDate parses a YYYY-MM-DD date, mapping the empty string to the
// zero time. Documents without a scheduled date are skipped by the collector.
func parseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
