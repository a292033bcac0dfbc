package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"mrp-multilevel/pkg/application/services/planner"
	"mrp-multilevel/pkg/domain/repositories"
	"mrp-multilevel/pkg/domain/services"
	"mrp-multilevel/pkg/infrastructure/events"
	"mrp-multilevel/pkg/infrastructure/repositories/csv"
	"mrp-multilevel/pkg/infrastructure/repositories/memory"
	"mrp-multilevel/pkg/interfaces/cli/output"
)

// Config holds configuration for the run command
type Config struct {
	ScenarioDir string
	Format      string
	OutputDir   string
	Verbose     bool
	Workers     int
}

// RunCommand loads a scenario from CSV files, executes a full planning run
// and renders the result.
type RunCommand struct {
	config Config
	log    zerolog.Logger
	store  repositories.ResultStore
}

// NewRunCommand creates a new run command
func NewRunCommand(config Config, log zerolog.Logger, store repositories.ResultStore) *RunCommand {
	return &RunCommand{config: config, log: log, store: store}
}

// Execute runs the planning run end to end
func (c *RunCommand) Execute(ctx context.Context) error {
	if c.config.ScenarioDir == "" {
		return fmt.Errorf("must specify a scenario directory")
	}

	catalog, stock, forecasts, purchases, calendar, err := c.loadScenario()
	if err != nil {
		return err
	}

	opts := []planner.Option{
		planner.WithLogger(c.log),
		planner.WithEventStore(events.NewInMemoryEventStore()),
	}
	if c.store != nil {
		opts = append(opts, planner.WithResultStore(c.store))
	}
	if c.config.Workers > 0 {
		opts = append(opts, planner.WithWorkers(c.config.Workers))
	}

	p := planner.New(catalog, stock, forecasts, purchases, calendar, opts...)
	result, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("planning run failed: %w", err)
	}

	return output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}

// loadScenario reads the scenario CSV files into in-memory repositories.
// Areas, products, policies and BOMs are required; the document files are
// optional and an absent file simply contributes no events.
func (c *RunCommand) loadScenario() (
	*memory.CatalogRepository,
	*memory.StockRepository,
	*memory.ForecastRepository,
	*memory.PurchaseRepository,
	services.CalendarService,
	error,
) {
	loader := csv.NewLoader()
	dir := c.config.ScenarioDir

	areas, err := loader.LoadAreas(filepath.Join(dir, "areas.csv"))
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("error loading areas: %w", err)
	}
	products, err := loader.LoadProducts(filepath.Join(dir, "products.csv"))
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("error loading products: %w", err)
	}
	boms, err := loader.LoadBOMs(filepath.Join(dir, "boms.csv"))
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("error loading BOMs: %w", err)
	}
	policies, err := loader.LoadPolicies(filepath.Join(dir, "policies.csv"))
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("error loading policies: %w", err)
	}

	catalog := memory.NewCatalogRepository()
	calendar := services.NewCalendarResolver()
	for _, a := range areas {
		catalog.AddArea(a)
		if a.CalendarID != "" {
			calendar.SetCalendar(a.ID, services.NewWeekdayCalendar(a.CalendarID))
		}
	}
	for _, p := range products {
		catalog.AddProduct(p)
	}
	for _, b := range boms {
		catalog.AddBOM(b)
	}
	for _, rec := range policies {
		catalog.SetPolicy(rec.ProductID, rec.AreaID, rec.Policy)
	}

	stock := memory.NewStockRepository()
	if path := filepath.Join(dir, "inventory.csv"); fileExists(path) {
		rows, err := loader.LoadInventory(path)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("error loading inventory: %w", err)
		}
		for _, row := range rows {
			stock.SetAvailability(row.ProductID, row.AreaID, row.Qty)
		}
	}
	if path := filepath.Join(dir, "transfers.csv"); fileExists(path) {
		in, out, err := loader.LoadTransfers(path)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("error loading transfers: %w", err)
		}
		for _, t := range in {
			stock.AddTransferIn(t)
		}
		for _, t := range out {
			stock.AddTransferOut(t)
		}
	}

	forecasts := memory.NewForecastRepository()
	if path := filepath.Join(dir, "forecasts.csv"); fileExists(path) {
		estimates, err := loader.LoadForecasts(path)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("error loading forecasts: %w", err)
		}
		for _, e := range estimates {
			forecasts.AddEstimate(e)
		}
	}

	purchases := memory.NewPurchaseRepository()
	if path := filepath.Join(dir, "purchase_lines.csv"); fileExists(path) {
		lines, err := loader.LoadPurchaseLines(path)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("error loading purchase lines: %w", err)
		}
		for _, l := range lines {
			purchases.AddLine(l)
		}
	}

	if c.config.Verbose {
		fmt.Printf("✅ Scenario loaded: %d areas, %d products, %d BOMs\n\n",
			len(areas), len(products), len(boms))
	}
	return catalog, stock, forecasts, purchases, calendar, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
