package planner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"mrp-multilevel/pkg/application/dto"
	"mrp-multilevel/pkg/domain/entities"
	"mrp-multilevel/pkg/domain/repositories"
	"mrp-multilevel/pkg/domain/services"
	"mrp-multilevel/pkg/infrastructure/events"
)

var (
	// ErrBOMCycle is returned when the low-level-code pass does not converge
	// on the product graph.
	ErrBOMCycle = errors.New("bom graph does not converge: cycle detected")

	// ErrMRPProductNotFound is returned when a BOM explosion cannot resolve
	// the planning unit for a required component/area pair.
	ErrMRPProductNotFound = errors.New("no mrp product for component in area")
)

// ExcludeFunc decides whether a product is suppressed from planning in a
// specific area. The default implementation honors the product's Excluded
// flag.
type ExcludeFunc func(area *entities.MrpArea, product *entities.Product) bool

// AdjustQtyFunc returns the next order-quantity chunk for a requested
// quantity, encapsulating minimum/maximum/multiple order rules. The default
// implementation applies the planning policy via services.AdjustToOrder.
type AdjustQtyFunc func(mp *entities.MrpProduct, requested decimal.Decimal) decimal.Decimal

// Planner runs the multi-level MRP calculation: low-level coding, event
// collection, net requirements with lot sizing, order generation with BOM
// explosion, and the final time-phased projection.
type Planner struct {
	catalog   repositories.CatalogRepository
	stock     repositories.StockRepository
	forecasts repositories.ForecastRepository
	purchases repositories.PurchaseRepository
	calendar  services.CalendarService

	store     repositories.ResultStore
	events    *events.InMemoryEventStore
	exclude   ExcludeFunc
	adjustQty AdjustQtyFunc
	log       zerolog.Logger
	now       func() time.Time
	workers   int
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger attaches a logger; phases log at info level, absorbed data
// anomalies at warn level.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Planner) { p.log = log }
}

// WithClock overrides the time source used to resolve "today".
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// WithResultStore persists the finished run to the store; the store is
// cleaned up before every run.
func WithResultStore(store repositories.ResultStore) Option {
	return func(p *Planner) { p.store = store }
}

// WithEventStore records planning events to the given store.
func WithEventStore(store *events.InMemoryEventStore) Option {
	return func(p *Planner) { p.events = store }
}

// WithExcludeFunc overrides the per-area exclusion hook.
func WithExcludeFunc(fn ExcludeFunc) Option {
	return func(p *Planner) { p.exclude = fn }
}

// WithAdjustQtyFunc overrides the order-quantity adjustment hook.
func WithAdjustQtyFunc(fn AdjustQtyFunc) Option {
	return func(p *Planner) { p.adjustQty = fn }
}

// WithWorkers limits the parallelism of the collection and projection phases.
func WithWorkers(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.workers = n
		}
	}
}

// New creates a Planner over the given collaborators.
func New(
	catalog repositories.CatalogRepository,
	stock repositories.StockRepository,
	forecasts repositories.ForecastRepository,
	purchases repositories.PurchaseRepository,
	calendar services.CalendarService,
	opts ...Option,
) *Planner {
	p := &Planner{
		catalog:   catalog,
		stock:     stock,
		forecasts: forecasts,
		purchases: purchases,
		calendar:  calendar,
		log:       zerolog.Nop(),
		now:       time.Now,
		workers:   runtime.NumCPU(),
	}
	p.exclude = func(area *entities.MrpArea, product *entities.Product) bool {
		return product.Excluded
	}
	p.adjustQty = func(mp *entities.MrpProduct, requested decimal.Decimal) decimal.Decimal {
		return services.AdjustToOrder(mp.Policy, requested)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type productAreaKey struct {
	product entities.ProductID
	area    entities.AreaID
}

// run holds the mutable state of one planning run. Move creation is guarded
// by mu so the parallel collection phase and the level-ordered calculation
// share one id sequence.
type run struct {
	today time.Time

	areas         []*entities.MrpArea
	areasByID     map[entities.AreaID]*entities.MrpArea
	products      []*entities.Product
	productsByID  map[entities.ProductID]*entities.Product
	boms          []*entities.BOM
	mrpProducts   []*entities.MrpProduct
	byProductArea map[productAreaKey]*entities.MrpProduct

	mu             sync.Mutex
	moves          map[int64][]*entities.MrpMove
	moveSeq        int64
	ordersProposed int

	inventory []*entities.MrpInventory
}

func newRun(today time.Time) *run {
	return &run{
		today:         today,
		areasByID:     make(map[entities.AreaID]*entities.MrpArea),
		productsByID:  make(map[entities.ProductID]*entities.Product),
		byProductArea: make(map[productAreaKey]*entities.MrpProduct),
		moves:         make(map[int64][]*entities.MrpMove),
	}
}

// newMove assigns the next move id and appends the move to its product's
// timeline.
func (r *run) newMove(mv *entities.MrpMove) *entities.MrpMove {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moveSeq++
	mv.ID = r.moveSeq
	// A freshly planned move is never processed; conversion into a real
	// document happens outside the run.
	mv.Processed = false
	r.moves[mv.MrpProductID] = append(r.moves[mv.MrpProductID], mv)
	return mv
}

// timeline returns a copy of the product's moves in planning order: by date,
// supply before demand within a date, ids breaking the remaining ties.
func (r *run) timeline(mp *entities.MrpProduct) []*entities.MrpMove {
	r.mu.Lock()
	moves := make([]*entities.MrpMove, len(r.moves[mp.ID]))
	copy(moves, r.moves[mp.ID])
	r.mu.Unlock()
	sortForProjection(moves)
	return moves
}

// sortForProjection orders moves by (date, type desc, id): within a date,
// supply rows are applied before demand rows. Running-availability
// correctness depends on this ordering.
func sortForProjection(moves []*entities.MrpMove) {
	sort.Slice(moves, func(i, j int) bool {
		if !moves[i].Date.Equal(moves[j].Date) {
			return moves[i].Date.Before(moves[j].Date)
		}
		if moves[i].Type != moves[j].Type {
			return moves[i].Type > moves[j].Type
		}
		return moves[i].ID < moves[j].ID
	})
}

// Run executes one complete planning run and returns its output. Prior run
// state in the configured result store is destroyed first; the run itself is
// computed from scratch on a snapshot of the catalog.
func (p *Planner) Run(ctx context.Context) (*dto.RunResult, error) {
	started := time.Now()
	runID := uuid.NewString()
	today := dateOnly(p.now())
	p.publish(events.RunStartedEvent, runID, events.RunStarted{RunID: runID, Today: today})

	if p.store != nil {
		p.log.Info().Msg("start mrp cleanup")
		if err := p.store.Cleanup(ctx); err != nil {
			return nil, fmt.Errorf("cleanup prior run: %w", err)
		}
		p.log.Info().Msg("end mrp cleanup")
	}

	r := newRun(today)
	if err := p.loadSnapshot(ctx, r); err != nil {
		return nil, err
	}

	p.log.Info().Msg("start low level code calculation")
	levels, err := assignLowLevelCodes(r.products, r.boms)
	if err != nil {
		return nil, err
	}
	p.log.Info().Int("levels", levels).Msg("end low level code calculation")
	p.publish(events.LevelsComputedEvent, runID, events.LevelsComputed{Levels: levels, Products: len(r.products)})

	applicable := p.computeApplicability(r)
	p.log.Info().Int("applicable", applicable).Msg("end calculate mrp applicable")

	p.log.Info().Msg("start mrp initialisation")
	if err := p.initialize(ctx, r); err != nil {
		return nil, err
	}
	p.log.Info().Int("mrp_products", len(r.mrpProducts)).Msg("end mrp initialisation")

	p.log.Info().Msg("start mrp calculation")
	if err := p.calculate(ctx, r, levels, runID); err != nil {
		return nil, err
	}
	p.log.Info().Msg("end mrp calculation")

	p.log.Info().Msg("start mrp final process")
	if err := p.finalize(ctx, r); err != nil {
		return nil, err
	}
	p.log.Info().Msg("end mrp final process")

	result := p.assembleResult(r, runID, levels, started)

	if p.store != nil {
		if err := p.store.SaveRun(ctx, runID, result.Products, result.Moves, result.Inventory); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
	}
	p.publish(events.RunFinishedEvent, runID, events.RunFinished{
		RunID:          runID,
		MovesCreated:   result.Stats.MovesCreated,
		OrdersProposed: result.Stats.OrdersProposed,
	})
	return result, nil
}

func (p *Planner) loadSnapshot(ctx context.Context, r *run) error {
	areas, err := p.catalog.GetAllAreas(ctx)
	if err != nil {
		return fmt.Errorf("load areas: %w", err)
	}
	products, err := p.catalog.GetAllProducts(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	boms, err := p.catalog.GetAllBOMs(ctx)
	if err != nil {
		return fmt.Errorf("load boms: %w", err)
	}
	r.areas = areas
	r.products = products
	r.boms = boms
	for _, a := range areas {
		r.areasByID[a.ID] = a
	}
	for _, prod := range products {
		r.productsByID[prod.ID] = prod
	}
	return nil
}

func (p *Planner) assembleResult(r *run, runID string, levels int, started time.Time) *dto.RunResult {
	var moves []*entities.MrpMove
	for _, mp := range r.mrpProducts {
		ms := r.moves[mp.ID]
		sortForProjection(ms)
		moves = append(moves, ms...)
	}
	return &dto.RunResult{
		RunID:        runID,
		PlanningDate: r.today,
		Products:     r.mrpProducts,
		Moves:        moves,
		Inventory:    r.inventory,
		Stats: dto.RunStats{
			Levels:          levels,
			ProductsPlanned: len(r.mrpProducts),
			MovesCreated:    int(r.moveSeq),
			OrdersProposed:  r.ordersProposed,
			InventoryRows:   len(r.inventory),
			Elapsed:         time.Since(started),
		},
	}
}

func (p *Planner) publish(eventType, streamID string, data interface{}) {
	if p.events == nil {
		return
	}
	_ = p.events.AppendEvent(streamID, events.NewEvent(eventType, streamID, data))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
