package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mrp-multilevel/pkg/domain/entities"
	"mrp-multilevel/pkg/domain/repositories"
)

// ResultStore persists planning run output to PostgreSQL. A run replaces the
// previous one entirely: Cleanup deletes all rows and SaveRun writes the new
// run in one transaction.
type ResultStore struct {
	pool *pgxpool.Pool
}

// NewResultStore creates a ResultStore over an existing connection pool.
func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

// Verify interface compliance
var _ repositories.ResultStore = (*ResultStore)(nil)

// EnsureSchema creates the result tables if they do not exist.
func (s *ResultStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS mrp_product (
			id            BIGINT PRIMARY KEY,
			run_id        TEXT NOT NULL,
			product_id    TEXT NOT NULL,
			area_id       TEXT NOT NULL,
			name          TEXT NOT NULL,
			qty_available NUMERIC NOT NULL,
			llc           INT NOT NULL,
			nbr_actions   INT NOT NULL,
			nbr_actions_4w INT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS mrp_move (
			id              BIGINT PRIMARY KEY,
			run_id          TEXT NOT NULL,
			mrp_product_id  BIGINT NOT NULL REFERENCES mrp_product (id),
			product_id      TEXT NOT NULL,
			area_id         TEXT NOT NULL,
			name            TEXT NOT NULL,
			qty             NUMERIC NOT NULL,
			move_date       DATE NOT NULL,
			move_type       TEXT NOT NULL,
			origin          TEXT NOT NULL,
			action          TEXT NOT NULL,
			action_date     DATE,
			processed       BOOLEAN NOT NULL,
			order_number    TEXT,
			parent_product_id TEXT,
			running_availability NUMERIC NOT NULL
		);
		CREATE TABLE IF NOT EXISTS mrp_inventory (
			run_id         TEXT NOT NULL,
			mrp_product_id BIGINT NOT NULL REFERENCES mrp_product (id),
			inv_date       DATE NOT NULL,
			demand_qty     NUMERIC NOT NULL,
			supply_qty     NUMERIC NOT NULL,
			to_procure     NUMERIC NOT NULL,
			initial_on_hand NUMERIC NOT NULL,
			final_on_hand  NUMERIC NOT NULL,
			PRIMARY KEY (mrp_product_id, inv_date)
		);
		CREATE INDEX IF NOT EXISTS idx_mrp_move_product ON mrp_move (mrp_product_id, move_date);
	`)
	if err != nil {
		return fmt.Errorf("ensure result schema: %w", err)
	}
	return nil
}

// Cleanup destroys every row left over from a prior run.
func (s *ResultStore) Cleanup(ctx context.Context) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin cleanup: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"mrp_inventory", "mrp_move", "mrp_product"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("cleanup %s: %w", table, err)
		}
	}
	return tx.Commit(ctx)
}

// SaveRun writes the output of a finished planning run in one transaction.
func (s *ResultStore) SaveRun(ctx context.Context, runID string,
	products []*entities.MrpProduct,
	moves []*entities.MrpMove,
	inventory []*entities.MrpInventory) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save run: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, mp := range products {
		batch.Queue(`
			INSERT INTO mrp_product
				(id, run_id, product_id, area_id, name, qty_available, llc, nbr_actions, nbr_actions_4w)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			mp.ID, runID, string(mp.ProductID), string(mp.AreaID), mp.Name,
			mp.QtyAvailable, mp.LLC, mp.NbrActions, mp.NbrActions4W)
	}
	for _, mv := range moves {
		batch.Queue(`
			INSERT INTO mrp_move
				(id, run_id, mrp_product_id, product_id, area_id, name, qty, move_date,
				 move_type, origin, action, action_date, processed, order_number,
				 parent_product_id, running_availability)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			mv.ID, runID, mv.MrpProductID, string(mv.ProductID), string(mv.AreaID),
			mv.Name, mv.Qty, mv.Date, mv.Type.String(), mv.Origin.String(),
			mv.Action.String(), nullableDate(mv.ActionDate), mv.Processed, mv.OrderNumber,
			string(mv.ParentProductID), mv.RunningAvailability)
	}
	for _, inv := range inventory {
		batch.Queue(`
			INSERT INTO mrp_inventory
				(run_id, mrp_product_id, inv_date, demand_qty, supply_qty, to_procure,
				 initial_on_hand, final_on_hand)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			runID, inv.MrpProductID, inv.Date, inv.DemandQty, inv.SupplyQty,
			inv.ToProcure, inv.InitialOnHand, inv.FinalOnHand)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("save run %s: %w", runID, err)
	}
	return tx.Commit(ctx)
}

// nullableDate maps the zero time to NULL.
func nullableDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
