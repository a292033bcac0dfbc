package memory

import (
	"context"
	"sync"

	"mrp-multilevel/pkg/domain/entities"
	"mrp-multilevel/pkg/domain/repositories"
)

// ResultStore keeps the output of the latest planning run in memory. It is
// safe for concurrent use.
type ResultStore struct {
	mu        sync.RWMutex
	runID     string
	products  []*entities.MrpProduct
	moves     []*entities.MrpMove
	inventory []*entities.MrpInventory
}

// NewResultStore creates a new in-memory result store
func NewResultStore() *ResultStore {
	return &ResultStore{}
}

// Verify interface compliance
var _ repositories.ResultStore = (*ResultStore)(nil)

// Cleanup destroys the stored run
func (s *ResultStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runID = ""
	s.products = nil
	s.moves = nil
	s.inventory = nil
	return nil
}

// SaveRun stores the output of a finished planning run
func (s *ResultStore) SaveRun(ctx context.Context, runID string,
	products []*entities.MrpProduct,
	moves []*entities.MrpMove,
	inventory []*entities.MrpInventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runID = runID
	s.products = products
	s.moves = moves
	s.inventory = inventory
	return nil
}

// LastRunID returns the id of the stored run, or the empty string
func (s *ResultStore) LastRunID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runID
}

// Products returns the stored planning units
func (s *ResultStore) Products() []*entities.MrpProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.products
}

// Moves returns the stored planning events
func (s *ResultStore) Moves() []*entities.MrpMove {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.moves
}

// Inventory returns the stored time-phased inventory rows
func (s *ResultStore) Inventory() []*entities.MrpInventory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inventory
}
