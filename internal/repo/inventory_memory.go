package repo

import (
	"context"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

// InMemoryInventoryRepository keeps a copy of the last saved inventory in memory.
type InMemoryInventoryRepository struct {
	inventory *models.Inventory
	SaveErr   error
}

// NewInMemoryInventoryRepository creates an empty in-memory repository.
func NewInMemoryInventoryRepository() *InMemoryInventoryRepository {
	return &InMemoryInventoryRepository{}
}

// Load returns a copy of the stored inventory, or ErrInventoryNotFound if nothing was saved.
func (r *InMemoryInventoryRepository) Load(_ context.Context) (*models.Inventory, error) {
	if r.inventory == nil {
		return nil, ErrInventoryNotFound
	}
	return r.inventory.Clone(), nil
}

// Save stores a copy of inv. SaveErr, when set, is returned instead.
func (r *InMemoryInventoryRepository) Save(_ context.Context, inv *models.Inventory) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.inventory = inv.Clone()
	return nil
}

// Clear forgets the saved inventory.
func (r *InMemoryInventoryRepository) Clear() {
	r.inventory = nil
}
