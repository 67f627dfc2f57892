package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

var (
	// ErrInventoryNotFound is returned when no persisted inventory exists yet.
	ErrInventoryNotFound = errors.New("inventory not found")
	// ErrCorruptData is returned when persisted data cannot be decoded.
	ErrCorruptData = errors.New("inventory data is corrupt")
	// ErrNotMapping is returned when persisted data decodes to something other than an object.
	ErrNotMapping = errors.New("inventory data is not a mapping")
)

// InventoryRepository defines how an inventory is loaded and persisted.
type InventoryRepository interface {
	Load(ctx context.Context) (*models.Inventory, error)
	Save(ctx context.Context, inv *models.Inventory) error
}
