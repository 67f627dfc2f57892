// Package store implements the inventory operations on top of a models.Inventory.
//
// Every failure is logged and returned; none of them is fatal, so callers are
// free to ignore the returned error and keep going.
package store

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/rogerio-castellano/inventory-store/internal/models"
	"github.com/rogerio-castellano/inventory-store/internal/repo"
	"go.uber.org/zap"
)

// DefaultLowStockThreshold is the quantity below which an item counts as low stock.
const DefaultLowStockThreshold = 5

var (
	ErrInvalidItem     = errors.New("item name must not be empty")
	ErrInvalidQuantity = errors.New("quantity out of range")
	ErrItemNotFound    = errors.New("item not in stock")
)

// Store applies inventory operations and reports them through its logger.
type Store struct {
	inventory *models.Inventory
	logger    *zap.Logger
}

// New wraps inv. A nil inv starts an empty inventory and a nil logger discards output.
func New(inv *models.Inventory, logger *zap.Logger) *Store {
	if inv == nil {
		inv = models.NewInventory()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{inventory: inv, logger: logger}
}

// Open loads the inventory from r, falling back to an empty one on any error.
func Open(ctx context.Context, r repo.InventoryRepository, logger *zap.Logger) *Store {
	s := New(nil, logger)

	inv, err := r.Load(ctx)
	switch {
	case err == nil:
		s.inventory = inv
	case errors.Is(err, repo.ErrInventoryNotFound):
		s.logger.Warn("Inventory data not found, starting fresh inventory", zap.Error(err))
	case errors.Is(err, repo.ErrNotMapping):
		s.logger.Error("Inventory data is not a mapping, starting fresh", zap.Error(err))
	case errors.Is(err, repo.ErrCorruptData):
		s.logger.Error("Could not decode inventory data, starting fresh", zap.Error(err))
	default:
		s.logger.Error("Could not load inventory, starting fresh", zap.Error(err))
	}

	return s
}

// Save persists the inventory to r. Failures are logged and returned.
func (s *Store) Save(ctx context.Context, r repo.InventoryRepository) error {
	if err := r.Save(ctx, s.inventory); err != nil {
		s.logger.Error("Error saving inventory", zap.Error(err))
		return err
	}
	s.logger.Info("Inventory saved", zap.Int("items", s.inventory.Len()))
	return nil
}

// Inventory returns the underlying inventory.
func (s *Store) Inventory() *models.Inventory {
	return s.inventory
}

// Add increases the quantity of item by qty, creating the entry if needed.
// A negative qty lowers the stored quantity; the entry stays until the next Remove.
func (s *Store) Add(item string, qty int) error {
	if strings.TrimSpace(item) == "" {
		s.logger.Error("Invalid item name", zap.String("item", item), zap.Int("qty", qty))
		return ErrInvalidItem
	}

	current, _ := s.inventory.Get(item)
	total, ok := addInt(current, qty)
	if !ok {
		s.logger.Error("Invalid quantity", zap.String("item", item), zap.Int("qty", qty), zap.Int("total", current))
		return ErrInvalidQuantity
	}
	s.inventory.Set(item, total)
	s.logger.Info("Added item", zap.String("item", item), zap.Int("qty", qty))
	return nil
}

// Remove decreases the quantity of item by qty and drops the entry once it reaches zero.
func (s *Store) Remove(item string, qty int) error {
	current, ok := s.inventory.Get(item)
	if !ok {
		s.logger.Warn("Item not in stock, cannot remove", zap.String("item", item))
		return ErrItemNotFound
	}

	remaining, ok := subInt(current, qty)
	if !ok {
		s.logger.Error("Invalid quantity", zap.String("item", item), zap.Int("qty", qty), zap.Int("total", current))
		return ErrInvalidQuantity
	}
	if remaining <= 0 {
		s.inventory.Delete(item)
		s.logger.Info("Removed all of item", zap.String("item", item))
		return nil
	}

	s.inventory.Set(item, remaining)
	s.logger.Info("Removed item", zap.String("item", item), zap.Int("qty", qty), zap.Int("total", remaining))
	return nil
}

// Quantity returns the stored quantity of item, or 0 when absent.
func (s *Store) Quantity(item string) int {
	qty, _ := s.inventory.Get(item)
	return qty
}

// LowStock lists the items whose quantity is strictly below threshold.
func (s *Store) LowStock(threshold int) []string {
	low := []string{}
	for _, it := range s.inventory.Items() {
		if it.Quantity < threshold {
			low = append(low, it.Name)
		}
	}
	return low
}

func addInt(a, b int) (int, bool) {
	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		return 0, false
	}
	return a + b, true
}

// subInt saturates at math.MinInt; only overflow past math.MaxInt fails.
func subInt(a, b int) (int, bool) {
	if b < 0 && a > math.MaxInt+b {
		return 0, false
	}
	if b > 0 && a < math.MinInt+b {
		return math.MinInt, true
	}
	return a - b, true
}
