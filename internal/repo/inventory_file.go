package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

// DefaultInventoryFile is the file used when none is configured.
const DefaultInventoryFile = "inventory.json"

// JSONFileRepository persists the inventory as a JSON object in a single file.
type JSONFileRepository struct {
	path string
}

// NewJSONFileRepository creates a repository backed by the file at path.
func NewJSONFileRepository(path string) *JSONFileRepository {
	if path == "" {
		path = DefaultInventoryFile
	}
	return &JSONFileRepository{path: path}
}

// Path returns the file the repository reads and writes.
func (r *JSONFileRepository) Path() string {
	return r.path
}

// Load reads and decodes the inventory file.
func (r *JSONFileRepository) Load(_ context.Context) (*models.Inventory, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInventoryNotFound, r.path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	return decodeInventory(data)
}

func decodeInventory(data []byte) (*models.Inventory, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrCorruptData)
	}

	inv := models.NewInventory()
	if err := inv.UnmarshalJSON(data); err != nil {
		if errors.Is(err, models.ErrNotObject) {
			return nil, ErrNotMapping
		}
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	return inv, nil
}

// Save writes the inventory to a temporary file and renames it over the target.
func (r *JSONFileRepository) Save(_ context.Context, inv *models.Inventory) error {
	data, err := json.MarshalIndent(inv, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode inventory: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", r.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save %s: %w", r.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save %s: %w", r.path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to save %s: %w", r.path, err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to save %s: %w", r.path, err)
	}
	return nil
}
