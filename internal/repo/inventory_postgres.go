package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

const queryTimeout = 3 * time.Second

// PostgresInventoryRepository stores one row per item in the inventory table.
type PostgresInventoryRepository struct {
	db *sql.DB
}

func NewPostgresInventoryRepository(db *sql.DB) *PostgresInventoryRepository {
	return &PostgresInventoryRepository{db: db}
}

// Load reads all items in the order they were saved.
func (r *PostgresInventoryRepository) Load(ctx context.Context) (*models.Inventory, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT name, quantity FROM inventory ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	inv := models.NewInventory()
	for rows.Next() {
		var name string
		var qty int
		if err := rows.Scan(&name, &qty); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
		}
		inv.Set(name, qty)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inventory rows: %w", err)
	}

	return inv, nil
}

// Save replaces the stored inventory inside a single transaction.
func (r *PostgresInventoryRepository) Save(ctx context.Context, inv *models.Inventory) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory`); err != nil {
		return fmt.Errorf("failed to clear inventory: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO inventory (name, quantity) VALUES ($1, $2)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, it := range inv.Items() {
		if _, err := stmt.ExecContext(ctx, it.Name, it.Quantity); err != nil {
			return fmt.Errorf("failed to insert %q: %w", it.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit inventory: %w", err)
	}
	return nil
}
