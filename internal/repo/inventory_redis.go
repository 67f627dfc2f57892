package repo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/inventory-store/internal/models"
)

// DefaultRedisKeyPrefix namespaces the keys used by RedisInventoryRepository.
const DefaultRedisKeyPrefix = "inventory"

// RedisInventoryRepository keeps quantities in a hash and the item order in a list.
type RedisInventoryRepository struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisInventoryRepository(rdb *redis.Client, prefix string) *RedisInventoryRepository {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisInventoryRepository{rdb: rdb, prefix: prefix}
}

func (r *RedisInventoryRepository) quantitiesKey() string {
	return r.prefix + ":quantities"
}

func (r *RedisInventoryRepository) namesKey() string {
	return r.prefix + ":names"
}

// Load reads the inventory; ErrInventoryNotFound is returned if nothing was ever saved.
func (r *RedisInventoryRepository) Load(ctx context.Context) (*models.Inventory, error) {
	n, err := r.rdb.Exists(ctx, r.quantitiesKey(), r.namesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check inventory keys: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInventoryNotFound, r.prefix)
	}

	names, err := r.rdb.LRange(ctx, r.namesKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read item names: %w", err)
	}
	quantities, err := r.rdb.HGetAll(ctx, r.quantitiesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read quantities: %w", err)
	}

	inv := models.NewInventory()
	for _, name := range names {
		raw, ok := quantities[name]
		if !ok {
			return nil, fmt.Errorf("%w: no quantity for %q", ErrCorruptData, name)
		}
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: quantity of %q: %v", ErrCorruptData, name, err)
		}
		inv.Set(name, qty)
	}
	if len(quantities) != inv.Len() {
		return nil, fmt.Errorf("%w: item list and quantities disagree", ErrCorruptData)
	}

	return inv, nil
}

// Save replaces both keys atomically with MULTI/EXEC.
func (r *RedisInventoryRepository) Save(ctx context.Context, inv *models.Inventory) error {
	items := inv.Items()
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.quantitiesKey(), r.namesKey())
		if len(items) == 0 {
			return nil
		}

		names := make([]any, 0, len(items))
		values := make(map[string]any, len(items))
		for _, it := range items {
			names = append(names, it.Name)
			values[it.Name] = it.Quantity
		}
		pipe.RPush(ctx, r.namesKey(), names...)
		pipe.HSet(ctx, r.quantitiesKey(), values)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save inventory to Redis: %w", err)
	}
	return nil
}
