package repo

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/inventory-store/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyPrefix = "inventory-test"

func getRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available: %v", err)
	}
	reset := func() {
		client.Del(context.Background(), testKeyPrefix+":quantities", testKeyPrefix+":names")
	}
	reset()
	t.Cleanup(func() {
		reset()
		client.Close()
	})
	return client
}

func TestRedisInventoryRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	r := NewRedisInventoryRepository(getRedisClient(t), testKeyPrefix)

	inv := sampleInventory()
	require.NoError(t, r.Save(ctx, inv))

	loaded, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, inv.Items(), loaded.Items())
}

func TestRedisInventoryRepository_NotFound(t *testing.T) {
	r := NewRedisInventoryRepository(getRedisClient(t), testKeyPrefix)

	_, err := r.Load(context.Background())
	assert.ErrorIs(t, err, ErrInventoryNotFound)
}

func TestRedisInventoryRepository_CorruptQuantity(t *testing.T) {
	ctx := context.Background()
	client := getRedisClient(t)
	r := NewRedisInventoryRepository(client, testKeyPrefix)

	client.RPush(ctx, testKeyPrefix+":names", "apple")
	client.HSet(ctx, testKeyPrefix+":quantities", "apple", "seven")

	_, err := r.Load(ctx)
	assert.ErrorIs(t, err, ErrCorruptData)
}

func TestRedisInventoryRepository_SaveEmpty(t *testing.T) {
	ctx := context.Background()
	r := NewRedisInventoryRepository(getRedisClient(t), testKeyPrefix)

	require.NoError(t, r.Save(ctx, sampleInventory()))
	require.NoError(t, r.Save(ctx, models.NewInventory()))

	_, err := r.Load(ctx)
	assert.ErrorIs(t, err, ErrInventoryNotFound)
}
