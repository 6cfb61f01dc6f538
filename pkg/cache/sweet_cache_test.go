package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Integration tests — skipped unless REDIS_URL is set.
func TestSweetCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	sc := NewSweetCache(rc)
	ctx := context.Background()

	sweet := &CachedSweet{
		ID:        uuid.New(),
		Name:      "Ladoo",
		Category:  "Indian",
		Price:     10.50,
		Quantity:  5,
		CreatedAt: time.Now().UTC(),
	}

	t.Run("Set_then_Get_roundtrips", func(t *testing.T) {
		if err := sc.Set(ctx, sweet); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, err := sc.Get(ctx, sweet.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Name != sweet.Name || got.Category != sweet.Category {
			t.Fatalf("unexpected fields: %+v", got)
		}
		if got.Price != sweet.Price || got.Quantity != sweet.Quantity {
			t.Fatalf("unexpected price/quantity: %+v", got)
		}
	})

	t.Run("SetQuantity_updates_existing_entry", func(t *testing.T) {
		if err := sc.SetQuantity(ctx, sweet.ID, 3); err != nil {
			t.Fatalf("SetQuantity failed: %v", err)
		}
		got, err := sc.Get(ctx, sweet.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Quantity != 3 {
			t.Fatalf("expected quantity 3, got %d", got.Quantity)
		}
	})

	t.Run("SetQuantity_noops_on_missing_key", func(t *testing.T) {
		missing := uuid.New()
		if err := sc.SetQuantity(ctx, missing, 7); err != nil {
			t.Fatalf("SetQuantity failed: %v", err)
		}
		if _, err := sc.Get(ctx, missing); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil for missing key, got %v", err)
		}
	})

	t.Run("Delete_removes_entry", func(t *testing.T) {
		if err := sc.Delete(ctx, sweet.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := sc.Get(ctx, sweet.ID); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil after delete, got %v", err)
		}
	})
}
