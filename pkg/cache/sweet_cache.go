package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SweetCacheTTL is the time-to-live for cached sweets.
	SweetCacheTTL = 24 * time.Hour

	sweetCacheKeyPrefix = "sweet"
)

// CachedSweet is the denormalized read model stored in Redis.
// Fields are stored as a Redis hash. Quantity is refreshed by the worker
// whenever a stock-changed event arrives, so reads stay close to current.
type CachedSweet struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// SweetCache provides structured read/write operations for sweet cache entries.
// Key format: "sweet:{sweetID}"
type SweetCache struct {
	client *RedisClient
}

// NewSweetCache creates a new SweetCache backed by the given RedisClient.
func NewSweetCache(r *RedisClient) *SweetCache {
	return &SweetCache{client: r}
}

// Get retrieves a cached sweet by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *SweetCache) Get(ctx context.Context, sweetID uuid.UUID) (*CachedSweet, error) {
	key := c.key(sweetID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	price, err := strconv.ParseFloat(vals["price"], 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse price: %w", err)
	}
	quantity, err := strconv.Atoi(vals["quantity"])
	if err != nil {
		return nil, fmt.Errorf("cache parse quantity: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedSweet{
		ID:          id,
		Name:        vals["name"],
		Category:    vals["category"],
		Description: vals["description"],
		ImageURL:    vals["image_url"],
		Price:       price,
		Quantity:    quantity,
		CreatedAt:   createdAt,
	}, nil
}

// Set writes a cached sweet as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *SweetCache) Set(ctx context.Context, sweet *CachedSweet) error {
	key := c.key(sweet.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", sweet.ID.String(),
		"name", sweet.Name,
		"category", sweet.Category,
		"description", sweet.Description,
		"image_url", sweet.ImageURL,
		"price", strconv.FormatFloat(sweet.Price, 'f', -1, 64),
		"quantity", strconv.Itoa(sweet.Quantity),
		"created_at", sweet.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, SweetCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// SetQuantity updates only the quantity field of an existing cache entry.
// No-ops when the key is absent so a stale stock event cannot resurrect a
// deleted sweet.
func (c *SweetCache) SetQuantity(ctx context.Context, sweetID uuid.UUID, quantity int) error {
	key := c.key(sweetID)
	exists, err := c.client.Client().Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("cache exists: %w", err)
	}
	if exists == 0 {
		return nil
	}
	if err := c.client.Client().HSet(ctx, key, "quantity", strconv.Itoa(quantity)).Err(); err != nil {
		return fmt.Errorf("cache set quantity: %w", err)
	}
	return nil
}

// Delete removes a cached sweet.
func (c *SweetCache) Delete(ctx context.Context, sweetID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(sweetID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "sweet:{sweetID}"
func (c *SweetCache) key(sweetID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", sweetCacheKeyPrefix, sweetID)
}
