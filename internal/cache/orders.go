// Package cache keeps assembled order-details responses in redis so the
// dashboard's detail panel doesn't rebuild the timeline on every open.
// The cache is best-effort: redis being down degrades to recomputation.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/feitoo/makerboard/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// OrderCache stores OrderDetailsResponse payloads keyed by maker and order.
type OrderCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewOrderCache creates a cache backed by the redis at addr.
func NewOrderCache(addr string, ttl time.Duration, logger *log.Logger) *OrderCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &OrderCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		logger: logger,
	}
}

// Ping checks the redis connection.
func (c *OrderCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the redis connection.
func (c *OrderCache) Close() error {
	return c.client.Close()
}

// GetDetails returns a cached response, or (nil, false) on miss or error.
func (c *OrderCache) GetDetails(ctx context.Context, makerID, orderID uuid.UUID) (*models.OrderDetailsResponse, bool) {
	raw, err := c.client.Get(ctx, detailsKey(makerID, orderID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Printf("order cache get: %v", err)
		}
		return nil, false
	}

	var details models.OrderDetailsResponse
	if err := json.Unmarshal(raw, &details); err != nil {
		c.logger.Printf("order cache unmarshal: %v", err)
		return nil, false
	}
	return &details, true
}

// SetDetails stores an assembled response. Failures are logged and swallowed.
func (c *OrderCache) SetDetails(ctx context.Context, makerID, orderID uuid.UUID, details *models.OrderDetailsResponse) {
	raw, err := json.Marshal(details)
	if err != nil {
		c.logger.Printf("order cache marshal: %v", err)
		return
	}
	if err := c.client.Set(ctx, detailsKey(makerID, orderID), raw, c.ttl).Err(); err != nil {
		c.logger.Printf("order cache set: %v", err)
	}
}

// Invalidate drops the cached response after a status change.
func (c *OrderCache) Invalidate(ctx context.Context, makerID, orderID uuid.UUID) {
	if err := c.client.Del(ctx, detailsKey(makerID, orderID)).Err(); err != nil {
		c.logger.Printf("order cache invalidate: %v", err)
	}
}

func detailsKey(makerID, orderID uuid.UUID) string {
	return fmt.Sprintf("order:details:%s:%s", makerID, orderID)
}
