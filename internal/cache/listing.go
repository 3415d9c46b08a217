// internal/cache/listing.go
package cache

import (
	"context"
	"encoding/json"
	"time"

	"garimoto-service/internal/domain/vehicle"

	"github.com/redis/go-redis/v9"
)

const (
	storefrontKey = "storefront:available"
	listingTTL    = 5 * time.Minute
)

// ListingCache keeps the storefront's Available listing in Redis. Every
// inventory write invalidates it; reads fall through to Postgres on miss.
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(client *redis.Client) *ListingCache {
	return &ListingCache{client: client}
}

// GetAvailable returns the cached listing, or (nil, false) on a miss.
func (c *ListingCache) GetAvailable(ctx context.Context) ([]*vehicle.Vehicle, bool) {
	data, err := c.client.Get(ctx, storefrontKey).Bytes()
	if err != nil {
		return nil, false
	}

	var vehicles []*vehicle.Vehicle
	if err := json.Unmarshal(data, &vehicles); err != nil {
		// Poisoned entry; drop it rather than serve garbage.
		c.client.Del(ctx, storefrontKey)
		return nil, false
	}
	return vehicles, true
}

// SetAvailable stores the listing with a short TTL.
func (c *ListingCache) SetAvailable(ctx context.Context, vehicles []*vehicle.Vehicle) {
	data, err := json.Marshal(vehicles)
	if err != nil {
		return
	}
	c.client.Set(ctx, storefrontKey, data, listingTTL)
}

// Invalidate drops the cached listing after any inventory write.
func (c *ListingCache) Invalidate(ctx context.Context) {
	c.client.Del(ctx, storefrontKey)
}
