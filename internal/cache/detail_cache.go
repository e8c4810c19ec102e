package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"catalogscraper/internal/crawler"
)

const keyPrefix = "detail:"

// DetailCache keeps recent detail responses in redis so an unchanged product
// does not hit the detail endpoint again within the TTL.
type DetailCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func (c *DetailCache) Get(ctx context.Context, permalink string) (*crawler.ProductDetail, bool) {
	val, err := c.Client.Get(ctx, keyPrefix+permalink).Result()
	if err != nil {
		return nil, false
	}

	var d crawler.ProductDetail
	if err := json.Unmarshal([]byte(val), &d); err != nil {
		return nil, false
	}
	return &d, true
}

func (c *DetailCache) Set(ctx context.Context, permalink string, d *crawler.ProductDetail) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, keyPrefix+permalink, b, c.TTL).Err()
}
