// Package redis caches order views for the read side.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	goredis "github.com/redis/go-redis/v9"
)

const (
	keyOrderView = "fulfillment:order-view:"

	DefaultTTL = 5 * time.Minute
)

// OrderViewCache stores JSON encoded order views with a TTL. Command handlers
// overwrite the entry with the committed order; the read path only fills a
// missing one. Two updates of the same order racing their post-commit writes can
// still leave the older view in place until the TTL runs out.
type OrderViewCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewOrderViewCache(client goredis.Cmdable, ttl time.Duration) *OrderViewCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &OrderViewCache{client: client, ttl: ttl}
}

func NewClient(addr string) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

func (c *OrderViewCache) Get(ctx context.Context, orderID kernel.UUID) (queries.OrderView, bool, error) {
	raw, err := c.client.Get(ctx, key(orderID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return queries.OrderView{}, false, nil
	}
	if err != nil {
		return queries.OrderView{}, false, err
	}

	var view queries.OrderView
	if err = json.Unmarshal(raw, &view); err != nil {
		// Unreadable entry: drop it and report a miss.
		_ = c.client.Del(ctx, key(orderID)).Err()
		return queries.OrderView{}, false, nil
	}
	return view, true, nil
}

// Set overwrites the entry for view.
func (c *OrderViewCache) Set(ctx context.Context, view queries.OrderView) error {
	k, raw, err := c.encode(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, k, raw, c.ttl).Err()
}

// Fill stores view unless an entry for the order already exists.
func (c *OrderViewCache) Fill(ctx context.Context, view queries.OrderView) error {
	k, raw, err := c.encode(view)
	if err != nil {
		return err
	}
	return c.client.SetNX(ctx, k, raw, c.ttl).Err()
}

// Refresh overwrites the entry with the view of a just committed order.
func (c *OrderViewCache) Refresh(ctx context.Context, o *order.Order) error {
	return c.Set(ctx, queries.NewOrderView(o))
}

func (c *OrderViewCache) Invalidate(ctx context.Context, orderID kernel.UUID) error {
	return c.client.Del(ctx, key(orderID)).Err()
}

func (c *OrderViewCache) encode(view queries.OrderView) (string, []byte, error) {
	orderID, err := kernel.UUIDFromString(view.ID)
	if err != nil {
		return "", nil, err
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return "", nil, err
	}
	return key(orderID), raw, nil
}

func key(orderID kernel.UUID) string {
	return keyOrderView + orderID.String()
}
