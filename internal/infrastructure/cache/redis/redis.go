package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"inkboard/internal/domain/element"
)

const (
	elementsKey = "canvas:{board}:elements"
	cacheTTL    = 10 * time.Minute
)

// ElementCache keeps a serialized snapshot of the full element list in
// Redis. Writers invalidate it; a miss falls through to storage.
type ElementCache struct {
	client redis.UniversalClient
}

func New(ctx context.Context, addr string) (*ElementCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &ElementCache{client: client}, nil
}

func (c *ElementCache) GetElements(ctx context.Context) ([]element.Element, bool, error) {
	raw, err := c.client.Get(ctx, elementsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var elements []element.Element
	if err := json.Unmarshal(raw, &elements); err != nil {
		// A corrupt snapshot is treated as a miss after dropping it.
		_ = c.client.Del(ctx, elementsKey).Err()
		return nil, false, err
	}

	return elements, true, nil
}

func (c *ElementCache) SetElements(ctx context.Context, elements []element.Element) error {
	raw, err := json.Marshal(elements)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, elementsKey, raw, cacheTTL).Err()
}

func (c *ElementCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, elementsKey).Err()
}

func (c *ElementCache) Close() error {
	return c.client.Close()
}
