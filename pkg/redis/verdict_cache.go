package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/recordkit/pkg/pipeline"
	"github.com/dmitrymomot/recordkit/pkg/recordcheck"
)

// DefaultKeyPrefix namespaces verdict keys.
const DefaultKeyPrefix = "recordkit:verdict:"

type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// VerdictCache stores validation results as JSON strings.
// It implements pipeline.VerdictCache.
type VerdictCache struct {
	db     kv
	prefix string
}

var _ pipeline.VerdictCache = (*VerdictCache)(nil)

// NewVerdictCache wraps a client. An empty prefix selects DefaultKeyPrefix.
func NewVerdictCache(client kv, prefix string) *VerdictCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &VerdictCache{db: client, prefix: prefix}
}

// Get returns pipeline.ErrCacheMiss for unknown keys.
func (c *VerdictCache) Get(ctx context.Context, key string) (recordcheck.Result, error) {
	data, err := c.db.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return recordcheck.Result{}, pipeline.ErrCacheMiss
	}
	if err != nil {
		return recordcheck.Result{}, err
	}

	var res recordcheck.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return recordcheck.Result{}, errors.Join(ErrCorruptVerdict, err)
	}
	return res, nil
}

// Set stores res for ttl. A zero ttl keeps the entry until evicted.
func (c *VerdictCache) Set(ctx context.Context, key string, res recordcheck.Result, ttl time.Duration) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.db.Set(ctx, c.prefix+key, data, ttl).Err()
}
