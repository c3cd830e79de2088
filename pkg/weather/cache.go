package weather

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"kisan/entities"
	"kisan/pkg/logger"
)

// DefaultTTL is how long a snapshot is served before it is refreshed.
const DefaultTTL = 30 * time.Minute

var errMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string) (*entities.WeatherSnapshot, error)
	Set(ctx context.Context, key string, snap *entities.WeatherSnapshot, ttl time.Duration) error
}

// Cached serves lookups from cache and falls through to next on a miss.
// Cache failures are logged and never fail a lookup.
type Cached struct {
	next  Provider
	cache Cache
	ttl   time.Duration
}

func NewCached(next Provider, cache Cache, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: cache, ttl: ttl}
}

func (c *Cached) Lookup(ctx context.Context, district string) (*entities.WeatherSnapshot, error) {
	key := "weather:" + strings.ToLower(strings.TrimSpace(district))
	if snap, err := c.cache.Get(ctx, key); err == nil {
		return snap, nil
	} else if !errors.Is(err, errMiss) {
		logger.L().Warn("weather cache read", zap.String("key", key), zap.Error(err))
	}
	snap, err := c.next.Lookup(ctx, district)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, snap, c.ttl); err != nil {
		logger.L().Warn("weather cache write", zap.String("key", key), zap.Error(err))
	}
	return snap, nil
}

// RedisCache stores snapshots as JSON strings with a TTL.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(rdb *redis.Client) *RedisCache { return &RedisCache{rdb: rdb} }

func (r *RedisCache) Get(ctx context.Context, key string) (*entities.WeatherSnapshot, error) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errMiss
	}
	if err != nil {
		return nil, err
	}
	var snap entities.WeatherSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, snap *entities.WeatherSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, key, data, ttl).Err()
}

// MemoryCache is the single-process fallback when no Redis is configured.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memEntry
	now     func() time.Time
}

type memEntry struct {
	snap    entities.WeatherSnapshot
	expires time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]memEntry{}, now: time.Now}
}

func (m *MemoryCache) Get(_ context.Context, key string) (*entities.WeatherSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, errMiss
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, key)
		return nil, errMiss
	}
	snap := e.snap
	return &snap, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, snap *entities.WeatherSnapshot, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memEntry{snap: *snap, expires: m.now().Add(ttl)}
	return nil
}
