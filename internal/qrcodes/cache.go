package qrcodes

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/qrkit/pkg/logger"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
)

// RenderCache stores rendered PNGs by RenderKey. Implementations treat
// backend failures as misses.
type RenderCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, png []byte)
}

// RenderKey identifies a rendering: the payload text plus normalized settings.
func RenderKey(encoded string, settings qrcode.Settings) string {
	h := sha256.New()
	h.Write([]byte(encoded))
	h.Write([]byte{0})
	raw, _ := json.Marshal(settings.Normalize())
	h.Write(raw)
	return hex.EncodeToString(h.Sum(nil))
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }
func (noopCache) Set(context.Context, string, []byte)        {}

type cacheEntry struct {
	key string
	png []byte
}

// MemoryCache is a thread-safe LRU cache bounded by entry count.
type MemoryCache struct {
	capacity int
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
}

// NewMemoryCache returns an LRU cache holding up to capacity images.
// It panics if capacity is not positive.
func NewMemoryCache(capacity int) *MemoryCache {
	if capacity <= 0 {
		panic("render cache capacity must be positive")
	}
	return &MemoryCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.eviction.MoveToFront(elem)
	return elem.Value.(*cacheEntry).png, true
}

func (c *MemoryCache) Set(_ context.Context, key string, png []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		elem.Value.(*cacheEntry).png = png
		return
	}

	c.items[key] = c.eviction.PushFront(&cacheEntry{key: key, png: png})
	if c.eviction.Len() > c.capacity {
		oldest := c.eviction.Back()
		c.eviction.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
	}
}

// Len returns the number of cached images.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// DefaultRedisCachePrefix namespaces cache keys in a shared Redis.
const DefaultRedisCachePrefix = "qrkit:render:"

// RedisCache stores images in Redis with a TTL.
type RedisCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
	log    *slog.Logger
}

// NewRedisCache returns a cache writing to client. A zero ttl keeps entries
// until Redis evicts them.
func NewRedisCache(client redis.UniversalClient, ttl time.Duration, log *slog.Logger) *RedisCache {
	if log == nil {
		log = logger.Discard()
	}
	return &RedisCache{
		client: client,
		ttl:    ttl,
		prefix: DefaultRedisCachePrefix,
		log:    log,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	png, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.WarnContext(ctx, "render cache read failed",
				logger.Error(err),
				logger.Component("render_cache"),
			)
		}
		return nil, false
	}
	return png, true
}

func (c *RedisCache) Set(ctx context.Context, key string, png []byte) {
	if err := c.client.Set(ctx, c.prefix+key, png, c.ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "render cache write failed",
			logger.Error(err),
			logger.Component("render_cache"),
		)
	}
}
