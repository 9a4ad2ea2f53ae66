package llm

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultEmbeddingTTL controls how long cached vectors stay valid
const DefaultEmbeddingTTL = 24 * time.Hour

// CachedEmbedder memoizes phrase vectors in memory (L1) and optionally in Redis
// (L2), so repeated skills across requests hit the model once. It is safe for
// concurrent use.
type CachedEmbedder struct {
	next   Embedder
	prefix string
	ttl    time.Duration
	l1     sync.Map // key → *vectorEntry
	rdb    *redis.Client
	logger *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

type vectorEntry struct {
	vec       []float64
	expiresAt time.Time
}

// CacheOption configures a CachedEmbedder
type CacheOption func(*CachedEmbedder)

// WithRedis enables the L2 cache on an existing Redis client
func WithRedis(rdb *redis.Client) CacheOption {
	return func(c *CachedEmbedder) { c.rdb = rdb }
}

// WithTTL overrides DefaultEmbeddingTTL
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CachedEmbedder) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger sets the logger used for cache diagnostics
func WithCacheLogger(logger *zap.Logger) CacheOption {
	return func(c *CachedEmbedder) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCachedEmbedder wraps next. model namespaces the keys so vectors from
// different embedding models never mix.
func NewCachedEmbedder(next Embedder, model string, opts ...CacheOption) *CachedEmbedder {
	c := &CachedEmbedder{
		next:   next,
		prefix: "emb:" + model,
		ttl:    DefaultEmbeddingTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConnectRedis parses redisURL and pings the server. An empty URL, a bad URL or
// an unreachable server returns nil and the cache runs L1 only.
func ConnectRedis(ctx context.Context, redisURL string, logger *zap.Logger) *redis.Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Warn("embedding cache: invalid redis URL, L2 disabled", zap.Error(err))
		return nil
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("embedding cache: redis unreachable, L2 disabled", zap.Error(err))
		_ = rdb.Close()
		return nil
	}

	logger.Info("embedding cache: L2 redis connected", zap.String("addr", opts.Addr))
	return rdb
}

// EmbedStrings serves cached vectors and embeds only the misses, preserving
// input order.
func (c *CachedEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	missIdx := make([]int, 0, len(texts))
	missText := make([]string, 0, len(texts))

	for i, t := range texts {
		if vec, ok := c.get(ctx, t); ok {
			out[i] = vec
			continue
		}
		missIdx = append(missIdx, i)
		missText = append(missText, t)
	}

	c.hits.Add(int64(len(texts) - len(missIdx)))
	c.misses.Add(int64(len(missIdx)))
	if len(missText) == 0 {
		return out, nil
	}

	vecs, err := c.next.EmbedStrings(ctx, missText)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missText) {
		return nil, &EmbeddingError{Message: fmt.Sprintf("expected %d embeddings, got %d", len(missText), len(vecs))}
	}

	for j, vec := range vecs {
		out[missIdx[j]] = vec
		c.set(ctx, missText[j], vec)
	}
	return out, nil
}

// Stats returns the cache hit and miss counters
func (c *CachedEmbedder) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *CachedEmbedder) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("%s:%x", c.prefix, sum[:12])
}

func (c *CachedEmbedder) get(ctx context.Context, text string) ([]float64, bool) {
	key := c.key(text)

	if val, ok := c.l1.Load(key); ok {
		entry := val.(*vectorEntry)
		if time.Now().Before(entry.expiresAt) {
			return entry.vec, true
		}
		c.l1.Delete(key)
	}

	if c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("embedding cache: L2 get failed", zap.Error(err))
		}
		return nil, false
	}

	var vec []float64
	if err := json.Unmarshal(data, &vec); err != nil || len(vec) == 0 {
		return nil, false
	}
	c.l1.Store(key, &vectorEntry{vec: vec, expiresAt: time.Now().Add(c.ttl)})
	return vec, true
}

func (c *CachedEmbedder) set(ctx context.Context, text string, vec []float64) {
	key := c.key(text)
	c.l1.Store(key, &vectorEntry{vec: vec, expiresAt: time.Now().Add(c.ttl)})

	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Debug("embedding cache: L2 set failed", zap.Error(err))
	}
}
