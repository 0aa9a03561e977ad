package cache

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/redis/go-redis/v9"

	"techpulse/internal/ports"
)

const keyPrefix = "techpulse:embedding:"

// EmbeddingCache memoizes embeddings in Redis in front of another Embedder.
// Redis failures degrade to calling the wrapped embedder.
type EmbeddingCache struct {
	client *redis.Client
	next   ports.Embedder
	model  string
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.Embedder = (*EmbeddingCache)(nil)

// NewClient connects to Redis from a redis:// URL.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewEmbeddingCache wraps next. model is part of the key so switching
// embedding models never serves stale vectors.
func NewEmbeddingCache(client *redis.Client, next ports.Embedder, model string, ttl time.Duration, log *slog.Logger) *EmbeddingCache {
	return &EmbeddingCache{client: client, next: next, model: model, ttl: ttl, logger: log}
}

// Embed returns the cached vector or computes and stores it.
func (c *EmbeddingCache) Embed(ctx context.Context, text string) ([]float32, error) {
	key := c.key(text)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		if vector, ok := decodeVector(raw); ok {
			c.debug("embedding cache hit", "key", key)
			return vector, nil
		}
		c.warn("corrupt cached embedding", "key", key)
	case errors.Is(err, redis.Nil):
	default:
		c.warn("embedding cache read failed", "err", err)
	}

	vector, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := c.client.Set(ctx, key, encodeVector(vector), c.ttl).Err(); err != nil {
		c.warn("embedding cache write failed", "err", err)
	}
	return vector, nil
}

func (c *EmbeddingCache) key(text string) string {
	sum := sha256.Sum256([]byte(c.model + "\x00" + text))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(f))
	}
	return buf
}

func decodeVector(raw []byte) ([]float32, bool) {
	if len(raw) == 0 || len(raw)%4 != 0 {
		return nil, false
	}
	v := make([]float32, len(raw)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return v, true
}

func (c *EmbeddingCache) debug(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *EmbeddingCache) warn(msg string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
