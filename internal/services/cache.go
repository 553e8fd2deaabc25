package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
)

// ImageCache stores generated images by key.
type ImageCache interface {
	Get(ctx context.Context, key string) (*models.Image, error)
	Set(ctx context.Context, key string, img *models.Image, ttl time.Duration) error
}

// ErrCacheMiss is returned by ImageCache.Get for unknown keys.
var ErrCacheMiss = errors.New("cache miss")

type RedisImageCache struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		PoolSize:     20,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})
}

func NewRedisImageCache(client *redis.Client) *RedisImageCache {
	return &RedisImageCache{client: client, prefix: "qr:img:"}
}

func (c *RedisImageCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("[cache] failed to ping Redis: %w", err)
	}
	return nil
}

func (c *RedisImageCache) Get(ctx context.Context, key string) (*models.Image, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("[cache] failed to get image: %w", err)
	}
	return decodeCachedImage(raw)
}

func (c *RedisImageCache) Set(ctx context.Context, key string, img *models.Image, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, encodeCachedImage(img), ttl).Err(); err != nil {
		return fmt.Errorf("[cache] failed to set image: %w", err)
	}
	return nil
}

// Cached values are "<content type>\x00<image bytes>".
func encodeCachedImage(img *models.Image) []byte {
	out := make([]byte, 0, len(img.ContentType)+1+len(img.Data))
	out = append(out, img.ContentType...)
	out = append(out, 0)
	return append(out, img.Data...)
}

func decodeCachedImage(raw []byte) (*models.Image, error) {
	i := bytes.IndexByte(raw, 0)
	if i < 0 || i == len(raw)-1 {
		return nil, errors.New("[cache] malformed cached image")
	}
	return &models.Image{ContentType: string(raw[:i]), Data: raw[i+1:]}, nil
}

// CachedGenerator serves repeated requests from an ImageCache. Cache failures
// are logged and never fail a generation.
type CachedGenerator struct {
	next  ImageGenerator
	cache ImageCache
	ttl   time.Duration
	scope string
}

func NewCachedGenerator(next ImageGenerator, cache ImageCache, scope string, ttl time.Duration) *CachedGenerator {
	return &CachedGenerator{next: next, cache: cache, ttl: ttl, scope: scope}
}

func (g *CachedGenerator) Generate(ctx context.Context, req *models.QRRequest) (*models.Image, error) {
	key := CacheKey(g.scope, req)

	img, err := g.cache.Get(ctx, key)
	switch {
	case err == nil:
		log.Debug().Str("key", key).Msg("qr image served from cache")
		return img, nil
	case !errors.Is(err, ErrCacheMiss):
		log.Warn().Err(err).Msg("qr image cache lookup failed")
	}

	img, err = g.next.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := g.cache.Set(ctx, key, img, g.ttl); err != nil {
		log.Warn().Err(err).Msg("qr image cache store failed")
	}
	return img, nil
}

// CacheKey identifies a request within a generator scope.
func CacheKey(scope string, req *models.QRRequest) string {
	sum := sha256.Sum256([]byte(scope + "?" + req.Query().Encode()))
	return hex.EncodeToString(sum[:])
}
