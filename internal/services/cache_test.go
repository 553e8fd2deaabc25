package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/markjakearzadon/qrplatba-gobackend/internal/models"
	"github.com/markjakearzadon/qrplatba-gobackend/internal/services"
)

type mapCache struct {
	items  map[string]*models.Image
	getErr error
	ttl    time.Duration
}

func (c *mapCache) Get(ctx context.Context, key string) (*models.Image, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	img, ok := c.items[key]
	if !ok {
		return nil, services.ErrCacheMiss
	}
	return img, nil
}

func (c *mapCache) Set(ctx context.Context, key string, img *models.Image, ttl time.Duration) error {
	c.items[key] = img
	c.ttl = ttl
	return nil
}

func TestCachedGeneratorServesRepeats(t *testing.T) {
	gen := &fakeGenerator{img: &models.Image{Data: testPNG(t), ContentType: "image/png"}}
	cache := &mapCache{items: map[string]*models.Image{}}
	cached := services.NewCachedGenerator(gen, cache, "paylibo", time.Hour)

	for i := 0; i < 3; i++ {
		if _, err := cached.Generate(context.Background(), testRequest()); err != nil {
			t.Fatalf("Generate #%d: %v", i, err)
		}
	}
	if gen.Calls() != 1 {
		t.Fatalf("generator called %d times, want 1", gen.Calls())
	}
	if cache.ttl != time.Hour {
		t.Fatalf("ttl = %v", cache.ttl)
	}

	other := testRequest()
	other.VariableSymbol = "43"
	if _, err := cached.Generate(context.Background(), other); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gen.Calls() != 2 {
		t.Fatalf("distinct request served from cache")
	}
}

func TestCachedGeneratorIgnoresCacheFailures(t *testing.T) {
	gen := &fakeGenerator{img: &models.Image{Data: testPNG(t), ContentType: "image/png"}}
	cache := &mapCache{items: map[string]*models.Image{}, getErr: errors.New("connection refused")}

	if _, err := services.NewCachedGenerator(gen, cache, "paylibo", time.Hour).Generate(context.Background(), testRequest()); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gen.Calls() != 1 {
		t.Fatalf("generator called %d times", gen.Calls())
	}
}

func TestCacheKeyScoped(t *testing.T) {
	if services.CacheKey("paylibo", testRequest()) == services.CacheKey("local", testRequest()) {
		t.Fatal("cache keys collide across scopes")
	}
}
