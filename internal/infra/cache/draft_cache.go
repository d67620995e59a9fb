package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/xavierca1/mailmorph/internal/usecase"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedGenerator memoizes drafts by prompt. Generator errors are never cached.
type CachedGenerator struct {
	next  usecase.DraftGenerator
	store Store
	ttl   time.Duration
}

func NewCachedGenerator(next usecase.DraftGenerator, store Store, ttl time.Duration) *CachedGenerator {
	return &CachedGenerator{next: next, store: store, ttl: ttl}
}

func (g *CachedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	key := DraftKey(prompt)

	if cached, _ := g.store.Get(ctx, key); len(cached) > 0 {
		return string(cached), nil
	}

	text, err := g.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text != "" {
		_ = g.store.Set(ctx, key, []byte(text), g.ttl)
	}
	return text, nil
}

func DraftKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return "draft:" + hex.EncodeToString(sum[:])
}
