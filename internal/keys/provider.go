// Package keys memoizes externally sourced API keys with a TTL, behind an
// injectable cache so tests can substitute fakes. The memoized value is
// process-wide state made explicit: no package-level mutables, and an
// Invalidate operation for forced refresh.
package keys

import (
	"fmt"
	"os"
	"time"

	"github.com/molscan/molscan/internal/cache"
)

// Source fetches a key by name; the default source reads the environment
type Source func(name string) (string, error)

// Provider resolves and memoizes API keys
type Provider struct {
	cache  cache.Cache
	ttl    time.Duration
	source Source
}

// NewProvider creates a provider backed by the given cache and TTL. A nil
// source defaults to environment lookup.
func NewProvider(c cache.Cache, ttl time.Duration, source Source) *Provider {
	if source == nil {
		source = fromEnv
	}
	return &Provider{
		cache:  c,
		ttl:    ttl,
		source: source,
	}
}

// Get returns the key for name, fetching through the source on a cache miss
// and memoizing the result for the provider TTL.
func (p *Provider) Get(name string) (string, error) {
	key := cache.Key("apikey", name)

	if val, found := p.cache.Get(key); found {
		return string(val), nil
	}

	value, err := p.source(name)
	if err != nil {
		return "", fmt.Errorf("fetch key %s: %w", name, err)
	}

	_ = p.cache.Set(key, []byte(value), p.ttl)
	return value, nil
}

// Invalidate drops the memoized key so the next Get refetches it
func (p *Provider) Invalidate(name string) {
	_ = p.cache.Delete(cache.Key("apikey", name))
}

func fromEnv(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("%s environment variable not set", name)
	}
	return value, nil
}
