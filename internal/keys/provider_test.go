package keys

import (
	"fmt"
	"testing"
	"time"

	"github.com/molscan/molscan/internal/cache"
)

func TestProvider_MemoizesSource(t *testing.T) {
	fetches := 0
	source := func(name string) (string, error) {
		fetches++
		return "secret-" + name, nil
	}

	p := NewProvider(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, source)

	for i := 0; i < 3; i++ {
		key, err := p.Get("OPENAI_API_KEY")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if key != "secret-OPENAI_API_KEY" {
			t.Errorf("Unexpected key %q", key)
		}
	}

	if fetches != 1 {
		t.Errorf("Expected 1 source fetch, got %d", fetches)
	}
}

func TestProvider_InvalidateForcesRefetch(t *testing.T) {
	fetches := 0
	source := func(string) (string, error) {
		fetches++
		return fmt.Sprintf("v%d", fetches), nil
	}

	p := NewProvider(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, source)

	first, _ := p.Get("KEY")
	p.Invalidate("KEY")
	second, _ := p.Get("KEY")

	if first != "v1" || second != "v2" {
		t.Errorf("Expected refetch after invalidation, got %q then %q", first, second)
	}
}

func TestProvider_SourceErrorNotCached(t *testing.T) {
	fetches := 0
	source := func(string) (string, error) {
		fetches++
		if fetches == 1 {
			return "", fmt.Errorf("transient failure")
		}
		return "recovered", nil
	}

	p := NewProvider(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, source)

	if _, err := p.Get("KEY"); err == nil {
		t.Fatal("Expected error from failing source")
	}

	key, err := p.Get("KEY")
	if err != nil {
		t.Fatalf("Expected recovery on second fetch, got %v", err)
	}
	if key != "recovered" {
		t.Errorf("Expected recovered key, got %q", key)
	}
}

func TestProvider_TTLExpiry(t *testing.T) {
	fetches := 0
	source := func(string) (string, error) {
		fetches++
		return "k", nil
	}

	p := NewProvider(cache.NewMemoryCache(time.Minute, time.Minute), 10*time.Millisecond, source)

	_, _ = p.Get("KEY")
	time.Sleep(30 * time.Millisecond)
	_, _ = p.Get("KEY")

	if fetches != 2 {
		t.Errorf("Expected refetch after TTL expiry, got %d fetches", fetches)
	}
}
