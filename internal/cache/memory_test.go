package cache

import (
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, found := c.Get("k")
	if !found || string(val) != "v" {
		t.Errorf("Expected v, got %q (found=%v)", val, found)
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("Expected entry to expire")
	}
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("a", []byte("1"), time.Minute)
	_ = c.Set("b", []byte("2"), time.Minute)

	_ = c.Delete("a")
	if _, found := c.Get("a"); found {
		t.Error("Expected a to be deleted")
	}

	_ = c.Clear()
	if _, found := c.Get("b"); found {
		t.Error("Expected cache to be empty after Clear")
	}
}

func TestKey_Distinct(t *testing.T) {
	if Key("lookup", "CCO") == Key("lookup", "CCC") {
		t.Error("Different values must produce different keys")
	}
	if Key("lookup", "CCO") == Key("apikey", "CCO") {
		t.Error("Different categories must produce different keys")
	}
	if Key("lookup", "CCO") != Key("lookup", "CCO") {
		t.Error("Keys must be deterministic")
	}
}
