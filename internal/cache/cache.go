package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for memoizing externally fetched values.
// Implementations are injectable so tests can substitute a fake.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a namespaced cache key from a category and a raw value
// (a candidate notation, an API-key name).
func Key(category, raw string) string {
	hash := sha256.Sum256([]byte(raw))
	return "molscan:v1:" + category + ":" + hex.EncodeToString(hash[:])
}
