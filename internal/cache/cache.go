// Package cache stores fetched corpus texts and extracted feature vectors
// so repeated runs skip network and extraction work.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is the common interface of the memory, disk and layered tiers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// schemaVersion is baked into every key; bumping it invalidates cached
// feature vectors when the feature schema changes.
const schemaVersion = "stylo:v1:"

// Key derives a cache key from its parts (e.g. kind plus document content
// hash). Parts are hashed so keys are filesystem-safe regardless of input.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return schemaVersion + hex.EncodeToString(hash[:])
}
