// Package cache stores computed orders keyed by a hash of their input.
//
// Backends implement [Cache]: [FileCache] for the CLI, [RedisCache] and
// [MongoCache] for shared deployments, and [NullCache] when caching is
// disabled. All backends are safe for concurrent use.
//
// Keys come from a [Keyer]. The default keyer hashes the word list together
// with the output kind, so two requests over the same words share an entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.OrderKey(words)
//	data, hit, err := c.Get(ctx, key)
//
// Backend errors are advisory. Callers treat a failing cache as a miss.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// A missing or expired key is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer derives cache keys from request inputs.
type Keyer interface {
	// OrderKey is the key for the inferred order of words.
	OrderKey(words []string) string

	// GraphKey is the key for the rendered precedence graph of words.
	// Detailed and plain renders are distinct entries.
	GraphKey(words []string, format string, detailed bool) string
}

// DefaultTTL is the lifetime of cached results unless configured otherwise.
const DefaultTTL = 7 * 24 * time.Hour

// KeyVersion is mixed into every key. Bump it when the cached encoding changes.
const KeyVersion = "v1"

// DefaultKeyer hashes inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// OrderKey implements Keyer.
func (DefaultKeyer) OrderKey(words []string) string {
	return hashKey("order", KeyVersion, words)
}

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(words []string, format string, detailed bool) string {
	return hashKey("graph", KeyVersion, format, detailed, words)
}

// hashKey returns kind:sha256(parts). Parts are JSON encoded first so word
// boundaries survive.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", kind, hex.EncodeToString(sum[:]))
}
