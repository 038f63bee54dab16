package cache

import (
	"context"
	"time"
)

// NullCache misses on every Get and discards every Set. Runs with
// --no-cache, the "none" backend, and the CLI fallback when the configured
// backend cannot be reached all end up here.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
