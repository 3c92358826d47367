// Package cache stores rendered documents and export artifacts.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry, for the CLI and single-process servers
//   - [RedisCache]: a shared Redis instance, for servers behind a load balancer
//   - [NullCache]: stores nothing, for disabling the cache
//
// Keys are built by a [Keyer] from content hashes and render options, so
// identical inputs rendered with identical options share an entry:
//
//	k := cache.NewDefaultKeyer()
//	key := k.RenderKey(cache.Hash(input), cache.RenderKeyOpts{Format: "svg", Seed: 42})
//	data, err := cache.Fetch(ctx, c, key, time.Hour, func() ([]byte, error) {
//	    return render(input)
//	})
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/netfog/pkg/observability"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
// Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Fetch returns the cached value for key, computing and storing it with
// compute on a miss. The boolean reports a cache hit. A failing Set does
// not fail Fetch; the computed value is still returned.
func Fetch(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	hooks := observability.Cache()
	kind := keyType(key)
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		hooks.OnCacheHit(ctx, kind)
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, kind)
	data, err := compute()
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err == nil {
		hooks.OnCacheSet(ctx, kind, len(data))
	}
	return data, false, nil
}

// keyType extracts "render" from "netfog:render:<hash>".
func keyType(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return "other"
	}
	key = key[:i]
	return key[strings.LastIndexByte(key, ':')+1:]
}
