// Package cache stores upstream GraphQL responses for a short time.
//
// # Backends
//
//   - [MemoryCache]: process-local TTL map, the default for the server
//   - [FileCache]: JSON entry files on disk, used by the CLI
//   - [RedisCache]: shared cache for several server replicas
//   - [NullCache]: never stores anything (--no-cache)
//
// All backends treat an entry older than its TTL as absent. Expired entries
// are dropped when they are read; there is no background eviction.
//
// # Keys
//
// Keys are built by a [Keyer]. The default keyer hashes the query text and
// the serialized variables separately with xxhash and joins the two digests:
//
//	key := cache.NewDefaultKeyer().GraphQLKey(query, varsJSON)
//	// graphql:9f1c...e2a0b7...
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry TTL.
type Cache interface {
	// Get returns the stored bytes and true on a fresh hit.
	// A missing or expired entry is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// GraphQLKey returns the key for a GraphQL request. variables must be
	// the serialized variables object, as sent on the wire.
	GraphQLKey(query string, variables []byte) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphQLKey returns "graphql:" followed by the query digest and the
// variables digest.
func (DefaultKeyer) GraphQLKey(query string, variables []byte) string {
	return "graphql:" + Hash([]byte(query)) + Hash(variables)
}
