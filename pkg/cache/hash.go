package cache

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hash returns the xxhash64 digest of data as 16 hex characters.
// It is not collision resistant against an adversary; cache keys only
// need to be stable and well distributed.
func Hash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
