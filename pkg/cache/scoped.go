package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one backend without seeing each other's entries.
//
//	keyer := cache.NewScopedKeyer(nil, "gitego:prod:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphQLKey generates a prefixed GraphQL key.
func (k *ScopedKeyer) GraphQLKey(query string, variables []byte) string {
	return k.prefix + k.inner.GraphQLKey(query, variables)
}
