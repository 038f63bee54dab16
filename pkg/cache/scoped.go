package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis or MongoDB backend without their keys colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// OrderKey generates a prefixed order key.
func (k *ScopedKeyer) OrderKey(words []string) string {
	return k.prefix + k.inner.OrderKey(words)
}

// GraphKey generates a prefixed graph key.
func (k *ScopedKeyer) GraphKey(words []string, format string, detailed bool) string {
	return k.prefix + k.inner.GraphKey(words, format, detailed)
}
