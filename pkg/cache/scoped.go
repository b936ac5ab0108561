package cache

import "github.com/matzehuels/rotacheck/pkg/lineup"

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several deployments or environments share one Redis.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "rotacheck:")
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

// LineupKey generates a prefixed key for validation results.
func (k *ScopedKeyer) LineupKey(l lineup.Lineup) string {
	return k.prefix + k.inner.LineupKey(l)
}

// BoundsKey generates a prefixed key for bounds results.
func (k *ScopedKeyer) BoundsKey(slot lineup.Slot, others lineup.Lineup, isServer bool) string {
	return k.prefix + k.inner.BoundsKey(slot, others, isServer)
}

// KeyPrefix returns the scope of keys generated by k: the prefix of a
// ScopedKeyer, or "" for any other keyer.
func KeyPrefix(k Keyer) string {
	if s, ok := k.(*ScopedKeyer); ok {
		return s.prefix
	}
	return ""
}
