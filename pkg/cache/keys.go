package cache

import (
	"strconv"
	"strings"

	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// Key kinds. Every key a Keyer derives starts with one of these, after any
// scope prefix.
const (
	KindValidate = "validate"
	KindBounds   = "bounds"
)

// Kinds lists every key kind.
var Kinds = []string{KindValidate, KindBounds}

// Keyer derives cache keys for engine results.
type Keyer interface {
	// LineupKey identifies a full-lineup validation result.
	LineupKey(l lineup.Lineup) string

	// BoundsKey identifies the bounds of slot given the other players.
	// The moving player's own position never contributes, so dragging a
	// player keeps hitting the same key.
	BoundsKey(slot lineup.Slot, others lineup.Lineup, isServer bool) string
}

// DefaultKeyer generates unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LineupKey hashes the full lineup fingerprint.
func (k *DefaultKeyer) LineupKey(l lineup.Lineup) string {
	return hashKey(KindValidate, Fingerprint(l))
}

// BoundsKey hashes only what the constraint derivation reads: the players
// standing in the slot's row neighbours and column counterpart. A serving
// slot is unconstrained, so every serving query for the same slot shares
// one key.
func (k *DefaultKeyer) BoundsKey(slot lineup.Slot, others lineup.Lineup, isServer bool) string {
	if isServer {
		return hashKey(KindBounds, strconv.Itoa(int(slot)), "server")
	}

	t := others.Without(slot).Table()

	parts := []string{strconv.Itoa(int(slot))}
	for _, n := range neighborhood(slot) {
		p := t.At(n)
		switch {
		case p == nil:
			parts = append(parts, "-")
		case p.IsServer:
			parts = append(parts, "s")
		default:
			var b strings.Builder
			writePoint(&b, p.X, p.Y)
			parts = append(parts, b.String())
		}
	}
	return hashKey(KindBounds, parts...)
}

// neighborhood lists the slots whose occupants can constrain s, in a fixed
// order. Missing neighbours are reported as slot 0 so positions in the key
// stay aligned.
func neighborhood(s lineup.Slot) [3]lineup.Slot {
	var out [3]lineup.Slot
	if n, ok := s.LeftNeighbor(); ok {
		out[0] = n
	}
	if n, ok := s.RightNeighbor(); ok {
		out[1] = n
	}
	if s.Valid() {
		out[2] = s.Counterpart()
	}
	return out
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
