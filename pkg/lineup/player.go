package lineup

import (
	"slices"

	"github.com/matzehuels/rotacheck/pkg/court"
)

// Player is one player's state at the moment of serve. X and Y are in
// rules space (meters).
type Player struct {
	ID          string  `json:"id" toml:"id"`
	DisplayName string  `json:"name,omitempty" toml:"name"`
	Role        string  `json:"role,omitempty" toml:"role"`
	Slot        Slot    `json:"slot" toml:"slot"`
	X           float64 `json:"x" toml:"x"`
	Y           float64 `json:"y" toml:"y"`
	IsServer    bool    `json:"server,omitempty" toml:"server"`
}

// Position returns the player's rules-space position.
func (p Player) Position() court.Point {
	return court.Point{X: p.X, Y: p.Y}
}

// Name returns DisplayName, falling back to ID.
func (p Player) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ID
}

// Lineup is the set of players on court for one rotation.
type Lineup []Player

// Table indexes players by slot-1. Entries are nil for unoccupied slots.
// When a lineup holds duplicate slots the first occurrence wins.
type Table [NumSlots]*Player

// Table builds a slot-indexed view of the lineup. Players with an invalid
// slot are skipped. The pointers refer to the lineup's backing array.
func (l Lineup) Table() Table {
	var t Table
	for i := range l {
		s := l[i].Slot
		if !s.Valid() || t[s.Index()] != nil {
			continue
		}
		t[s.Index()] = &l[i]
	}
	return t
}

// At returns the player in slot s, or nil if the slot is empty or invalid.
func (t Table) At(s Slot) *Player {
	if !s.Valid() {
		return nil
	}
	return t[s.Index()]
}

// Servers returns the slots of every player flagged as server.
func (l Lineup) Servers() []Slot {
	var out []Slot
	for _, p := range l {
		if p.IsServer {
			out = append(out, p.Slot)
		}
	}
	return out
}

// Server returns the single serving player. ok is false when the lineup
// has no server or more than one.
func (l Lineup) Server() (Player, bool) {
	var found Player
	n := 0
	for _, p := range l {
		if p.IsServer {
			found = p
			n++
		}
	}
	return found, n == 1
}

// Clone returns a copy of the lineup that shares no backing storage.
func (l Lineup) Clone() Lineup {
	return slices.Clone(l)
}

// WithPosition returns a copy of the lineup with the player in slot moved
// to p. The receiver is not modified. If no player occupies slot the copy
// is returned unchanged.
func (l Lineup) WithPosition(slot Slot, p court.Point) Lineup {
	out := l.Clone()
	for i := range out {
		if out[i].Slot == slot {
			out[i].X, out[i].Y = p.X, p.Y
			break
		}
	}
	return out
}

// Without returns a copy of the lineup with the player in slot removed.
func (l Lineup) Without(slot Slot) Lineup {
	out := make(Lineup, 0, len(l))
	for _, p := range l {
		if p.Slot != slot {
			out = append(out, p)
		}
	}
	return out
}

// SortedBySlot returns a copy ordered by slot number. Ties keep their
// original order.
func (l Lineup) SortedBySlot() Lineup {
	out := l.Clone()
	slices.SortStableFunc(out, func(a, b Player) int { return int(a.Slot) - int(b.Slot) })
	return out
}

// Rotate returns the lineup after one clockwise rotation: every player
// advances to the next slot and keeps their coordinates. The player moving
// from slot 2 to slot 1 becomes the server.
func (l Lineup) Rotate() Lineup {
	out := l.Clone()
	for i := range out {
		if out[i].Slot.Valid() {
			out[i].Slot = out[i].Slot.Rotate()
		}
		out[i].IsServer = out[i].Slot == RightBack
	}
	return out
}
