package lineup

import (
	"fmt"

	"github.com/matzehuels/rotacheck/pkg/errors"
)

// Slot is a rotation position, 1 through 6.
type Slot int

// The six rotation slots.
const (
	RightBack   Slot = 1
	RightFront  Slot = 2
	MiddleFront Slot = 3
	LeftFront   Slot = 4
	LeftBack    Slot = 5
	MiddleBack  Slot = 6
)

// NumSlots is the number of rotation slots on court.
const NumSlots = 6

// Row is the row of the court a slot belongs to.
type Row int

const (
	Front Row = iota
	Back
)

func (r Row) String() string {
	if r == Front {
		return "front"
	}
	return "back"
}

// Column is the column of the court a slot belongs to, seen from the
// receiving team facing the net.
type Column int

const (
	Left Column = iota
	Middle
	Right
)

func (c Column) String() string {
	switch c {
	case Left:
		return "left"
	case Middle:
		return "middle"
	default:
		return "right"
	}
}

// none marks a missing neighbour in the tables below.
const none Slot = 0

// Static topology, indexed by slot. Index 0 is unused.
var (
	labels = [NumSlots + 1]string{"", "RB", "RF", "MF", "LF", "LB", "MB"}
	rows   = [NumSlots + 1]Row{0, Back, Front, Front, Front, Back, Back}
	cols   = [NumSlots + 1]Column{0, Right, Right, Middle, Left, Left, Middle}

	// leftOf/rightOf follow the linear chains 4-3-2 and 5-6-1.
	leftOf  = [NumSlots + 1]Slot{none, MiddleBack, MiddleFront, LeftFront, none, none, LeftBack}
	rightOf = [NumSlots + 1]Slot{none, none, none, RightFront, MiddleFront, MiddleBack, RightBack}

	counterparts = [NumSlots + 1]Slot{none, RightFront, RightBack, MiddleBack, LeftBack, LeftFront, MiddleFront}
)

// FrontRow lists the front-row slots from left to right.
var FrontRow = [3]Slot{LeftFront, MiddleFront, RightFront}

// BackRow lists the back-row slots from left to right.
var BackRow = [3]Slot{LeftBack, MiddleBack, RightBack}

// Slots lists all slots in rotation order.
var Slots = [NumSlots]Slot{RightBack, RightFront, MiddleFront, LeftFront, LeftBack, MiddleBack}

// ParseSlot converts an integer to a Slot, returning an INVALID_SLOT error
// when it is outside 1-6.
func ParseSlot(n int) (Slot, error) {
	if err := errors.ValidateSlot(n); err != nil {
		return none, err
	}
	return Slot(n), nil
}

// Valid reports whether s is one of the six rotation slots.
func (s Slot) Valid() bool { return s >= RightBack && s <= MiddleBack }

// Index returns the zero-based array index for s. s must be valid.
func (s Slot) Index() int { return int(s) - 1 }

// Label returns the two-letter abbreviation (e.g. "MF").
func (s Slot) Label() string {
	if !s.Valid() {
		return fmt.Sprintf("slot%d", int(s))
	}
	return labels[s]
}

// Name returns the spelled-out position name (e.g. "middle front").
func (s Slot) Name() string {
	if !s.Valid() {
		return fmt.Sprintf("slot %d", int(s))
	}
	return s.Column().String() + " " + s.Row().String()
}

// String returns the label and slot number, e.g. "MF(3)".
func (s Slot) String() string {
	return fmt.Sprintf("%s(%d)", s.Label(), int(s))
}

// Row returns the court row of s. s must be valid.
func (s Slot) Row() Row { return rows[s] }

// Column returns the court column of s. s must be valid.
func (s Slot) Column() Column { return cols[s] }

// IsFront reports whether s is a front-row slot.
func (s Slot) IsFront() bool { return s.Valid() && rows[s] == Front }

// LeftNeighbor returns the adjacent slot to the left in the same row.
func (s Slot) LeftNeighbor() (Slot, bool) {
	if !s.Valid() {
		return none, false
	}
	n := leftOf[s]
	return n, n != none
}

// RightNeighbor returns the adjacent slot to the right in the same row.
func (s Slot) RightNeighbor() (Slot, bool) {
	if !s.Valid() {
		return none, false
	}
	n := rightOf[s]
	return n, n != none
}

// Counterpart returns the slot in the same column of the other row.
func (s Slot) Counterpart() Slot {
	if !s.Valid() {
		return none
	}
	return counterparts[s]
}

// Rotate returns the slot a player in s moves to after one clockwise
// rotation (2 -> 1, 1 -> 6, ..., 3 -> 2).
func (s Slot) Rotate() Slot {
	if s == RightBack {
		return MiddleBack
	}
	return s - 1
}
