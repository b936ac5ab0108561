package constraint

import (
	"fmt"

	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// Kind is the side of the moving player a neighbour constrains.
type Kind int

const (
	// KindLeft: the neighbour to the left sets a minimum x.
	KindLeft Kind = iota
	// KindRight: the neighbour to the right sets a maximum x.
	KindRight
	// KindFront: the front-row counterpart sets a minimum y.
	KindFront
	// KindBack: the back-row counterpart sets a maximum y.
	KindBack
)

func (k Kind) String() string {
	switch k {
	case KindLeft:
		return "left"
	case KindRight:
		return "right"
	case KindFront:
		return "front"
	default:
		return "back"
	}
}

// Constraint is one neighbour's restriction on the moving slot.
type Constraint struct {
	Kind     Kind
	Neighbor lineup.Slot
	Position court.Point // neighbour's current position
}

// Limit returns the bound the constraint places on its axis, already
// offset by the tolerance gap.
func (c Constraint) Limit() float64 {
	switch c.Kind {
	case KindLeft:
		return c.Position.X + court.Tolerance
	case KindRight:
		return c.Position.X - court.Tolerance
	case KindFront:
		return c.Position.Y + court.Tolerance
	default:
		return c.Position.Y - court.Tolerance
	}
}

// Allows reports whether p satisfies the constraint, using the same
// tolerant comparison as the overlap validator.
func (c Constraint) Allows(p court.Point) bool {
	switch c.Kind {
	case KindLeft:
		return court.IsLess(c.Position.X, p.X)
	case KindRight:
		return court.IsLess(p.X, c.Position.X)
	case KindFront:
		return court.IsLess(c.Position.Y, p.Y)
	default:
		return court.IsLess(p.Y, c.Position.Y)
	}
}

// Reason describes the constraint for display.
func (c Constraint) Reason() string {
	switch c.Kind {
	case KindLeft:
		return fmt.Sprintf("must stay right of %s at x=%.2f", c.Neighbor, c.Position.X)
	case KindRight:
		return fmt.Sprintf("must stay left of %s at x=%.2f", c.Neighbor, c.Position.X)
	case KindFront:
		return fmt.Sprintf("must stay behind %s at y=%.2f", c.Neighbor, c.Position.Y)
	default:
		return fmt.Sprintf("must stay in front of %s at y=%.2f", c.Neighbor, c.Position.Y)
	}
}

// Active returns the constraints the neighbours of slot currently impose.
// Only the immediate left/right neighbour and the counterpart are
// considered; serving neighbours and empty slots impose nothing. The entry
// for slot itself in others, if any, is ignored.
func Active(slot lineup.Slot, others lineup.Lineup) []Constraint {
	t := others.Table()
	var out []Constraint

	add := func(k Kind, n lineup.Slot) {
		p := t.At(n)
		if p == nil || p.IsServer || n == slot {
			return
		}
		out = append(out, Constraint{Kind: k, Neighbor: n, Position: p.Position()})
	}

	if n, ok := slot.LeftNeighbor(); ok {
		add(KindLeft, n)
	}
	if n, ok := slot.RightNeighbor(); ok {
		add(KindRight, n)
	}
	if slot.IsFront() {
		add(KindBack, slot.Counterpart())
	} else {
		add(KindFront, slot.Counterpart())
	}
	return out
}
