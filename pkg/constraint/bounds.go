package constraint

import (
	"fmt"
	"math"

	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/errors"
	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// Bounds is the rectangle a slot may occupy. Constrained is false when no
// neighbour restricts the slot (always the case for the server).
type Bounds struct {
	MinX        float64  `json:"minX"`
	MaxX        float64  `json:"maxX"`
	MinY        float64  `json:"minY"`
	MaxY        float64  `json:"maxY"`
	Constrained bool     `json:"isConstrained"`
	Reasons     []string `json:"constraintReasons"`

	// Conflict is set when neighbours are themselves misordered and an
	// axis was collapsed to its midpoint.
	Conflict bool `json:"conflict,omitempty"`
}

// Court returns the unconstrained rectangle: the full court, extended into
// the service zone when allowServiceZone is true.
func Court(allowServiceZone bool) Bounds {
	return Bounds{
		MinX:    0,
		MaxX:    court.Width,
		MinY:    court.NetY,
		MaxY:    court.MaxY(allowServiceZone),
		Reasons: []string{},
	}
}

// Contains reports whether p lies inside the rectangle (edges included).
func (b Bounds) Contains(p court.Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Clamp moves p to the nearest point of the rectangle, axis by axis.
func (b Bounds) Clamp(p court.Point) court.Point {
	return court.Point{
		X: court.Clamp(p.X, b.MinX, b.MaxX),
		Y: court.Clamp(p.Y, b.MinY, b.MaxY),
	}
}

// Width returns the extent of the rectangle on x.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Depth returns the extent of the rectangle on y.
func (b Bounds) Depth() float64 { return b.MaxY - b.MinY }

// CalculateBounds returns the rectangle slot may occupy without creating an
// overlap fault against its neighbours in others.
//
// A server gets the full court plus service zone, unconstrained. Otherwise
// the full court (without service zone) is narrowed by each active
// constraint. If the neighbours are already misordered so that an axis
// inverts, that axis collapses to its midpoint and a conflict reason is
// appended rather than returning an empty rectangle.
//
// The only error is INVALID_SLOT for a slot outside 1-6.
func CalculateBounds(slot lineup.Slot, others lineup.Lineup, isServer bool) (Bounds, error) {
	if err := errors.ValidateSlot(int(slot)); err != nil {
		return Bounds{}, err
	}
	if isServer {
		return Court(true), nil
	}

	b := Court(false)
	for _, c := range Active(slot, others) {
		limit := c.Limit()
		switch c.Kind {
		case KindLeft:
			b.MinX = math.Max(b.MinX, limit)
		case KindRight:
			b.MaxX = math.Min(b.MaxX, limit)
		case KindFront:
			b.MinY = math.Max(b.MinY, limit)
		case KindBack:
			b.MaxY = math.Min(b.MaxY, limit)
		}
		b.Reasons = append(b.Reasons, c.Reason())
	}
	b.Constrained = len(b.Reasons) > 0

	if b.MinX > b.MaxX {
		b.Reasons = append(b.Reasons, fmt.Sprintf("conflicting constraints on x (%.2f > %.2f)", b.MinX, b.MaxX))
		b.MinX = (b.MinX + b.MaxX) / 2
		b.MaxX = b.MinX
		b.Conflict = true
	}
	if b.MinY > b.MaxY {
		b.Reasons = append(b.Reasons, fmt.Sprintf("conflicting constraints on y (%.2f > %.2f)", b.MinY, b.MaxY))
		b.MinY = (b.MinY + b.MaxY) / 2
		b.MaxY = b.MinY
		b.Conflict = true
	}
	return b, nil
}

// IsPositionValid reports whether slot may stand at p. The point must be on
// court (service zone allowed for the server); a non-server must also
// satisfy every active constraint, checked directly rather than through
// the bounds rectangle.
func IsPositionValid(slot lineup.Slot, p court.Point, others lineup.Lineup, isServer bool) (bool, error) {
	if err := errors.ValidateSlot(int(slot)); err != nil {
		return false, err
	}
	if !court.IsValidPosition(p.X, p.Y, isServer) {
		return false, nil
	}
	if isServer {
		return true, nil
	}
	for _, c := range Active(slot, others) {
		if !c.Allows(p) {
			return false, nil
		}
	}
	return true, nil
}

// Snap returns target unchanged if it is valid, otherwise target clamped
// into the slot's bounds on each axis independently. The clamp is exact, not
// widened by court.Tolerance: the bounds already sit one tolerance away from
// each neighbour, and widening them would land the player level with it.
func Snap(slot lineup.Slot, target court.Point, others lineup.Lineup, isServer bool) (court.Point, error) {
	ok, err := IsPositionValid(slot, target, others, isServer)
	if err != nil {
		return court.Point{}, err
	}
	if ok {
		return target, nil
	}
	b, err := CalculateBounds(slot, others, isServer)
	if err != nil {
		return court.Point{}, err
	}
	return b.Clamp(target), nil
}
