// Package constraint computes where a player may stand while being dragged,
// given the positions of the other five.
//
// Each slot is bound only by its immediate neighbours in the fixed slot
// topology: the adjacent slot to its left and right in the same row, and
// its counterpart in the other row of the same column. A neighbour who is
// serving imposes nothing, and a serving player is bound by nothing.
//
// [CalculateBounds] intersects those constraints into an axis-aligned
// [Bounds] rectangle so a UI can clamp or shade the legal area on every
// drag frame. [IsPositionValid] tests a single point against the same
// constraints directly, and [Snap] pulls an illegal point back into the
// rectangle.
//
// Constraints keep a gap of [court.Tolerance] from the neighbour, matching
// the comparisons the overlap validator performs.
package constraint
