// Package overlap validates a lineup against the volleyball overlap rules.
//
// At the moment of serve each player must respect the order of the players
// next to them:
//
//   - Row order: in each row the left player stands left of the middle
//     player, who stands left of the right player (LF < MF < RF and
//     LB < MB < RB on x).
//   - Front/back order: in each column the front player stands closer to
//     the net than the back player (smaller y).
//
// Only adjacent pairs are compared. The server is exempt from every pair
// it belongs to, since service happens from outside the formation.
//
// [Validate] runs a structural check first (six players, slots forming a
// permutation of 1-6, exactly one server) and then the ordering checks. All
// failures are reported as [Violation] values in a [Result]; nothing in this
// package returns an error for a malformed lineup.
//
// All comparisons use [court.IsLess], so two coordinates within
// [court.Tolerance] of each other count as aligned, which is a fault.
package overlap
