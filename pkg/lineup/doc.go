// Package lineup models the six rotation slots of a volleyball team and the
// players occupying them.
//
// # Slots
//
// A [Slot] is one of the six fixed rotation positions, numbered 1-6 in the
// order the team rotates through them:
//
//	      net
//	  4(LF) 3(MF) 2(RF)
//	  5(LB) 6(MB) 1(RB)
//
// The row, column and neighbour relations between slots are fixed by the
// rules of the game and are stored as static lookup tables rather than
// derived: front row is the chain 4-3-2, back row is 5-6-1, and each slot's
// counterpart is the slot in the same column of the other row (4-5, 3-6,
// 2-1).
//
// # Lineups
//
// A [Lineup] is a slice of [Player] values. A well-formed lineup has exactly
// six players whose slots are a permutation of 1-6 and exactly one server,
// but Lineup itself does not enforce this: malformed lineups are a normal
// input to the overlap validator, which reports them as violations.
//
// Lookups by slot go through a [Table], a fixed array indexed by slot-1.
package lineup
