package overlap

import (
	"fmt"

	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// columnPairs lists the front/back pairs, left to right.
var columnPairs = [3][2]lineup.Slot{
	{lineup.LeftFront, lineup.LeftBack},
	{lineup.MiddleFront, lineup.MiddleBack},
	{lineup.RightFront, lineup.RightBack},
}

// Validate checks a lineup against the structural and overlap rules.
//
// If the player count is not six, or the slots are not a permutation of
// 1-6, Validate stops after the structural stage: ordering checks on a
// malformed lineup are meaningless. Otherwise every ordering rule is
// checked independently, so one call may report several violations.
func Validate(l lineup.Lineup) Result {
	if len(l) != lineup.NumSlots {
		return newResult([]Violation{{
			Code:    CodeInvalidLineup,
			Message: fmt.Sprintf("lineup has %d players, need %d", len(l), lineup.NumSlots),
		}})
	}

	vs, slotsOK := checkSlots(l)
	vs = append(vs, checkServers(l)...)
	if !slotsOK {
		return newResult(vs)
	}

	t := l.Table()
	vs = append(vs, checkRow(t, lineup.FrontRow)...)
	vs = append(vs, checkRow(t, lineup.BackRow)...)
	vs = append(vs, checkColumns(t)...)
	return newResult(vs)
}

// checkSlots reports out-of-range and duplicated slots. ok is false if any
// were found.
func checkSlots(l lineup.Lineup) (vs []Violation, ok bool) {
	var seen [lineup.NumSlots]bool
	for _, p := range l {
		if !p.Slot.Valid() {
			vs = append(vs, Violation{
				Code:    CodeInvalidLineup,
				Slots:   []lineup.Slot{p.Slot},
				Message: fmt.Sprintf("player %q has invalid slot %d", p.Name(), int(p.Slot)),
			})
			continue
		}
		if seen[p.Slot.Index()] {
			vs = append(vs, Violation{
				Code:    CodeInvalidLineup,
				Slots:   []lineup.Slot{p.Slot},
				Message: fmt.Sprintf("slot %s is assigned to more than one player", p.Slot),
			})
			continue
		}
		seen[p.Slot.Index()] = true
	}
	return vs, len(vs) == 0
}

func checkServers(l lineup.Lineup) []Violation {
	servers := l.Servers()
	switch {
	case len(servers) == 0:
		return []Violation{{
			Code:    CodeInvalidLineup,
			Message: "no player is designated as server",
		}}
	case len(servers) > 1:
		return []Violation{{
			Code:    CodeMultipleServers,
			Slots:   servers,
			Message: fmt.Sprintf("%d players are designated as server", len(servers)),
		}}
	}
	return nil
}

// checkRow compares each adjacent pair of a row given left to right.
func checkRow(t lineup.Table, row [3]lineup.Slot) []Violation {
	var vs []Violation
	for i := 0; i < len(row)-1; i++ {
		left, right := t.At(row[i]), t.At(row[i+1])
		if exempt(left, right) {
			continue
		}
		if !court.IsLess(left.X, right.X) {
			vs = append(vs, Violation{
				Code:        CodeRowOrder,
				Slots:       []lineup.Slot{left.Slot, right.Slot},
				Message:     fmt.Sprintf("%s must be left of %s", left.Slot.Label(), right.Slot.Label()),
				Coordinates: []court.Point{left.Position(), right.Position()},
			})
		}
	}
	return vs
}

func checkColumns(t lineup.Table) []Violation {
	var vs []Violation
	for _, pair := range columnPairs {
		front, back := t.At(pair[0]), t.At(pair[1])
		if exempt(front, back) {
			continue
		}
		if !court.IsLess(front.Y, back.Y) {
			vs = append(vs, Violation{
				Code:        CodeFrontBack,
				Slots:       []lineup.Slot{front.Slot, back.Slot},
				Message:     fmt.Sprintf("%s must be in front of %s", front.Slot.Label(), back.Slot.Label()),
				Coordinates: []court.Point{front.Position(), back.Position()},
			})
		}
	}
	return vs
}

// exempt reports whether a pair is skipped: a server on either side, or a
// missing player (cannot happen once the slot check passed).
func exempt(a, b *lineup.Player) bool {
	return a == nil || b == nil || a.IsServer || b.IsServer
}

// IsPositionValid reports whether slot may stand at p, given the rest of
// the lineup. It runs the full validation with the position replaced and
// accepts p when no violation involves slot and the lineup is structurally
// sound. Violations between other players are ignored.
func IsPositionValid(slot lineup.Slot, p court.Point, l lineup.Lineup) bool {
	res := Validate(l.WithPosition(slot, p))
	for _, v := range res.Violations {
		if v.Code.IsStructural() || v.Involves(slot) {
			return false
		}
	}
	return true
}
