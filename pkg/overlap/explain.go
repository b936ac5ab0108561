package overlap

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// Explain renders a violation as a sentence using position names and the
// actual coordinates. Coordinates are read from l when the slots are
// present there, falling back to the violation's own snapshot.
func Explain(v Violation, l lineup.Lineup) string {
	switch v.Code {
	case CodeRowOrder:
		a, b, ok := pair(v, l)
		if !ok {
			return v.Message
		}
		gap := b.X - a.X
		return fmt.Sprintf("%s is at x=%.2f m but must stand left of %s at x=%.2f m; %s.",
			describe(v.Slots[0], l, true), a.X, describe(v.Slots[1], l, false), b.X,
			shortfall(gap, "to the left of"))

	case CodeFrontBack:
		a, b, ok := pair(v, l)
		if !ok {
			return v.Message
		}
		gap := b.Y - a.Y
		return fmt.Sprintf("%s is %.2f m from the net but must be closer to the net than %s at %.2f m; %s.",
			describe(v.Slots[0], l, true), a.Y, describe(v.Slots[1], l, false), b.Y,
			shortfall(gap, "in front of"))

	case CodeMultipleServers:
		names := make([]string, len(v.Slots))
		for i, s := range v.Slots {
			names[i] = describe(s, l, false)
		}
		return fmt.Sprintf("Only one player may serve, but %s are all marked as server.", joinNames(names))

	default:
		return capitalize(v.Message) + "."
	}
}

// pair resolves the current positions of an ordering violation's slots.
func pair(v Violation, l lineup.Lineup) (a, b court.Point, ok bool) {
	if len(v.Slots) != 2 {
		return a, b, false
	}
	t := l.Table()
	pa, pb := t.At(v.Slots[0]), t.At(v.Slots[1])
	switch {
	case pa != nil && pb != nil:
		return pa.Position(), pb.Position(), true
	case len(v.Coordinates) == 2:
		return v.Coordinates[0], v.Coordinates[1], true
	}
	return a, b, false
}

// describe names a slot, with the player's display name when one is set.
func describe(s lineup.Slot, l lineup.Lineup, sentenceStart bool) string {
	if p := l.Table().At(s); p != nil && p.DisplayName != "" {
		return fmt.Sprintf("%s (%s, slot %d)", p.DisplayName, s.Name(), int(s))
	}
	out := fmt.Sprintf("%s (slot %d)", s.Name(), int(s))
	if sentenceStart {
		out = capitalize(out)
	}
	return out
}

// shortfall describes how far a pair is from satisfying the rule. gap is the
// signed distance in rule direction (positive when correctly ordered).
func shortfall(gap float64, relation string) string {
	switch {
	case math.Abs(gap) < court.Tolerance:
		return fmt.Sprintf("they are within %.0f cm of each other, which counts as level", court.Tolerance*100)
	case gap < 0:
		return fmt.Sprintf("the pair is reversed by %.2f m", -gap)
	default:
		return fmt.Sprintf("keep at least %.0f cm %s", court.Tolerance*100, relation)
	}
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "several players"
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
