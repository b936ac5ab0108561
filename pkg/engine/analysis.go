package engine

import (
	"fmt"
	"math"
	"sync"

	"github.com/matzehuels/rotacheck/pkg/constraint"
	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/lineup"
	"github.com/matzehuels/rotacheck/pkg/overlap"
)

// Severity grades how far a lineup is from legal.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// MajorInversion is the ordering reversal, in metres, above which a
// positional fault counts as major rather than minor.
const MajorInversion = 0.5

// Fix proposes moving one player to clear an ordering violation.
type Fix struct {
	Slot     lineup.Slot  `json:"slot"`
	From     court.Point  `json:"from"`
	To       court.Point  `json:"to"`
	Distance float64      `json:"distance"`
	Code     overlap.Code `json:"code"`
}

// String describes the fix, e.g. "move MF(3) from (1.50, 2.00) to (1.53, 2.00)".
func (f Fix) String() string {
	return fmt.Sprintf("move %s from %s to %s", f.Slot, f.From, f.To)
}

// Analysis is the result of Engine.Validate. Legal, Violations and Result
// are fixed at construction; Explanations, Fixes and Severity are computed
// on first call and memoized. An Analysis is safe for concurrent use.
type Analysis struct {
	lineup lineup.Lineup
	result overlap.Result
	cached bool

	explainOnce  sync.Once
	explanations []string

	fixesOnce sync.Once
	fixes     []Fix

	severityOnce sync.Once
	severity     Severity
}

func newAnalysis(l lineup.Lineup, res overlap.Result, cached bool) *Analysis {
	return &Analysis{lineup: l, result: res, cached: cached}
}

// Legal reports whether the lineup has no violations.
func (a *Analysis) Legal() bool { return a.result.Legal }

// Violations returns the violations in detection order.
func (a *Analysis) Violations() []overlap.Violation { return a.result.Violations }

// Result returns the underlying validation result.
func (a *Analysis) Result() overlap.Result { return a.result }

// Cached reports whether the result was served from the cache.
func (a *Analysis) Cached() bool { return a.cached }

// Lineup returns the analysed lineup.
func (a *Analysis) Lineup() lineup.Lineup { return a.lineup }

// Explanations returns one human-readable sentence per violation.
func (a *Analysis) Explanations() []string {
	a.explainOnce.Do(func() {
		a.explanations = make([]string, len(a.result.Violations))
		for i, v := range a.result.Violations {
			a.explanations[i] = overlap.Explain(v, a.lineup)
		}
	})
	return a.explanations
}

// Fixes proposes, for each ordering violation, the smaller of the two moves
// that would clear it: snapping either player of the pair into its bounds.
// Each slot appears at most once. Structural violations get no fix. A player
// whose bounds are in conflict is never moved, since its collapsed midpoint
// still breaks a constraint; the partner's move is proposed instead.
func (a *Analysis) Fixes() []Fix {
	a.fixesOnce.Do(func() {
		a.fixes = []Fix{}
		if a.hasStructural() {
			return
		}
		seen := make(map[lineup.Slot]bool)
		for _, v := range a.result.Violations {
			if len(v.Slots) != 2 || seen[v.Slots[0]] || seen[v.Slots[1]] {
				continue
			}
			if f, ok := a.bestFix(v); ok {
				seen[f.Slot] = true
				a.fixes = append(a.fixes, f)
			}
		}
	})
	return a.fixes
}

func (a *Analysis) bestFix(v overlap.Violation) (Fix, bool) {
	var best Fix
	found := false
	t := a.lineup.Table()
	for _, s := range v.Slots {
		p := t.At(s)
		if p == nil || p.IsServer {
			continue
		}
		from := p.Position()
		b, err := constraint.CalculateBounds(s, a.lineup, false)
		if err != nil || b.Conflict {
			continue
		}
		to, err := constraint.Snap(s, from, a.lineup, false)
		if err != nil {
			continue
		}
		if ok, _ := constraint.IsPositionValid(s, to, a.lineup, false); !ok {
			continue
		}
		d := math.Hypot(to.X-from.X, to.Y-from.Y)
		if d == 0 {
			continue
		}
		if !found || d < best.Distance {
			best = Fix{Slot: s, From: from, To: to, Distance: d, Code: v.Code}
			found = true
		}
	}
	return best, found
}

// Severity grades the lineup: critical for a malformed lineup, major when
// any ordering is reversed by more than MajorInversion, minor otherwise.
func (a *Analysis) Severity() Severity {
	a.severityOnce.Do(func() {
		switch {
		case a.result.Legal:
			a.severity = SeverityNone
		case a.hasStructural():
			a.severity = SeverityCritical
		case a.maxInversion() > MajorInversion:
			a.severity = SeverityMajor
		default:
			a.severity = SeverityMinor
		}
	})
	return a.severity
}

func (a *Analysis) hasStructural() bool {
	for _, v := range a.result.Violations {
		if v.Code.IsStructural() {
			return true
		}
	}
	return false
}

// maxInversion is the largest amount by which a pair stands in the wrong
// order. A pair level within tolerance has an inversion of zero or less.
func (a *Analysis) maxInversion() float64 {
	worst := 0.0
	for _, v := range a.result.Violations {
		if len(v.Coordinates) != 2 {
			continue
		}
		first, second := v.Coordinates[0], v.Coordinates[1]
		var d float64
		switch v.Code {
		case overlap.CodeRowOrder:
			d = first.X - second.X
		case overlap.CodeFrontBack:
			d = first.Y - second.Y
		}
		worst = math.Max(worst, d)
	}
	return worst
}
