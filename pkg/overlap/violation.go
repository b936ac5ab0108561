package overlap

import (
	"slices"

	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// Code classifies a violation.
type Code string

const (
	// CodeRowOrder: two adjacent players in the same row are not ordered
	// left to right.
	CodeRowOrder Code = "ROW_ORDER"

	// CodeFrontBack: a front-row player is not closer to the net than the
	// back-row player in the same column.
	CodeFrontBack Code = "FRONT_BACK"

	// CodeMultipleServers: more than one player is flagged as server.
	CodeMultipleServers Code = "MULTIPLE_SERVERS"

	// CodeInvalidLineup: the lineup is structurally malformed (player
	// count, slot assignment or missing server).
	CodeInvalidLineup Code = "INVALID_LINEUP"
)

// IsStructural reports whether the code describes a malformed lineup rather
// than a positional fault.
func (c Code) IsStructural() bool {
	return c == CodeInvalidLineup || c == CodeMultipleServers
}

// Violation is a single rule failure. For ordering violations Slots holds
// the pair in rule order (left then right, or front then back) and
// Coordinates holds their positions in the same order.
type Violation struct {
	Code        Code          `json:"code"`
	Slots       []lineup.Slot `json:"slots"`
	Message     string        `json:"message"`
	Coordinates []court.Point `json:"coordinates,omitempty"`
}

// Involves reports whether slot is one of the violation's slots.
func (v Violation) Involves(slot lineup.Slot) bool {
	return slices.Contains(v.Slots, slot)
}

// Result is the outcome of validating a lineup.
// Legal is true exactly when Violations is empty.
type Result struct {
	Legal      bool        `json:"legal"`
	Violations []Violation `json:"violations"`
}

func newResult(vs []Violation) Result {
	if vs == nil {
		vs = []Violation{}
	}
	return Result{Legal: len(vs) == 0, Violations: vs}
}

// Involving returns the violations that reference slot.
func (r Result) Involving(slot lineup.Slot) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Involves(slot) {
			out = append(out, v)
		}
	}
	return out
}

// Codes returns the code of each violation, in order.
func (r Result) Codes() []Code {
	out := make([]Code, len(r.Violations))
	for i, v := range r.Violations {
		out[i] = v.Code
	}
	return out
}
