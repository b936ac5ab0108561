package server

import (
	"github.com/matzehuels/rotacheck/pkg/buildinfo"
	"github.com/matzehuels/rotacheck/pkg/cache"
	"github.com/matzehuels/rotacheck/pkg/constraint"
	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/engine"
	"github.com/matzehuels/rotacheck/pkg/formation"
	"github.com/matzehuels/rotacheck/pkg/lineup"
	"github.com/matzehuels/rotacheck/pkg/overlap"
)

// LineupInput is embedded by requests that operate on a lineup. Exactly one
// of Lineup (rules space) or Formation must be set.
type LineupInput struct {
	Lineup    lineup.Lineup       `json:"lineup,omitempty"`
	Formation *formation.Document `json:"formation,omitempty"`
}

// ValidateRequest is the body of POST /v1/validate.
type ValidateRequest struct {
	LineupInput

	// Explain adds explanations, fixes and severity to the response.
	Explain bool `json:"explain,omitempty"`
}

// ValidateResponse is the result of POST /v1/validate.
type ValidateResponse struct {
	Legal        bool                `json:"legal"`
	Violations   []overlap.Violation `json:"violations"`
	Explanations []string            `json:"explanations,omitempty"`
	Fixes        []engine.Fix        `json:"fixes,omitempty"`
	Severity     engine.Severity     `json:"severity,omitempty"`
	Cached       bool                `json:"cached"`
}

// BoundsRequest is the body of POST /v1/bounds.
type BoundsRequest struct {
	LineupInput
	Slot int `json:"slot"`
}

// BoundsResponse is the result of POST /v1/bounds.
type BoundsResponse struct {
	constraint.Bounds
	Cached bool `json:"cached"`
}

// SnapRequest is the body of POST /v1/snap.
type SnapRequest struct {
	LineupInput
	Slot   int         `json:"slot"`
	Target court.Point `json:"target"`
}

// SnapResponse is the result of POST /v1/snap.
type SnapResponse struct {
	Position court.Point `json:"position"`
	Moved    bool        `json:"moved"`
}

// ConvertRequest is the body of POST /v1/convert.
type ConvertRequest struct {
	Document formation.Document `json:"document"`
	To       formation.Space    `json:"to"`

	// Frame is the target frame for screen output; defaults to the
	// document's frame, then the server's.
	Frame *court.Frame `json:"frame,omitempty"`
}

// HealthResponse is the result of GET /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`

	// Cache is set when the cache backend keeps counters (memory).
	Cache *cache.Stats `json:"cache,omitempty"`
}

// ClearResponse is the result of DELETE /v1/cache.
type ClearResponse struct {
	Cleared int `json:"cleared"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is the error code.
	Code string `json:"code"`

	// RequestID identifies the request in server logs.
	RequestID string `json:"requestId,omitempty"`
}
