package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/rotacheck/pkg/buildinfo"
	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/errors"
	"github.com/matzehuels/rotacheck/pkg/formation"
	"github.com/matzehuels/rotacheck/pkg/lineup"
)

// handleValidate handles POST /v1/validate.
//
// Response:
//
//	200 OK: ValidateResponse (rule failures are data, never errors)
//	400 Bad Request: malformed body or formation document
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !s.decode(w, r, &req) {
		return
	}
	l, err := s.resolve(req.LineupInput)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	a := s.engine.Validate(r.Context(), l)
	resp := ValidateResponse{
		Legal:      a.Legal(),
		Violations: a.Violations(),
		Cached:     a.Cached(),
	}
	if req.Explain {
		resp.Explanations = a.Explanations()
		resp.Fixes = a.Fixes()
		resp.Severity = a.Severity()
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleBounds handles POST /v1/bounds.
//
// Response:
//
//	200 OK: BoundsResponse
//	400 Bad Request: invalid slot, or no player in the slot
func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	var req BoundsRequest
	if !s.decode(w, r, &req) {
		return
	}
	l, err := s.resolve(req.LineupInput)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	slot, err := lineup.ParseSlot(req.Slot)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p := l.Table().At(slot)
	if p == nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidPlayer, "no player in slot %s", slot))
		return
	}

	b, hit, err := s.engine.BoundsWithCacheInfo(r.Context(), slot, l, p.IsServer)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, BoundsResponse{Bounds: b, Cached: hit})
}

// handleSnap handles POST /v1/snap.
//
// Response:
//
//	200 OK: SnapResponse
//	400 Bad Request: invalid slot, or no player in the slot
func (s *Server) handleSnap(w http.ResponseWriter, r *http.Request) {
	var req SnapRequest
	if !s.decode(w, r, &req) {
		return
	}
	l, err := s.resolve(req.LineupInput)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	slot, err := lineup.ParseSlot(req.Slot)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	pos, err := s.engine.SnapFor(r.Context(), l, slot, req.Target)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, SnapResponse{Position: pos, Moved: pos != req.Target})
}

// handleConvert handles POST /v1/convert.
//
// Response:
//
//	200 OK: formation.Document in the requested space
//	400 Bad Request: unknown space or invalid frame
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if !s.decode(w, r, &req) {
		return
	}
	l, err := req.Document.Lineup(s.frame)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var t *court.Transformer
	switch req.To {
	case formation.SpaceRules:
	case formation.SpaceScreen:
		f := s.frame
		if req.Document.Frame != nil {
			f = *req.Document.Frame
		}
		if req.Frame != nil {
			f = *req.Frame
		}
		if t, err = court.NewTransformer(f); err != nil {
			s.fail(w, r, err)
			return
		}
	default:
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "unknown target space %q (must be rules or screen)", req.To))
		return
	}
	writeJSON(w, http.StatusOK, formation.NewDocument(l, req.To, t))
}

// handleClearCache handles DELETE /v1/cache.
//
// Response:
//
//	200 OK: ClearResponse
//	500 Internal Server Error: the cache backend failed
func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	n, err := s.engine.ClearCache(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.logger.Info("cache cleared", "entries", n, "request_id", requestIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, ClearResponse{Cleared: n})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Build: buildinfo.Get()}
	if st, ok := s.engine.CacheStats(); ok {
		resp.Cache = &st
	}
	writeJSON(w, http.StatusOK, resp)
}

// resolve turns the request's lineup or formation into a rules-space lineup.
func (s *Server) resolve(in LineupInput) (lineup.Lineup, error) {
	switch {
	case in.Formation != nil && in.Lineup != nil:
		return nil, errors.New(errors.ErrCodeInvalidInput, "set either lineup or formation, not both")
	case in.Formation != nil:
		return in.Formation.Lineup(s.frame)
	case in.Lineup != nil:
		return in.Lineup, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "request has neither lineup nor formation")
}

// decode reads a JSON body into v, writing a 400 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.fail(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return false
	}
	return true
}

// fail maps err to a status code and writes it. Invalid input is a 400;
// anything else is logged and reported as a 500.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	if errors.IsInvalidInput(err) {
		status = http.StatusBadRequest
	} else {
		s.logger.Error("request failed", "error", err, "request_id", requestIDFrom(r.Context()))
		if code == "" {
			code = errors.ErrCodeInternal
		}
	}
	writeError(w, r, status, string(code), errors.UserMessage(err))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:     msg,
		Code:      code,
		RequestID: requestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
