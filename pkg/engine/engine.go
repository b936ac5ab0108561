package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rotacheck/pkg/cache"
	"github.com/matzehuels/rotacheck/pkg/constraint"
	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/errors"
	"github.com/matzehuels/rotacheck/pkg/lineup"
	"github.com/matzehuels/rotacheck/pkg/observability"
	"github.com/matzehuels/rotacheck/pkg/overlap"
)

// Cache key types reported to observability hooks.
const (
	keyTypeValidate = "validate"
	keyTypeBounds   = "bounds"
)

// Options configures New. Zero values select defaults.
type Options struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// ValidationTTL and BoundsTTL default to cache.TTLValidation and
	// cache.TTLBounds.
	ValidationTTL time.Duration
	BoundsTTL     time.Duration
}

// Engine memoizes validation and bounds results.
//
// The Engine holds no domain state besides the cache, so one instance can
// be shared by any number of goroutines as long as the cache is safe for
// concurrent use (every cache in package cache is).
type Engine struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	validationTTL time.Duration
	boundsTTL     time.Duration
}

// New creates an engine.
// If Cache is nil, a NullCache is used (memoization disabled).
// If Keyer is nil, a DefaultKeyer is used.
func New(opts Options) *Engine {
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.ValidationTTL <= 0 {
		opts.ValidationTTL = cache.TTLValidation
	}
	if opts.BoundsTTL <= 0 {
		opts.BoundsTTL = cache.TTLBounds
	}
	return &Engine{
		Cache:         opts.Cache,
		Keyer:         opts.Keyer,
		Logger:        opts.Logger,
		validationTTL: opts.ValidationTTL,
		boundsTTL:     opts.BoundsTTL,
	}
}

// Validate checks the lineup and returns its analysis. Rule failures are
// data in the analysis; Validate itself cannot fail.
func (e *Engine) Validate(ctx context.Context, l lineup.Lineup) *Analysis {
	start := time.Now()
	key := e.Keyer.LineupKey(l)

	var res overlap.Result
	hit := e.load(ctx, keyTypeValidate, key, &res)
	if !hit {
		res = overlap.Validate(l)
		e.store(ctx, keyTypeValidate, key, res, e.validationTTL)
	}

	observability.Engine().OnValidate(ctx, res.Legal, len(res.Violations), hit, time.Since(start))
	return newAnalysis(l.Clone(), res, hit)
}

// Bounds returns the rectangle slot may occupy given the other players.
// others may include the moving player; its position is ignored.
func (e *Engine) Bounds(ctx context.Context, slot lineup.Slot, others lineup.Lineup, isServer bool) (constraint.Bounds, error) {
	b, _, err := e.BoundsWithCacheInfo(ctx, slot, others, isServer)
	return b, err
}

// BoundsWithCacheInfo is Bounds that also reports whether the result came
// from the cache.
func (e *Engine) BoundsWithCacheInfo(ctx context.Context, slot lineup.Slot, others lineup.Lineup, isServer bool) (constraint.Bounds, bool, error) {
	if err := errors.ValidateSlot(int(slot)); err != nil {
		return constraint.Bounds{}, false, err
	}
	start := time.Now()
	key := e.Keyer.BoundsKey(slot, others, isServer)

	var b constraint.Bounds
	hit := e.load(ctx, keyTypeBounds, key, &b)
	if !hit {
		var err error
		b, err = constraint.CalculateBounds(slot, others, isServer)
		if err != nil {
			return constraint.Bounds{}, false, err
		}
		e.store(ctx, keyTypeBounds, key, b, e.boundsTTL)
	}

	observability.Engine().OnBounds(ctx, int(slot), b.Constrained, hit, time.Since(start))
	return b, hit, nil
}

// BoundsFor returns the bounds of the player occupying slot in l, using the
// player's own server flag. It fails with INVALID_PLAYER when no player
// occupies the slot.
func (e *Engine) BoundsFor(ctx context.Context, l lineup.Lineup, slot lineup.Slot) (constraint.Bounds, error) {
	p, err := occupant(l, slot)
	if err != nil {
		return constraint.Bounds{}, err
	}
	return e.Bounds(ctx, slot, l, p.IsServer)
}

// IsPositionValid reports whether slot may stand at p. It checks the active
// constraints directly and is never cached; the check is cheaper than a
// cache lookup.
func (e *Engine) IsPositionValid(ctx context.Context, slot lineup.Slot, p court.Point, others lineup.Lineup, isServer bool) (bool, error) {
	return constraint.IsPositionValid(slot, p, others, isServer)
}

// Snap returns target if slot may stand there, otherwise the nearest point
// inside the slot's (cached) bounds on each axis.
func (e *Engine) Snap(ctx context.Context, slot lineup.Slot, target court.Point, others lineup.Lineup, isServer bool) (court.Point, error) {
	ok, err := constraint.IsPositionValid(slot, target, others, isServer)
	if err != nil {
		return court.Point{}, err
	}
	if ok {
		return target, nil
	}
	b, err := e.Bounds(ctx, slot, others, isServer)
	if err != nil {
		return court.Point{}, err
	}
	return b.Clamp(target), nil
}

// SnapFor snaps the player occupying slot in l toward target, using the
// player's own server flag.
func (e *Engine) SnapFor(ctx context.Context, l lineup.Lineup, slot lineup.Slot, target court.Point) (court.Point, error) {
	p, err := occupant(l, slot)
	if err != nil {
		return court.Point{}, err
	}
	return e.Snap(ctx, slot, target, l, p.IsServer)
}

// ClearCache drops every memoized result under the keyer's scope. Caches
// that cannot clear in bulk report zero entries removed.
func (e *Engine) ClearCache(ctx context.Context) (int, error) {
	c, ok := e.Cache.(cache.Clearer)
	if !ok {
		return 0, nil
	}
	n, err := c.Clear(ctx, cache.KeyPrefix(e.Keyer))
	if err != nil {
		return n, err
	}
	e.Logger.Debug("cache cleared", "entries", n)
	return n, nil
}

// CacheStats returns the cache counters when the backend keeps them.
func (e *Engine) CacheStats() (cache.Stats, bool) {
	if r, ok := e.Cache.(cache.StatsReporter); ok {
		return r.Stats(), true
	}
	return cache.Stats{}, false
}

// load decodes a cached value into v. Backend and decode failures are
// logged and reported as misses.
func (e *Engine) load(ctx context.Context, keyType, key string, v any) bool {
	data, hit, err := e.Cache.Get(ctx, key)
	if err != nil {
		e.Logger.Warn("cache read failed", "type", keyType, "error", err)
		observability.Cache().OnCacheError(ctx, keyType, err)
		return false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		e.Logger.Debug("discarding undecodable cache entry", "type", keyType, "error", err)
		if err := e.Cache.Delete(ctx, key); err != nil {
			e.Logger.Warn("cache delete failed", "type", keyType, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	e.Logger.Debug("cache hit", "type", keyType)
	observability.Cache().OnCacheHit(ctx, keyType)
	return true
}

// store encodes and caches v. Failures only cost a future recomputation.
func (e *Engine) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		// NaN coordinates cannot be encoded; such results are not cached.
		e.Logger.Debug("result not cacheable", "type", keyType, "error", err)
		return
	}
	if err := e.Cache.Set(ctx, key, data, ttl); err != nil {
		e.Logger.Warn("cache write failed", "type", keyType, "error", err)
		observability.Cache().OnCacheError(ctx, keyType, err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

func occupant(l lineup.Lineup, slot lineup.Slot) (lineup.Player, error) {
	if err := errors.ValidateSlot(int(slot)); err != nil {
		return lineup.Player{}, err
	}
	p := l.Table().At(slot)
	if p == nil {
		return lineup.Player{}, errors.New(errors.ErrCodeInvalidPlayer, "no player in slot %s", slot)
	}
	return *p, nil
}
