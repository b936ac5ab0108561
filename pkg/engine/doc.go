// Package engine is the cache-backed facade over the rules packages.
//
// An [Engine] answers the same questions as [overlap.Validate] and
// [constraint.CalculateBounds] but memoizes results in an injected
// [cache.Cache]. The cache is transparent: every answer equals the one the
// uncached functions return, and backend failures fall through to direct
// computation.
//
// Validation returns an [Analysis]. Legality and the violation list are
// available immediately; explanations, suggested fixes and severity are
// derived on first request and then kept, so a caller polling legality
// during a drag never pays for text it does not show.
//
// # Example
//
//	e := engine.New(engine.Options{Cache: cache.NewMemoryCache(0)})
//	a := e.Validate(ctx, lineup.BaseRotation(lineup.RightBack))
//	if !a.Legal() {
//	    for _, s := range a.Explanations() {
//	        fmt.Println(s)
//	    }
//	}
package engine
