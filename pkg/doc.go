// Package pkg provides the core libraries for rotacheck, a volleyball
// rotation and overlap rules engine.
//
// # Overview
//
// At the moment of serve, each of the six players on the receiving and the
// serving team must respect the order of the rotation: front-row players
// ahead of their back-row counterparts, and neighbours in a row on the
// correct side of one another. rotacheck validates a snapshot of positions
// against those rules and, for a player being dragged in an editor, computes
// the rectangle it may occupy without creating a fault.
//
// # Architecture
//
// The typical data flow:
//
//	Formation document (JSON/TOML, rules or screen space)
//	         ↓
//	    [formation] package (decode, convert to metres)
//	         ↓
//	    [lineup] package (slots, neighbour topology, players)
//	         ↓
//	    [engine] package (memoized facade)
//	       ↙        ↘
//	[overlap]      [constraint]
//	validation     drag bounds / snap
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/rotacheck/pkg/engine"
//	    "github.com/matzehuels/rotacheck/pkg/lineup"
//	)
//
//	e := engine.New(engine.Options{})
//	a := e.Validate(context.Background(), lineup.BaseRotation(lineup.RightBack))
//	if !a.Legal() {
//	    for _, s := range a.Explanations() {
//	        fmt.Println(s)
//	    }
//	}
//
// # Main Packages
//
// ## Rules
//
// [court] - Court dimensions, the 3 cm tolerance and the linear transform
// between rendering units and metres.
//
// [lineup] - Rotation slots, their left/right neighbours and front/back
// counterparts, and the player and lineup types.
//
// [overlap] - The overlap validator. Rule failures are returned as
// violations, never as errors. [overlap.Explain] turns a violation into a
// sentence.
//
// [constraint] - Active neighbour constraints for one slot, the resulting
// bounds rectangle, and snapping a target point into it.
//
// ## Orchestration
//
// [engine] - Cache-backed facade over overlap and constraint, with lazily
// computed explanations, suggested fixes and severity.
//
// [formation] - Slot-to-player formations and their serialized documents.
//
// ## Infrastructure
//
// [cache] - Byte-oriented memo backends: null, bounded in-memory LRU and
// Redis, plus the key derivation for lineups and bounds.
//
// [errors] - Structured error codes for contract violations.
//
// [observability] - Hook interfaces for engine, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./...                                    # All tests
//	go test ./pkg/overlap/...                        # Specific package
//	go test -run Example ./pkg/...                   # Examples only
//	ROTACHECK_REDIS_ADDR=localhost:6379 go test ./pkg/cache  # Include Redis
//
// [court]: https://pkg.go.dev/github.com/matzehuels/rotacheck/pkg/court
// [lineup]: https://pkg.go.dev/github.com/matzehuels/rotacheck/pkg/lineup
// [overlap]: https://pkg.go.dev/github.com/matzehuels/rotacheck/pkg/overlap
// [overlap.Explain]: https://pkg.go.dev/github.com/matzehuels/rotacheck/pkg/overlap#Explain
// [constraint]: https://pkg.go.dev/github.com/matzehuels/rotacheck/pkg/constraint
// [engine]: https://pkg.go.dev/github.com/matzehuels/rotacheck/pkg/engine
// [formation]: https://pkg.go.dev/github.com/matzehuels/rotacheck/pkg/formation
// [cache]: https://pkg.go.dev/github.com/matzehuels/rotacheck/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/rotacheck/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/rotacheck/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/rotacheck/pkg/buildinfo
package pkg
