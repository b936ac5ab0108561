package engine_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/rotacheck/pkg/cache"
	"github.com/matzehuels/rotacheck/pkg/court"
	"github.com/matzehuels/rotacheck/pkg/engine"
	"github.com/matzehuels/rotacheck/pkg/lineup"
)

func ExampleEngine_Validate() {
	ctx := context.Background()
	e := engine.New(engine.Options{Cache: cache.NewMemoryCache(0)})

	l := lineup.BaseRotation(lineup.RightBack)
	l = l.WithPosition(lineup.MiddleFront, court.Point{X: 1.5, Y: 2})
	l = l.WithPosition(lineup.LeftFront, court.Point{X: 4.5, Y: 2})

	a := e.Validate(ctx, l)
	fmt.Println("legal:", a.Legal(), "severity:", a.Severity())
	for _, s := range a.Explanations() {
		fmt.Println(s)
	}

	fmt.Println("cached:", e.Validate(ctx, l).Cached())
	// Output:
	// legal: false severity: major
	// Left front (slot 4) is at x=4.50 m but must stand left of middle front (slot 3) at x=1.50 m; the pair is reversed by 3.00 m.
	// cached: true
}
