// Package court defines the rules coordinate space of a volleyball half-court
// and the mapping between it and a caller's rendering space.
//
// # Rules Space
//
// Rules space is measured in meters from the perspective of the receiving
// team. The net lies on y=0 and the endline on y=[Length]; x runs from the
// left sideline (0) to the right sideline ([Width]). The service zone extends
// behind the endline up to y=[ServiceDepth]. All overlap rules are defined and
// checked in this space.
//
// # Rendering Space
//
// The rendering space is whatever logical box the UI draws the court into
// (historically 600x360). A [Transformer] scales each axis independently
// between the two spaces; there is no rotation or clipping.
//
//	t, _ := court.NewTransformer(court.DefaultFrame)
//	x, y := t.ToRules(300, 180) // (4.5, 4.5)
//
// # Tolerance
//
// Two players can never be aligned perfectly, and coordinates travel through
// floating point scaling. Ordering comparisons therefore use a fixed
// [Tolerance] of 3 cm: values closer than that are treated as equal rather
// than strictly ordered. See [IsLess], [IsGreater] and [IsWithinRange].
package court
