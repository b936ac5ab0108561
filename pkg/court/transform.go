package court

import (
	"github.com/matzehuels/rotacheck/pkg/errors"
)

// Frame is the size of the caller's rendering box.
type Frame struct {
	Width  float64 `json:"width" toml:"width" mapstructure:"width"`
	Height float64 `json:"height" toml:"height" mapstructure:"height"`
}

// DefaultFrame is the rendering box used by the original court editor.
var DefaultFrame = Frame{Width: 600, Height: 360}

// Transformer converts between rendering space and rules space by scaling
// each axis independently. The zero value is not usable; use NewTransformer.
//
// Transformer is immutable and safe for concurrent use.
type Transformer struct {
	frame  Frame
	scaleX float64 // meters per rendering unit on x
	scaleY float64 // meters per rendering unit on y
}

// NewTransformer returns a transformer for the given rendering frame.
// It returns an INVALID_FRAME error if either dimension is not positive.
func NewTransformer(f Frame) (*Transformer, error) {
	if err := errors.ValidateFrame(f.Width, f.Height); err != nil {
		return nil, err
	}
	return &Transformer{
		frame:  f,
		scaleX: Width / f.Width,
		scaleY: Length / f.Height,
	}, nil
}

// MustTransformer is like NewTransformer but panics on an invalid frame.
// Intended for package-level defaults built from constants.
func MustTransformer(f Frame) *Transformer {
	t, err := NewTransformer(f)
	if err != nil {
		panic(err)
	}
	return t
}

// Default is the transformer for DefaultFrame.
var Default = MustTransformer(DefaultFrame)

// Frame returns the rendering frame the transformer was built for.
func (t *Transformer) Frame() Frame { return t.frame }

// ToRules maps a rendering-space point to rules space.
// Non-finite inputs propagate unchanged through the scaling.
func (t *Transformer) ToRules(sx, sy float64) (x, y float64) {
	return sx * t.scaleX, sy * t.scaleY
}

// ToScreen maps a rules-space point to rendering space.
func (t *Transformer) ToScreen(x, y float64) (sx, sy float64) {
	return x / t.scaleX, y / t.scaleY
}

// PointToRules is ToRules for a Point.
func (t *Transformer) PointToRules(p Point) Point {
	x, y := t.ToRules(p.X, p.Y)
	return Point{X: x, Y: y}
}

// PointToScreen is ToScreen for a Point.
func (t *Transformer) PointToScreen(p Point) Point {
	sx, sy := t.ToScreen(p.X, p.Y)
	return Point{X: sx, Y: sy}
}
