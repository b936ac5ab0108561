package court

import (
	"math"
	"testing"

	"github.com/matzehuels/rotacheck/pkg/errors"
)

func TestIsValidPosition(t *testing.T) {
	tests := []struct {
		name        string
		x, y        float64
		serviceZone bool
		want        bool
	}{
		{"center", 4.5, 4.5, false, true},
		{"net corner", 0, 0, false, true},
		{"endline corner", 9, 9, false, true},
		{"left of court", -0.01, 4, false, false},
		{"right of court", 9.01, 4, false, false},
		{"over the net", 4, -0.1, false, false},
		{"service zone rejected", 4, 10, false, false},
		{"service zone accepted", 4, 10, true, true},
		{"service zone depth", 4, 11, true, true},
		{"beyond service zone", 4, 11.1, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPosition(tt.x, tt.y, tt.serviceZone); got != tt.want {
				t.Errorf("IsValidPosition(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.serviceZone, got, tt.want)
			}
		})
	}
}

func TestNewTransformerRejectsInvalidFrame(t *testing.T) {
	for _, f := range []Frame{{0, 360}, {600, 0}, {-1, -1}} {
		if _, err := NewTransformer(f); !errors.Is(err, errors.ErrCodeInvalidFrame) {
			t.Errorf("NewTransformer(%v) error = %v, want INVALID_FRAME", f, err)
		}
	}
}

func TestTransformerScaling(t *testing.T) {
	tr := Default

	x, y := tr.ToRules(600, 360)
	if x != Width || y != Length {
		t.Errorf("ToRules(600, 360) = (%v, %v), want (9, 9)", x, y)
	}

	x, y = tr.ToRules(300, 180)
	if math.Abs(x-4.5) > 1e-9 || math.Abs(y-4.5) > 1e-9 {
		t.Errorf("ToRules(300, 180) = (%v, %v), want (4.5, 4.5)", x, y)
	}

	sx, sy := tr.ToScreen(1.5, 2.0)
	if math.Abs(sx-100) > 1e-9 || math.Abs(sy-80) > 1e-9 {
		t.Errorf("ToScreen(1.5, 2) = (%v, %v), want (100, 80)", sx, sy)
	}

	// Service zone maps below the rendering box.
	_, sy = tr.ToScreen(0, ServiceDepth)
	if math.Abs(sy-440) > 1e-9 {
		t.Errorf("ToScreen(0, 11) y = %v, want 440", sy)
	}
}

func TestTransformerRoundTrip(t *testing.T) {
	frames := []Frame{DefaultFrame, {Width: 900, Height: 900}, {Width: 123.4, Height: 77.7}}
	for _, f := range frames {
		tr := MustTransformer(f)
		for sx := 0.0; sx <= f.Width; sx += f.Width / 17 {
			for sy := 0.0; sy <= f.Height; sy += f.Height / 13 {
				gx, gy := tr.ToScreen(tr.ToRules(sx, sy))
				if math.Abs(gx-sx) > 1e-9 || math.Abs(gy-sy) > 1e-9 {
					t.Fatalf("frame %v: round trip (%v, %v) -> (%v, %v)", f, sx, sy, gx, gy)
				}
			}
		}
	}
}

func TestTransformerPropagatesNonFinite(t *testing.T) {
	x, _ := Default.ToRules(math.NaN(), 0)
	if !math.IsNaN(x) {
		t.Errorf("ToRules(NaN) = %v, want NaN", x)
	}
	_, y := Default.ToRules(0, math.Inf(1))
	if !math.IsInf(y, 1) {
		t.Errorf("ToRules(+Inf) = %v, want +Inf", y)
	}
}

func TestPointHelpers(t *testing.T) {
	p := Default.PointToRules(Point{X: 100, Y: 80})
	if math.Abs(p.X-1.5) > 1e-9 || math.Abs(p.Y-2) > 1e-9 {
		t.Errorf("PointToRules = %v", p)
	}
	back := Default.PointToScreen(p)
	if math.Abs(back.X-100) > 1e-9 || math.Abs(back.Y-80) > 1e-9 {
		t.Errorf("PointToScreen = %v", back)
	}
	if got := (Point{X: 1.5, Y: 2}).String(); got != "(1.50, 2.00)" {
		t.Errorf("String() = %q", got)
	}
}
