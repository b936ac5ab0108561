package court

import "fmt"

// Court dimensions in meters.
const (
	// Width is the distance between the sidelines.
	Width = 9.0

	// Length is the distance from the net to the endline.
	Length = 9.0

	// NetY is the y coordinate of the net.
	NetY = 0.0

	// EndlineY is the y coordinate of the endline.
	EndlineY = Length

	// ServiceDepth is the deepest y a server may stand at, including the
	// service zone behind the endline.
	ServiceDepth = 11.0
)

// Point is a position in rules space (meters).
type Point struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// String formats the point with centimeter precision.
func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// MaxY returns the deepest legal y, with or without the service zone.
func MaxY(allowServiceZone bool) float64 {
	if allowServiceZone {
		return ServiceDepth
	}
	return EndlineY
}

// IsValidPosition reports whether (x, y) lies on the court. When
// allowServiceZone is true the area behind the endline up to ServiceDepth
// is accepted as well. The check is exact; it does not apply Tolerance.
func IsValidPosition(x, y float64, allowServiceZone bool) bool {
	return x >= 0 && x <= Width && y >= NetY && y <= MaxY(allowServiceZone)
}
