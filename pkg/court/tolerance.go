package court

// Tolerance is the distance (meters) below which two coordinates are
// considered aligned. Ordering comparisons require at least this gap.
const Tolerance = 0.03

// roundoff absorbs float noise so a gap of exactly Tolerance still counts.
const roundoff = 1e-9

// IsLess reports whether a lies before b by at least Tolerance.
func IsLess(a, b float64) bool {
	return b-a >= Tolerance-roundoff
}

// IsGreater reports whether a lies after b by at least Tolerance.
func IsGreater(a, b float64) bool {
	return IsLess(b, a)
}

// IsWithinRange reports whether v lies in [lo-Tolerance, hi+Tolerance].
func IsWithinRange(v, lo, hi float64) bool {
	return v >= lo-Tolerance && v <= hi+Tolerance
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampWithTolerance limits v to [lo-Tolerance, hi+Tolerance].
func ClampWithTolerance(v, lo, hi float64) float64 {
	return Clamp(v, lo-Tolerance, hi+Tolerance)
}
