// Package accuracy provides tolerance based comparisons for lengths and angles
// so geometric equality checks are robust to floating point noise.
package accuracy

import "math"

const (
	// LengthAccuracy is the tolerance below which two lengths, in metres, are equal.
	LengthAccuracy = 1e-8
	// AngleAccuracy is the tolerance below which two angles, in radians, are equal.
	AngleAccuracy = 1e-6
)

// IsWithinTolerance reports whether a and b are equal within an absolute
// tolerance or a relative tolerance scaled by their mean magnitude.
// Infinite operands are never within tolerance, not even of themselves;
// unbounded interval comparisons rely on this.
func IsWithinTolerance(a, b, relTol, absTol float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	diff := math.Abs(a - b)
	return diff < absTol || diff <= 0.5*relTol*math.Abs(a+b)
}

// LengthIsEqual compares two lengths with LengthAccuracy.
func LengthIsEqual(a, b float64) bool {
	return IsWithinTolerance(a, b, LengthAccuracy, LengthAccuracy)
}

// LengthIsZero reports whether |a| < LengthAccuracy.
func LengthIsZero(a float64) bool { return math.Abs(a) < LengthAccuracy }

// LengthIsNegative reports whether a is negative beyond LengthAccuracy.
func LengthIsNegative(a float64) bool { return a <= -LengthAccuracy }

// LengthIsPositive reports whether a is positive beyond LengthAccuracy.
func LengthIsPositive(a float64) bool { return a >= LengthAccuracy }

// LengthIsGreaterThanOrEqual is a >= b with equality decided by LengthIsEqual.
func LengthIsGreaterThanOrEqual(a, b float64) bool {
	return a > b || LengthIsEqual(a, b)
}

// LengthIsLessThanOrEqual is a <= b with equality decided by LengthIsEqual.
func LengthIsLessThanOrEqual(a, b float64) bool {
	return a < b || LengthIsEqual(a, b)
}

// AngleIsEqual compares two angles with AngleAccuracy.
func AngleIsEqual(a, b float64) bool {
	return IsWithinTolerance(a, b, AngleAccuracy, AngleAccuracy)
}

// AngleIsZero reports whether |a| < AngleAccuracy.
func AngleIsZero(a float64) bool { return math.Abs(a) < AngleAccuracy }

// AngleIsNegative reports whether a is negative beyond AngleAccuracy.
func AngleIsNegative(a float64) bool { return a <= -AngleAccuracy }

// AngleIsPositive reports whether a is positive beyond AngleAccuracy.
func AngleIsPositive(a float64) bool { return a >= AngleAccuracy }
