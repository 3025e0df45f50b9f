// Package param holds the parametric ranges curves and surfaces are
// evaluated over: scalar intervals, UV boxes and UV parameters.
package param

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/soypat/geometry/accuracy"
)

var (
	// ErrInvalidInterval is returned when an interval's end precedes its start.
	ErrInvalidInterval = errors.New("param: interval end is less than start")
	// ErrNotClosed is returned by operations needing finite bounds.
	ErrNotClosed = errors.New("param: interval is not closed")
	// ErrEmptyBox is returned by operations undefined on an empty BoxUV.
	ErrEmptyBox = errors.New("param: box is empty")
)

// Interval is the closed range [Lo, Hi]. Bounds may be infinite.
// An Interval with Lo > Hi is empty.
type Interval r1.Interval

// NewInterval returns [start, end]. A zero length interval is valid.
func NewInterval(start, end float64) (Interval, error) {
	if math.IsNaN(start) || math.IsNaN(end) {
		return Interval{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidInterval, start, end)
	}
	if end < start {
		return Interval{}, fmt.Errorf("%w: [%g, %g]", ErrInvalidInterval, start, end)
	}
	return Interval{Lo: start, Hi: end}, nil
}

// MustInterval is like NewInterval but panics on error.
func MustInterval(start, end float64) Interval {
	i, err := NewInterval(start, end)
	if err != nil {
		panic(err)
	}
	return i
}

// EmptyInterval returns an interval containing no values.
func EmptyInterval() Interval { return Interval(r1.EmptyInterval()) }

// Unbounded returns (-inf, +inf).
func Unbounded() Interval { return Interval{Lo: math.Inf(-1), Hi: math.Inf(1)} }

func (i Interval) r1() r1.Interval { return r1.Interval(i) }

// Start returns the lower bound.
func (i Interval) Start() float64 { return i.Lo }

// End returns the upper bound.
func (i Interval) End() float64 { return i.Hi }

// IsEmpty reports whether i contains no values.
func (i Interval) IsEmpty() bool { return i.r1().IsEmpty() }

// IsOpen reports whether both bounds are infinite.
func (i Interval) IsOpen() bool { return math.IsInf(i.Lo, 0) && math.IsInf(i.Hi, 0) }

// IsClosed reports whether both bounds are finite.
func (i Interval) IsClosed() bool {
	return !math.IsInf(i.Lo, 0) && !math.IsInf(i.Hi, 0) && !i.IsEmpty()
}

// Span returns Hi-Lo. It fails if i is not closed.
func (i Interval) Span() (float64, error) {
	if !i.IsClosed() {
		return 0, fmt.Errorf("%w: %v", ErrNotClosed, i)
	}
	return i.Hi - i.Lo, nil
}

// RelativeValue returns Lo + t*span, the linear interpolation across i.
// It fails if i is not closed.
func (i Interval) RelativeValue(t float64) (float64, error) {
	span, err := i.Span()
	if err != nil {
		return 0, err
	}
	return i.Lo + t*span, nil
}

// Proportion is the inverse of RelativeValue. Zero length intervals map to 0.
func (i Interval) Proportion(v float64) (float64, error) {
	span, err := i.Span()
	if err != nil {
		return 0, err
	}
	if span == 0 {
		return 0, nil
	}
	return (v - i.Lo) / span, nil
}

// Contains reports whether t lies within i within LengthAccuracy.
func (i Interval) Contains(t float64) bool {
	return i.ContainsValue(t, accuracy.LengthAccuracy)
}

// ContainsValue reports whether t lies within i inflated by tolerance.
func (i Interval) ContainsValue(t, tolerance float64) bool {
	if i.IsEmpty() {
		return false
	}
	return i.r1().Expanded(tolerance).Contains(t)
}

// Inflate returns i grown by d on both ends.
func (i Interval) Inflate(d float64) Interval { return Interval(i.r1().Expanded(d)) }

// Equal compares bounds with LengthIsEqual. Empty intervals are equal to each other.
// Infinite bounds compare equal when they share a sign.
func (i Interval) Equal(j Interval) bool {
	if i.IsEmpty() || j.IsEmpty() {
		return i.IsEmpty() && j.IsEmpty()
	}
	return boundEqual(i.Lo, j.Lo) && boundEqual(i.Hi, j.Hi)
}

func boundEqual(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return accuracy.LengthIsEqual(a, b)
}

func (i Interval) String() string {
	if i.IsEmpty() {
		return "Interval(empty)"
	}
	return fmt.Sprintf("Interval[%g, %g]", i.Lo, i.Hi)
}

// Unite returns the smallest interval containing a and b.
// An empty operand yields the other.
func Unite(a, b Interval) Interval {
	return Interval(a.r1().Union(b.r1()))
}

// Intersect returns the overlap of a and b. When the bounds cross by no
// more than tolerance they are swapped, giving the sliver between the two
// nearly touching intervals. ok is false when a and b are disjoint or
// either is empty.
func Intersect(a, b Interval, tolerance float64) (_ Interval, ok bool) {
	if a.IsEmpty() || b.IsEmpty() {
		return EmptyInterval(), false
	}
	lo := math.Max(a.Lo, b.Lo)
	hi := math.Min(a.Hi, b.Hi)
	if lo > hi {
		if lo-hi > tolerance {
			return EmptyInterval(), false
		}
		lo, hi = hi, lo
	}
	return Interval{Lo: lo, Hi: hi}, true
}
