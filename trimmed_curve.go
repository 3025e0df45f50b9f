package geometry

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/soypat/geometry/accuracy"
	"github.com/soypat/geometry/param"
	"github.com/soypat/geometry/spatial"
	"github.com/soypat/geometry/units"
)

// ErrOpenInterval is returned when trimming to an interval without finite bounds.
var ErrOpenInterval = errors.New("geometry: trimming interval must be closed")

// curveState holds the interdependent fields of a TrimmedCurve.
// A curveState is never modified once published.
type curveState struct {
	curve      Curve
	interval   param.Interval
	start, end spatial.Point3D
	length     float64 // metres
}

func newCurveState(c Curve, iv param.Interval) *curveState {
	return &curveState{
		curve:    c,
		interval: iv,
		start:    c.Evaluate(iv.Lo).Position,
		end:      c.Evaluate(iv.Hi).Position,
		length:   ArcLength(c, iv),
	}
}

// TrimmedCurve is a curve restricted to a closed parameter interval.
// A Reversed TrimmedCurve runs from the interval's end to its start.
// Methods are safe for concurrent use. A TrimmedCurve must not be copied.
type TrimmedCurve struct {
	state       atomic.Pointer[curveState]
	orientation Orientation
}

// NewTrimmedCurve trims c to iv, which must be closed.
func NewTrimmedCurve(c Curve, iv param.Interval) (*TrimmedCurve, error) {
	if !iv.IsClosed() {
		return nil, fmt.Errorf("%w: %v", ErrOpenInterval, iv)
	}
	tc := &TrimmedCurve{}
	tc.state.Store(newCurveState(c, iv))
	return tc, nil
}

// Reversed returns a new TrimmedCurve over the same geometry with the
// opposite orientation. Later moves of either curve do not affect the other.
func (tc *TrimmedCurve) Reversed() *TrimmedCurve {
	rc := &TrimmedCurve{orientation: tc.orientation.Flip()}
	rc.state.Store(tc.state.Load())
	return rc
}

// Orientation returns whether tc runs along or against its geometry.
func (tc *TrimmedCurve) Orientation() Orientation { return tc.orientation }

// Geometry returns the underlying curve.
func (tc *TrimmedCurve) Geometry() Curve { return tc.state.Load().curve }

// Interval returns the trimming interval in the underlying curve's parameter.
func (tc *TrimmedCurve) Interval() param.Interval { return tc.state.Load().interval }

// Start returns the first point of tc as seen along its orientation.
func (tc *TrimmedCurve) Start() spatial.Point3D {
	s := tc.state.Load()
	if tc.orientation == Reversed {
		return s.end
	}
	return s.start
}

// End returns the last point of tc as seen along its orientation.
func (tc *TrimmedCurve) End() spatial.Point3D {
	s := tc.state.Load()
	if tc.orientation == Reversed {
		return s.start
	}
	return s.end
}

// Length returns the arc length of tc in the unit of its start point.
func (tc *TrimmedCurve) Length() units.Distance {
	s := tc.state.Load()
	return units.DistanceFromBase(s.length, s.start.Unit())
}

// Parameter maps the proportion u in [0, 1] to the underlying curve's parameter.
// Proportion 0 is always Start and proportion 1 is always End.
func (tc *TrimmedCurve) Parameter(u float64) float64 {
	return tc.state.Load().parameter(tc.orientation, u)
}

func (s *curveState) parameter(o Orientation, u float64) float64 {
	span := s.interval.Hi - s.interval.Lo
	if o == Reversed {
		return s.interval.Hi - u*span
	}
	return s.interval.Lo + u*span
}

// EvaluateProportion evaluates the underlying curve at proportion u of tc.
func (tc *TrimmedCurve) EvaluateProportion(u float64) CurveEvaluation {
	s := tc.state.Load()
	return s.curve.Evaluate(s.parameter(tc.orientation, u))
}

// ProjectPoint returns the evaluation of the underlying curve closest to p.
func (tc *TrimmedCurve) ProjectPoint(p spatial.Point3D) CurveEvaluation {
	return tc.state.Load().curve.ProjectPoint(p)
}

// ContainsPoint reports whether p lies on the trimmed portion of tc.
func (tc *TrimmedCurve) ContainsPoint(p spatial.Point3D) bool {
	s := tc.state.Load()
	if !s.curve.ContainsPoint(p) {
		return false
	}
	// Periodic parameters wrap into the period beginning at the interval start.
	t := s.curve.ProjectPoint(p).Parameter
	t = s.curve.Parameterization().Wrap(t, s.interval.Lo-accuracy.LengthAccuracy)
	return s.interval.Contains(t)
}

// Translate moves tc by distance along direction.
func (tc *TrimmedCurve) Translate(direction spatial.UnitVector3D, distance units.Distance) error {
	return tc.transform(spatial.TranslationAlong(direction, distance))
}

// Rotate rotates tc by angle about the axis through origin.
func (tc *TrimmedCurve) Rotate(origin spatial.Point3D, axis spatial.UnitVector3D, angle units.Angle) error {
	return tc.transform(spatial.RotationAbout(origin, axis, angle))
}

// transform builds a complete replacement state and publishes it in a single
// swap so readers never observe a partially moved curve.
func (tc *TrimmedCurve) transform(m spatial.Matrix44) error {
	for {
		old := tc.state.Load()
		c, err := old.curve.TransformedCopy(m)
		if err != nil {
			return err
		}
		next := &curveState{
			curve:    c,
			interval: old.interval,
			start:    old.start.Transformed(m),
			end:      old.end.Transformed(m),
			length:   old.length,
		}
		if tc.state.CompareAndSwap(old, next) {
			return nil
		}
	}
}

func (tc *TrimmedCurve) String() string {
	s := tc.state.Load()
	start, end := s.start, s.end
	if tc.orientation == Reversed {
		start, end = end, start
	}
	return fmt.Sprintf("TrimmedCurve(%v, start=%v, end=%v, %v)", s.interval, start, end, tc.orientation)
}
