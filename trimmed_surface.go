package geometry

import (
	"fmt"
	"sync/atomic"

	"github.com/soypat/geometry/param"
	"github.com/soypat/geometry/spatial"
	"github.com/soypat/geometry/units"
)

type surfaceState struct {
	surface Surface
	box     param.BoxUV
}

// TrimmedSurface is a surface restricted to a closed parameter box.
// A Reversed TrimmedSurface runs u from the end of the box and has its
// normal negated. A TrimmedSurface must not be copied.
type TrimmedSurface struct {
	state       atomic.Pointer[surfaceState]
	orientation Orientation
}

// NewTrimmedSurface trims s to box, whose intervals must both be closed.
func NewTrimmedSurface(s Surface, box param.BoxUV) (*TrimmedSurface, error) {
	if !box.U.IsClosed() || !box.V.IsClosed() {
		return nil, fmt.Errorf("%w: %v", ErrOpenInterval, box)
	}
	ts := &TrimmedSurface{}
	ts.state.Store(&surfaceState{surface: s, box: box})
	return ts, nil
}

// Reversed returns a new TrimmedSurface over the same geometry with the
// opposite orientation.
func (ts *TrimmedSurface) Reversed() *TrimmedSurface {
	rs := &TrimmedSurface{orientation: ts.orientation.Flip()}
	rs.state.Store(ts.state.Load())
	return rs
}

func (ts *TrimmedSurface) Orientation() Orientation { return ts.orientation }

// Geometry returns the underlying surface.
func (ts *TrimmedSurface) Geometry() Surface { return ts.state.Load().surface }

// Box returns the trimming box in the underlying surface's parameters.
func (ts *TrimmedSurface) Box() param.BoxUV { return ts.state.Load().box }

// Parameters maps proportions u, v in [0, 1] to surface parameters.
func (ts *TrimmedSurface) Parameters(u, v float64) param.ParamUV {
	return ts.state.Load().parameters(ts.orientation, u, v)
}

func (s *surfaceState) parameters(o Orientation, u, v float64) param.ParamUV {
	b := s.box
	uv := param.ParamUV{
		U: b.U.Lo + u*(b.U.Hi-b.U.Lo),
		V: b.V.Lo + v*(b.V.Hi-b.V.Lo),
	}
	if o == Reversed {
		uv.U = b.U.Hi - u*(b.U.Hi-b.U.Lo)
	}
	return uv
}

// ProportionalParameters is the inverse of Parameters. Zero span
// directions map to proportion 0.
func (ts *TrimmedSurface) ProportionalParameters(uv param.ParamUV) (u, v float64) {
	b := ts.state.Load().box
	if su := b.U.Hi - b.U.Lo; su != 0 {
		u = (uv.U - b.U.Lo) / su
		if ts.orientation == Reversed {
			u = 1 - u
		}
	}
	if sv := b.V.Hi - b.V.Lo; sv != 0 {
		v = (uv.V - b.V.Lo) / sv
	}
	return u, v
}

// EvaluateProportion evaluates the surface at proportions u, v of the box.
// A Reversed surface reports the negated normal.
func (ts *TrimmedSurface) EvaluateProportion(u, v float64) SurfaceEvaluation {
	s := ts.state.Load()
	ev := s.surface.Evaluate(s.parameters(ts.orientation, u, v))
	if ts.orientation == Reversed {
		ev.Normal = ev.Normal.Neg()
	}
	return ev
}

// Normal returns the oriented surface normal at proportions u, v.
func (ts *TrimmedSurface) Normal(u, v float64) spatial.UnitVector3D {
	return ts.EvaluateProportion(u, v).Normal
}

// ProjectPoint returns the evaluation of the underlying surface closest to p,
// with the normal oriented like ts.
func (ts *TrimmedSurface) ProjectPoint(p spatial.Point3D) SurfaceEvaluation {
	ev := ts.state.Load().surface.ProjectPoint(p)
	if ts.orientation == Reversed {
		ev.Normal = ev.Normal.Neg()
	}
	return ev
}

// Area returns the area of the trimmed patch in square metres.
func (ts *TrimmedSurface) Area() float64 {
	s := ts.state.Load()
	return Area(s.surface, s.box)
}

// Translate moves ts by distance along direction.
func (ts *TrimmedSurface) Translate(direction spatial.UnitVector3D, distance units.Distance) error {
	return ts.transform(spatial.TranslationAlong(direction, distance))
}

// Rotate rotates ts by angle about the axis through origin.
func (ts *TrimmedSurface) Rotate(origin spatial.Point3D, axis spatial.UnitVector3D, angle units.Angle) error {
	return ts.transform(spatial.RotationAbout(origin, axis, angle))
}

func (ts *TrimmedSurface) transform(m spatial.Matrix44) error {
	for {
		old := ts.state.Load()
		s, err := old.surface.TransformedCopy(m)
		if err != nil {
			return err
		}
		if ts.state.CompareAndSwap(old, &surfaceState{surface: s, box: old.box}) {
			return nil
		}
	}
}

func (ts *TrimmedSurface) String() string {
	return fmt.Sprintf("TrimmedSurface(%v, %v)", ts.Box(), ts.orientation)
}
