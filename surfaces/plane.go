// Package surfaces implements the parametric surfaces of package geometry:
// planes, cylinders, spheres and tori.
package surfaces

import (
	"fmt"
	"math"

	"github.com/soypat/geometry"
	"github.com/soypat/geometry/accuracy"
	"github.com/soypat/geometry/param"
	"github.com/soypat/geometry/spatial"
	"github.com/soypat/geometry/units"
)

// axes holds the right handed triad surfaces are built around.
type axes struct {
	origin           spatial.Point3D
	dirX, dirY, dirZ spatial.UnitVector3D
}

// newAxes normalizes reference and axis, checks they are perpendicular
// and completes the triad.
func newAxes(origin spatial.Point3D, reference, axis spatial.Vector3D) (axes, error) {
	dx, err := reference.Normalize()
	if err != nil {
		return axes{}, fmt.Errorf("reference: %w", err)
	}
	dz, err := axis.Normalize()
	if err != nil {
		return axes{}, fmt.Errorf("axis: %w", err)
	}
	if !dx.IsPerpendicularTo(dz) {
		return axes{}, fmt.Errorf("%w: reference %v, axis %v", spatial.ErrNotPerpendicular, dx, dz)
	}
	dy, err := dz.Cross(dx).Normalize()
	if err != nil {
		return axes{}, err
	}
	return axes{origin: origin, dirX: dx, dirY: dy, dirZ: dz}, nil
}

// radial returns cos(u)*dirX + sin(u)*dirY and its derivative in u.
func (a axes) radial(u float64) (e, de spatial.Vector3D) {
	sin, cos := math.Sincos(u)
	x, y := a.dirX.Vector(), a.dirY.Vector()
	return x.Scale(cos).Add(y.Scale(sin)), x.Scale(-sin).Add(y.Scale(cos))
}

// local returns the coordinates of p along dirX, dirY and dirZ.
func (a axes) local(p spatial.Point3D) (x, y, z float64) {
	d := p.Sub(a.origin)
	return d.Dot(a.dirX.Vector()), d.Dot(a.dirY.Vector()), d.Dot(a.dirZ.Vector())
}

// angle returns atan2(y, x), or 0 when both are zero within LengthAccuracy.
func angle(x, y float64) float64 {
	if accuracy.LengthIsZero(x) && accuracy.LengthIsZero(y) {
		return 0
	}
	return math.Atan2(y, x)
}

func (a axes) transformed(m spatial.Matrix44) (origin spatial.Point3D, reference, axis spatial.Vector3D) {
	return a.origin.Transformed(m), a.dirX.Vector().Transformed(m), a.dirZ.Vector().Transformed(m)
}

func finite(uv param.ParamUV) bool {
	return !math.IsInf(uv.U, 0) && !math.IsNaN(uv.U) && !math.IsInf(uv.V, 0) && !math.IsNaN(uv.V)
}

func periodic() param.Parameterization {
	return param.Parameterization{Form: param.FormPeriodic, Type: param.TypeCircular, Interval: param.MustInterval(0, 2*math.Pi)}
}

func linear() param.Parameterization {
	return param.Parameterization{Form: param.FormOpen, Type: param.TypeLinear, Interval: param.Unbounded()}
}

// PlaneSurface is an infinite plane parameterized by distance in metres
// along its reference direction (u) and along axis×reference (v).
type PlaneSurface struct {
	axes
}

var _ geometry.Surface = (*PlaneSurface)(nil)

// NewPlaneSurface returns the plane through origin normal to axis.
// reference must be perpendicular to axis.
func NewPlaneSurface(origin spatial.Point3D, reference, axis spatial.Vector3D) (*PlaneSurface, error) {
	a, err := newAxes(origin, reference, axis)
	if err != nil {
		return nil, fmt.Errorf("plane: %w", err)
	}
	return &PlaneSurface{axes: a}, nil
}

func (s *PlaneSurface) Origin() spatial.Point3D { return s.origin }

// Normal returns the plane normal.
func (s *PlaneSurface) Normal() spatial.UnitVector3D { return s.dirZ }

// Plane returns s as a spatial.Plane.
func (s *PlaneSurface) Plane() spatial.Plane {
	pl, err := spatial.NewPlane(s.origin, s.dirX.Vector(), s.dirY.Vector())
	if err != nil {
		panic(err) // axes are orthonormal by construction.
	}
	return pl
}

func (s *PlaneSurface) ParameterizationU() param.Parameterization { return linear() }

func (s *PlaneSurface) ParameterizationV() param.Parameterization { return linear() }

func (s *PlaneSurface) Evaluate(uv param.ParamUV) geometry.SurfaceEvaluation {
	x, y := s.dirX.Vector(), s.dirY.Vector()
	pos := s.origin.Add(x.Scale(uv.U).Add(y.Scale(uv.V)))
	var zero spatial.Vector3D
	return geometry.NewSurfaceEvaluation(uv, pos, s.dirZ, x, y, zero, zero, zero)
}

func (s *PlaneSurface) ProjectPoint(p spatial.Point3D) geometry.SurfaceEvaluation {
	x, y, _ := s.local(p)
	return s.Evaluate(param.ParamUV{U: x, V: y})
}

func (s *PlaneSurface) ContainsParam(uv param.ParamUV) bool { return finite(uv) }

// ContainsPoint reports whether p lies on s within LengthAccuracy.
func (s *PlaneSurface) ContainsPoint(p spatial.Point3D) bool {
	_, _, z := s.local(p)
	return accuracy.LengthIsZero(z)
}

func (s *PlaneSurface) TransformedCopy(m spatial.Matrix44) (geometry.Surface, error) {
	return NewPlaneSurface(s.transformed(m))
}

func (s *PlaneSurface) String() string {
	return fmt.Sprintf("PlaneSurface(origin=%v, normal=%v)", s.origin, s.dirZ)
}

// radiusMeters checks r is positive and returns it in metres.
func radiusMeters(name string, r units.Distance) (float64, error) {
	m := r.Meters()
	if !accuracy.LengthIsPositive(m) {
		return 0, fmt.Errorf("%w: %s radius %v", geometry.ErrInvalidRadius, name, r)
	}
	return m, nil
}
