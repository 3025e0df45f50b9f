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

// Torus is a ring torus. u is the angle about the axis from the reference
// direction and v the angle about the tube, zero on the outer equator.
type Torus struct {
	axes
	major, minor units.Distance
}

var _ geometry.Surface = (*Torus)(nil)

// NewTorus returns the torus centered at origin. The major radius must
// exceed the minor radius.
func NewTorus(origin spatial.Point3D, major, minor units.Distance, reference, axis spatial.Vector3D) (*Torus, error) {
	r, err := radiusMeters("torus minor", minor)
	if err != nil {
		return nil, err
	}
	if R := major.Meters(); R <= r || accuracy.LengthIsEqual(R, r) {
		return nil, fmt.Errorf("%w: torus major radius %v must exceed minor radius %v", geometry.ErrInvalidRadius, major, minor)
	}
	a, err := newAxes(origin, reference, axis)
	if err != nil {
		return nil, fmt.Errorf("torus: %w", err)
	}
	return &Torus{axes: a, major: major, minor: minor}, nil
}

func (s *Torus) Origin() spatial.Point3D { return s.origin }

func (s *Torus) MajorRadius() units.Distance { return s.major }

func (s *Torus) MinorRadius() units.Distance { return s.minor }

func (s *Torus) Axis() spatial.UnitVector3D { return s.dirZ }

// Volume returns 2π²Rr².
func (s *Torus) Volume() units.Quantity {
	R, r := s.major.Meters(), s.minor.Meters()
	return units.Q(2*math.Pi*math.Pi*R*r*r, units.CubicMeter)
}

// SurfaceArea returns 4π²Rr.
func (s *Torus) SurfaceArea() units.Quantity {
	R, r := s.major.Meters(), s.minor.Meters()
	return units.Q(4*math.Pi*math.Pi*R*r, units.SquareMeter)
}

func (s *Torus) ParameterizationU() param.Parameterization { return periodic() }

func (s *Torus) ParameterizationV() param.Parameterization { return periodic() }

func (s *Torus) Evaluate(uv param.ParamUV) geometry.SurfaceEvaluation {
	R, r := s.major.Meters(), s.minor.Meters()
	e, de := s.radial(uv.U)
	z := s.dirZ.Vector()
	sinv, cosv := math.Sincos(uv.V)
	rho := R + r*cosv
	out := e.Scale(cosv).Add(z.Scale(sinv))
	pos := s.origin.Add(e.Scale(R).Add(out.Scale(r)))
	normal, _ := out.Normalize()
	du := de.Scale(rho)
	dv := e.Scale(-r * sinv).Add(z.Scale(r * cosv))
	duu := e.Scale(-rho)
	duv := de.Scale(-r * sinv)
	dvv := out.Scale(-r)
	return geometry.NewSurfaceEvaluation(uv, pos, normal, du, dv, duu, duv, dvv)
}

// ProjectPoint returns the evaluation nearest to p. Points on the axis
// project to u = 0 and points on the tube's center circle to v = 0.
func (s *Torus) ProjectPoint(p spatial.Point3D) geometry.SurfaceEvaluation {
	x, y, z := s.local(p)
	u := angle(x, y)
	return s.Evaluate(param.ParamUV{U: u, V: angle(math.Hypot(x, y)-s.major.Meters(), z)})
}

func (s *Torus) ContainsParam(uv param.ParamUV) bool { return finite(uv) }

// ContainsPoint reports whether p lies at the minor radius from the tube's center circle.
func (s *Torus) ContainsPoint(p spatial.Point3D) bool {
	x, y, z := s.local(p)
	d := math.Hypot(math.Hypot(x, y)-s.major.Meters(), z)
	return accuracy.LengthIsEqual(d, s.minor.Meters())
}

func (s *Torus) TransformedCopy(m spatial.Matrix44) (geometry.Surface, error) {
	o, ref, ax := s.transformed(m)
	return NewTorus(o, s.major, s.minor, ref, ax)
}

func (s *Torus) String() string {
	return fmt.Sprintf("Torus(origin=%v, major=%v, minor=%v, axis=%v)", s.origin, s.major, s.minor, s.dirZ)
}
