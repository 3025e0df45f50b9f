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

// Sphere is parameterized by longitude u about its axis, measured from the
// reference direction, and latitude v in [-π/2, π/2].
type Sphere struct {
	axes
	radius units.Distance
}

var _ geometry.Surface = (*Sphere)(nil)

// NewSphere returns the sphere centered at origin.
func NewSphere(origin spatial.Point3D, radius units.Distance, reference, axis spatial.Vector3D) (*Sphere, error) {
	if _, err := radiusMeters("sphere", radius); err != nil {
		return nil, err
	}
	a, err := newAxes(origin, reference, axis)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	return &Sphere{axes: a, radius: radius}, nil
}

func (s *Sphere) Origin() spatial.Point3D { return s.origin }

func (s *Sphere) Radius() units.Distance { return s.radius }

// SurfaceArea returns 4πr².
func (s *Sphere) SurfaceArea() units.Quantity {
	r := s.radius.Meters()
	return units.Q(4*math.Pi*r*r, units.SquareMeter)
}

// Volume returns 4πr³/3.
func (s *Sphere) Volume() units.Quantity {
	r := s.radius.Meters()
	return units.Q(4*math.Pi*r*r*r/3, units.CubicMeter)
}

func (s *Sphere) ParameterizationU() param.Parameterization { return periodic() }

func (s *Sphere) ParameterizationV() param.Parameterization {
	return param.Parameterization{Form: param.FormClosed, Type: param.TypeCircular, Interval: param.MustInterval(-math.Pi/2, math.Pi/2)}
}

func (s *Sphere) Evaluate(uv param.ParamUV) geometry.SurfaceEvaluation {
	r := s.radius.Meters()
	e, de := s.radial(uv.U)
	z := s.dirZ.Vector()
	sinv, cosv := math.Sincos(uv.V)
	out := e.Scale(cosv).Add(z.Scale(sinv))
	pos := s.origin.Add(out.Scale(r))
	normal, _ := out.Normalize()
	du := de.Scale(r * cosv)
	dv := e.Scale(-r * sinv).Add(z.Scale(r * cosv))
	duu := e.Scale(-r * cosv)
	duv := de.Scale(-r * sinv)
	dvv := out.Scale(-r)
	ev := geometry.NewSurfaceEvaluation(uv, pos, normal, du, dv, duu, duv, dvv)
	// Every direction is principal on a sphere, including at the poles
	// where the parameterization degenerates.
	ev.MinCurvature, ev.MaxCurvature = 1/r, 1/r
	if accuracy.LengthIsZero(cosv) {
		ev.MinCurvatureDirection = s.dirX
		ev.MaxCurvatureDirection = s.dirY
	}
	return ev
}

// ProjectPoint evaluates s at the longitude and latitude of p. The center
// projects to (0, 0).
func (s *Sphere) ProjectPoint(p spatial.Point3D) geometry.SurfaceEvaluation {
	x, y, z := s.local(p)
	return s.Evaluate(param.ParamUV{U: angle(x, y), V: angle(math.Hypot(x, y), z)})
}

// ContainsParam reports whether uv is finite with latitude in [-π/2, π/2].
func (s *Sphere) ContainsParam(uv param.ParamUV) bool {
	return finite(uv) && s.ParameterizationV().Interval.ContainsValue(uv.V, accuracy.AngleAccuracy)
}

// ContainsPoint reports whether p lies at the sphere's radius from its center.
func (s *Sphere) ContainsPoint(p spatial.Point3D) bool {
	return accuracy.LengthIsEqual(p.Sub(s.origin).Norm(), s.radius.Meters())
}

func (s *Sphere) TransformedCopy(m spatial.Matrix44) (geometry.Surface, error) {
	o, ref, ax := s.transformed(m)
	return NewSphere(o, s.radius, ref, ax)
}

func (s *Sphere) String() string {
	return fmt.Sprintf("Sphere(origin=%v, radius=%v)", s.origin, s.radius)
}
