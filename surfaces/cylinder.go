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

// Cylinder is an infinite circular cylinder. u is the angle about the axis
// from the reference direction and v the height in metres along the axis.
type Cylinder struct {
	axes
	radius units.Distance
}

var _ geometry.Surface = (*Cylinder)(nil)

// NewCylinder returns the cylinder of the given radius about the axis through origin.
func NewCylinder(origin spatial.Point3D, radius units.Distance, reference, axis spatial.Vector3D) (*Cylinder, error) {
	if _, err := radiusMeters("cylinder", radius); err != nil {
		return nil, err
	}
	a, err := newAxes(origin, reference, axis)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}
	return &Cylinder{axes: a, radius: radius}, nil
}

func (s *Cylinder) Origin() spatial.Point3D { return s.origin }

func (s *Cylinder) Radius() units.Distance { return s.radius }

func (s *Cylinder) Axis() spatial.UnitVector3D { return s.dirZ }

// SurfaceArea returns the lateral area of a section of the given height.
func (s *Cylinder) SurfaceArea(height units.Distance) units.Quantity {
	return units.Q(2*math.Pi*s.radius.Meters()*height.Meters(), units.SquareMeter)
}

// Volume returns the volume enclosed by a section of the given height.
func (s *Cylinder) Volume(height units.Distance) units.Quantity {
	r := s.radius.Meters()
	return units.Q(math.Pi*r*r*height.Meters(), units.CubicMeter)
}

func (s *Cylinder) ParameterizationU() param.Parameterization { return periodic() }

func (s *Cylinder) ParameterizationV() param.Parameterization { return linear() }

func (s *Cylinder) Evaluate(uv param.ParamUV) geometry.SurfaceEvaluation {
	r := s.radius.Meters()
	e, de := s.radial(uv.U)
	z := s.dirZ.Vector()
	pos := s.origin.Add(e.Scale(r).Add(z.Scale(uv.V)))
	normal, _ := e.Normalize()
	var zero spatial.Vector3D
	return geometry.NewSurfaceEvaluation(uv, pos, normal, de.Scale(r), z, e.Scale(-r), zero, zero)
}

// ProjectPoint evaluates s at the angle and height of p. Points on the axis
// project to u = 0.
func (s *Cylinder) ProjectPoint(p spatial.Point3D) geometry.SurfaceEvaluation {
	x, y, z := s.local(p)
	return s.Evaluate(param.ParamUV{U: angle(x, y), V: z})
}

func (s *Cylinder) ContainsParam(uv param.ParamUV) bool { return finite(uv) }

// ContainsPoint reports whether p lies at the cylinder's radius from its axis.
func (s *Cylinder) ContainsPoint(p spatial.Point3D) bool {
	x, y, _ := s.local(p)
	return accuracy.LengthIsEqual(math.Hypot(x, y), s.radius.Meters())
}

func (s *Cylinder) TransformedCopy(m spatial.Matrix44) (geometry.Surface, error) {
	o, ref, ax := s.transformed(m)
	return NewCylinder(o, s.radius, ref, ax)
}

func (s *Cylinder) String() string {
	return fmt.Sprintf("Cylinder(origin=%v, radius=%v, axis=%v)", s.origin, s.radius, s.dirZ)
}
