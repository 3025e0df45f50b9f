package curves

import (
	"fmt"
	"math"

	"github.com/soypat/geometry"
	"github.com/soypat/geometry/accuracy"
	"github.com/soypat/geometry/param"
	"github.com/soypat/geometry/spatial"
	"github.com/soypat/geometry/units"
)

// Circle is a full circle parameterized by angle in radians from its
// reference direction, counterclockwise about its axis.
type Circle struct {
	origin           spatial.Point3D
	radius           units.Distance
	dirX, dirY, dirZ spatial.UnitVector3D
}

var _ geometry.Curve = (*Circle)(nil)

// NewCircle returns the circle centered at origin in the plane normal to axis.
// reference sets the direction of parameter 0 and must be perpendicular to axis.
func NewCircle(origin spatial.Point3D, radius units.Distance, reference, axis spatial.Vector3D) (*Circle, error) {
	if !accuracy.LengthIsPositive(radius.Meters()) {
		return nil, fmt.Errorf("%w: circle radius %v", geometry.ErrInvalidRadius, radius)
	}
	dx, dz, err := referenceAxis(reference, axis)
	if err != nil {
		return nil, fmt.Errorf("circle: %w", err)
	}
	return &Circle{
		origin: origin,
		radius: radius,
		dirX:   dx,
		dirY:   mustUnit(dz.Cross(dx)),
		dirZ:   dz,
	}, nil
}

// referenceAxis normalizes reference and axis and checks they are perpendicular.
func referenceAxis(reference, axis spatial.Vector3D) (dx, dz spatial.UnitVector3D, err error) {
	dx, err = reference.Normalize()
	if err != nil {
		return dx, dz, err
	}
	dz, err = axis.Normalize()
	if err != nil {
		return dx, dz, err
	}
	if !dx.IsPerpendicularTo(dz) {
		return dx, dz, fmt.Errorf("%w: reference %v, axis %v", spatial.ErrNotPerpendicular, dx, dz)
	}
	return dx, dz, nil
}

func mustUnit(v spatial.Vector3D) spatial.UnitVector3D {
	u, err := v.Normalize()
	if err != nil {
		panic(err)
	}
	return u
}

func (c *Circle) Origin() spatial.Point3D { return c.origin }

func (c *Circle) Radius() units.Distance { return c.radius }

// Diameter returns twice the radius in the radius unit.
func (c *Circle) Diameter() units.Distance {
	return units.DistanceFromBase(2*c.radius.Meters(), c.radius.Unit())
}

// Perimeter returns the circumference in the radius unit.
func (c *Circle) Perimeter() units.Distance {
	return units.DistanceFromBase(2*math.Pi*c.radius.Meters(), c.radius.Unit())
}

// Area returns the enclosed area.
func (c *Circle) Area() units.Quantity {
	r := c.radius.Meters()
	return units.Q(math.Pi*r*r, units.SquareMeter)
}

// DirX returns the direction of parameter 0.
func (c *Circle) DirX() spatial.UnitVector3D { return c.dirX }

func (c *Circle) DirY() spatial.UnitVector3D { return c.dirY }

// Axis returns the circle's normal.
func (c *Circle) Axis() spatial.UnitVector3D { return c.dirZ }

func (c *Circle) Parameterization() param.Parameterization {
	return param.Parameterization{Form: param.FormPeriodic, Type: param.TypeCircular, Interval: param.MustInterval(0, 2*math.Pi)}
}

func (c *Circle) Evaluate(t float64) geometry.CurveEvaluation {
	r := c.radius.Meters()
	sin, cos := math.Sincos(t)
	radial := c.dirX.Vector().Scale(cos).Add(c.dirY.Vector().Scale(sin))
	tangent := c.dirX.Vector().Scale(-sin).Add(c.dirY.Vector().Scale(cos))
	return geometry.CurveEvaluation{
		Parameter:        t,
		Position:         c.origin.Add(radial.Scale(r)),
		Tangent:          mustUnit(tangent),
		FirstDerivative:  tangent.Scale(r),
		SecondDerivative: radial.Scale(-r),
		Curvature:        1 / r,
	}
}

// ProjectPoint evaluates c at the angle of p about the axis, in [0, 2π).
// Points on the axis are equidistant to every parameter and project to
// parameter 0.
func (c *Circle) ProjectPoint(p spatial.Point3D) geometry.CurveEvaluation {
	d := p.Sub(c.origin)
	d = d.Sub(c.dirZ.Vector().Scale(d.Dot(c.dirZ.Vector())))
	if d.IsZero() {
		return c.Evaluate(0)
	}
	t := math.Atan2(d.Dot(c.dirY.Vector()), d.Dot(c.dirX.Vector()))
	return c.Evaluate(c.Parameterization().Wrap(t, 0))
}

// ContainsParam reports whether t is finite. The circle is periodic.
func (c *Circle) ContainsParam(t float64) bool {
	return !math.IsInf(t, 0) && !math.IsNaN(t)
}

// ContainsPoint reports whether p lies on c within LengthAccuracy.
func (c *Circle) ContainsPoint(p spatial.Point3D) bool {
	return c.ProjectPoint(p).Position.Equal(p)
}

func (c *Circle) TransformedCopy(m spatial.Matrix44) (geometry.Curve, error) {
	return NewCircle(c.origin.Transformed(m), c.radius, c.dirX.Vector().Transformed(m), c.dirZ.Vector().Transformed(m))
}

func (c *Circle) String() string {
	return fmt.Sprintf("Circle(origin=%v, radius=%v, axis=%v)", c.origin, c.radius, c.dirZ)
}
