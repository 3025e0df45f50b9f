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

// Ellipse is a full ellipse with its major axis along the reference
// direction. It is parameterized by eccentric anomaly in radians.
type Ellipse struct {
	origin           spatial.Point3D
	major, minor     units.Distance
	dirX, dirY, dirZ spatial.UnitVector3D
}

var _ geometry.Curve = (*Ellipse)(nil)

// NewEllipse returns the ellipse centered at origin in the plane normal to axis.
// The major radius must be at least the minor radius, which must be positive.
func NewEllipse(origin spatial.Point3D, major, minor units.Distance, reference, axis spatial.Vector3D) (*Ellipse, error) {
	a, b := major.Meters(), minor.Meters()
	if !accuracy.LengthIsPositive(b) {
		return nil, fmt.Errorf("%w: ellipse minor radius %v", geometry.ErrInvalidRadius, minor)
	}
	if !accuracy.LengthIsGreaterThanOrEqual(a, b) {
		return nil, fmt.Errorf("%w: ellipse major radius %v less than minor radius %v", geometry.ErrInvalidRadius, major, minor)
	}
	dx, dz, err := referenceAxis(reference, axis)
	if err != nil {
		return nil, fmt.Errorf("ellipse: %w", err)
	}
	return &Ellipse{
		origin: origin,
		major:  major,
		minor:  minor,
		dirX:   dx,
		dirY:   mustUnit(dz.Cross(dx)),
		dirZ:   dz,
	}, nil
}

func (e *Ellipse) Origin() spatial.Point3D { return e.origin }

func (e *Ellipse) MajorRadius() units.Distance { return e.major }

func (e *Ellipse) MinorRadius() units.Distance { return e.minor }

// Axis returns the ellipse's normal.
func (e *Ellipse) Axis() spatial.UnitVector3D { return e.dirZ }

// Eccentricity returns sqrt(1 - b²/a²).
func (e *Ellipse) Eccentricity() float64 {
	a, b := e.major.Meters(), e.minor.Meters()
	return math.Sqrt(1 - (b*b)/(a*a))
}

// LinearEccentricity returns the distance from the center to either focus.
func (e *Ellipse) LinearEccentricity() units.Distance {
	a, b := e.major.Meters(), e.minor.Meters()
	return units.DistanceFromBase(math.Sqrt(a*a-b*b), e.major.Unit())
}

// SemiLatusRectum returns b²/a.
func (e *Ellipse) SemiLatusRectum() units.Distance {
	a, b := e.major.Meters(), e.minor.Meters()
	return units.DistanceFromBase(b*b/a, e.major.Unit())
}

// Perimeter returns the circumference, integrated numerically.
func (e *Ellipse) Perimeter() units.Distance {
	l := geometry.ArcLength(e, param.MustInterval(0, 2*math.Pi))
	return units.DistanceFromBase(l, e.major.Unit())
}

// Area returns πab.
func (e *Ellipse) Area() units.Quantity {
	return units.Q(math.Pi*e.major.Meters()*e.minor.Meters(), units.SquareMeter)
}

func (e *Ellipse) Parameterization() param.Parameterization {
	return param.Parameterization{Form: param.FormPeriodic, Type: param.TypeOther, Interval: param.MustInterval(0, 2*math.Pi)}
}

func (e *Ellipse) Evaluate(t float64) geometry.CurveEvaluation {
	a, b := e.major.Meters(), e.minor.Meters()
	sin, cos := math.Sincos(t)
	x, y := e.dirX.Vector(), e.dirY.Vector()
	d1 := x.Scale(-a * sin).Add(y.Scale(b * cos))
	return geometry.CurveEvaluation{
		Parameter:        t,
		Position:         e.origin.Add(x.Scale(a * cos).Add(y.Scale(b * sin))),
		Tangent:          mustUnit(d1),
		FirstDerivative:  d1,
		SecondDerivative: x.Scale(-a * cos).Add(y.Scale(-b * sin)),
		Curvature:        a * b / math.Pow(a*a*sin*sin+b*b*cos*cos, 1.5),
	}
}

// ellipseSeeds is the number of samples used to seed the projection.
const ellipseSeeds = 64

// ProjectPoint returns the evaluation at the parameter nearest to p. The
// in-plane projection of p is sampled for a starting guess that Newton's
// method then refines.
func (e *Ellipse) ProjectPoint(p spatial.Point3D) geometry.CurveEvaluation {
	a, b := e.major.Meters(), e.minor.Meters()
	d := p.Sub(e.origin)
	px, py := d.Dot(e.dirX.Vector()), d.Dot(e.dirY.Vector())
	dist2 := func(t float64) float64 {
		sin, cos := math.Sincos(t)
		dx, dy := a*cos-px, b*sin-py
		return dx*dx + dy*dy
	}
	best, bestDist := 0.0, dist2(0)
	for i := 1; i < ellipseSeeds; i++ {
		t := 2 * math.Pi * float64(i) / ellipseSeeds
		if d := dist2(t); d < bestDist {
			best, bestDist = t, d
		}
	}
	// Newton iteration on the derivative of the squared distance.
	t := best
	for i := 0; i < 32; i++ {
		sin, cos := math.Sincos(t)
		f := (b*b-a*a)*sin*cos + a*px*sin - b*py*cos
		df := (b*b-a*a)*(cos*cos-sin*sin) + a*px*cos + b*py*sin
		if df == 0 {
			break
		}
		step := f / df
		t -= step
		if math.Abs(step) < accuracy.AngleAccuracy*1e-3 {
			break
		}
	}
	if math.IsNaN(t) || dist2(t) > bestDist {
		t = best
	}
	return e.Evaluate(e.Parameterization().Wrap(t, 0))
}

func (e *Ellipse) ContainsParam(t float64) bool {
	return !math.IsInf(t, 0) && !math.IsNaN(t)
}

// ContainsPoint reports whether p lies on e within LengthAccuracy.
func (e *Ellipse) ContainsPoint(p spatial.Point3D) bool {
	return e.ProjectPoint(p).Position.Equal(p)
}

func (e *Ellipse) TransformedCopy(m spatial.Matrix44) (geometry.Curve, error) {
	return NewEllipse(e.origin.Transformed(m), e.major, e.minor, e.dirX.Vector().Transformed(m), e.dirZ.Vector().Transformed(m))
}

func (e *Ellipse) String() string {
	return fmt.Sprintf("Ellipse(origin=%v, major=%v, minor=%v, axis=%v)", e.origin, e.major, e.minor, e.dirZ)
}
