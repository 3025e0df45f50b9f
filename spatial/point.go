package spatial

import (
	"fmt"

	"github.com/soypat/geometry/accuracy"
	"github.com/soypat/geometry/units"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Point3D is a position in space. Coordinates are held in metres and
// read back in the point's length unit.
type Point3D struct {
	v    r3.Vec
	unit *units.Unit
}

// Origin is the point (0, 0, 0) m.
var Origin = Point3D{unit: units.Meter}

// NewPoint3D returns the point (x, y, z) expressed in u. A nil unit selects
// the default length unit.
func NewPoint3D(x, y, z float64, u *units.Unit) (Point3D, error) {
	u, err := lengthUnit(u)
	if err != nil {
		return Point3D{}, err
	}
	return Point3D{v: r3.Scale(u.Factor(), r3.Vec{X: x, Y: y, Z: z}), unit: u}, nil
}

// MustPoint3D is like NewPoint3D but panics if u is not a length unit.
func MustPoint3D(x, y, z float64, u *units.Unit) Point3D {
	p, err := NewPoint3D(x, y, z, u)
	if err != nil {
		panic(err)
	}
	return p
}

// Point3DFromBase returns the point at v metres displayed in u.
// A nil unit displays in metres. It panics if u is not a length unit.
func Point3DFromBase(v r3.Vec, u *units.Unit) Point3D {
	if u == nil {
		u = units.Meter
	}
	if !u.Compatible(units.Meter) {
		panic("spatial: point unit " + u.Name() + " is not a length")
	}
	return Point3D{v: v, unit: u}
}

func lengthUnit(u *units.Unit) (*units.Unit, error) {
	if u == nil {
		u = units.DefaultUnits.LengthUnit()
	}
	if _, err := units.NewPhysicalQuantity(u, units.Meter); err != nil {
		return nil, err
	}
	return u, nil
}

// X returns the x coordinate in the point's unit.
func (p Point3D) X() float64 { return p.Unit().FromBase(p.v.X) }

// Y returns the y coordinate in the point's unit.
func (p Point3D) Y() float64 { return p.Unit().FromBase(p.v.Y) }

// Z returns the z coordinate in the point's unit.
func (p Point3D) Z() float64 { return p.Unit().FromBase(p.v.Z) }

// Vec returns the coordinates in metres.
func (p Point3D) Vec() r3.Vec { return p.v }

// Unit returns the display unit of p.
func (p Point3D) Unit() *units.Unit {
	if p.unit == nil {
		return units.Meter
	}
	return p.unit
}

// WithUnit returns p displayed in u. The position is unchanged.
func (p Point3D) WithUnit(u *units.Unit) (Point3D, error) {
	u, err := lengthUnit(u)
	if err != nil {
		return Point3D{}, err
	}
	p.unit = u
	return p, nil
}

// Equal compares positions in metres with LengthIsEqual, regardless of unit.
func (p Point3D) Equal(q Point3D) bool {
	return accuracy.LengthIsEqual(p.v.X, q.v.X) &&
		accuracy.LengthIsEqual(p.v.Y, q.v.Y) &&
		accuracy.LengthIsEqual(p.v.Z, q.v.Z)
}

// Add returns p displaced by d metres.
func (p Point3D) Add(d Vector3D) Point3D {
	p.v = r3.Add(p.v, d.r3())
	return p
}

// Sub returns the vector from q to p in metres.
func (p Point3D) Sub(q Point3D) Vector3D { return Vector3D(r3.Sub(p.v, q.v)) }

// DistanceTo returns the distance between p and q in p's unit.
func (p Point3D) DistanceTo(q Point3D) units.Distance {
	return units.DistanceFromBase(r3.Norm(r3.Sub(p.v, q.v)), p.Unit())
}

// Transformed returns m applied to p.
func (p Point3D) Transformed(m Matrix44) Point3D {
	p.v = m.t.Apply(p.v)
	return p
}

func (p Point3D) String() string {
	return fmt.Sprintf("Point3D(%g, %g, %g %s)", p.X(), p.Y(), p.Z(), p.Unit().Symbol())
}

// Point2D is a position in a plane, held in metres.
type Point2D struct {
	v    r2.Vec
	unit *units.Unit
}

// NewPoint2D returns the point (x, y) expressed in u. A nil unit selects
// the default length unit.
func NewPoint2D(x, y float64, u *units.Unit) (Point2D, error) {
	u, err := lengthUnit(u)
	if err != nil {
		return Point2D{}, err
	}
	return Point2D{v: r2.Scale(u.Factor(), r2.Vec{X: x, Y: y}), unit: u}, nil
}

// Point2DFromBase returns the point at v metres displayed in u.
// A nil unit displays in metres. It panics if u is not a length unit.
func Point2DFromBase(v r2.Vec, u *units.Unit) Point2D {
	if u == nil {
		u = units.Meter
	}
	if !u.Compatible(units.Meter) {
		panic("spatial: point unit " + u.Name() + " is not a length")
	}
	return Point2D{v: v, unit: u}
}

func (p Point2D) X() float64 { return p.Unit().FromBase(p.v.X) }

func (p Point2D) Y() float64 { return p.Unit().FromBase(p.v.Y) }

// Vec returns the coordinates in metres.
func (p Point2D) Vec() r2.Vec { return p.v }

// Unit returns the display unit of p.
func (p Point2D) Unit() *units.Unit {
	if p.unit == nil {
		return units.Meter
	}
	return p.unit
}

// Equal compares positions in metres with LengthIsEqual.
func (p Point2D) Equal(q Point2D) bool {
	return accuracy.LengthIsEqual(p.v.X, q.v.X) && accuracy.LengthIsEqual(p.v.Y, q.v.Y)
}

// Add returns p displaced by d metres.
func (p Point2D) Add(d Vector2D) Point2D {
	p.v = r2.Add(p.v, d.r2())
	return p
}

// Sub returns the vector from q to p in metres.
func (p Point2D) Sub(q Point2D) Vector2D { return Vector2D(r2.Sub(p.v, q.v)) }

// DistanceTo returns the distance between p and q in p's unit.
func (p Point2D) DistanceTo(q Point2D) units.Distance {
	return units.DistanceFromBase(r2.Norm(r2.Sub(p.v, q.v)), p.Unit())
}

func (p Point2D) String() string {
	return fmt.Sprintf("Point2D(%g, %g %s)", p.X(), p.Y(), p.Unit().Symbol())
}
