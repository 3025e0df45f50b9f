// Package spatial defines the points, vectors, matrices and frames the
// parametric geometry is built on. Coordinates are stored in SI base
// units; points additionally carry the length unit they are displayed in.
package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/geometry/accuracy"
	"github.com/soypat/geometry/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrZeroVector is returned when normalizing a vector without direction.
	ErrZeroVector = errors.New("spatial: zero vector cannot be normalized")
	// ErrNotPerpendicular is returned when two directions required to be
	// orthogonal are not.
	ErrNotPerpendicular = errors.New("spatial: directions are not perpendicular")
)

// Vector3D is a 3D vector. Lengths are in metres where a length is implied.
type Vector3D r3.Vec

// Vec3 is shorthand for Vector3D{X: x, Y: y, Z: z}.
func Vec3(x, y, z float64) Vector3D { return Vector3D{X: x, Y: y, Z: z} }

func (a Vector3D) r3() r3.Vec { return r3.Vec(a) }

// Add returns a+b.
func (a Vector3D) Add(b Vector3D) Vector3D { return Vector3D(r3.Add(a.r3(), b.r3())) }

// Sub returns a-b.
func (a Vector3D) Sub(b Vector3D) Vector3D { return Vector3D(r3.Sub(a.r3(), b.r3())) }

// Scale returns f*a.
func (a Vector3D) Scale(f float64) Vector3D { return Vector3D(r3.Scale(f, a.r3())) }

// Dot returns the dot product a·b.
func (a Vector3D) Dot(b Vector3D) float64 { return r3.Dot(a.r3(), b.r3()) }

// Cross returns the cross product a×b.
func (a Vector3D) Cross(b Vector3D) Vector3D { return Vector3D(r3.Cross(a.r3(), b.r3())) }

// Norm returns the magnitude of a.
func (a Vector3D) Norm() float64 { return r3.Norm(a.r3()) }

// IsZero reports whether every component of a is zero within LengthAccuracy.
func (a Vector3D) IsZero() bool {
	return accuracy.LengthIsZero(a.X) && accuracy.LengthIsZero(a.Y) && accuracy.LengthIsZero(a.Z)
}

// Normalize returns the unit vector along a.
func (a Vector3D) Normalize() (UnitVector3D, error) {
	n := a.Norm()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return UnitVector3D{}, fmt.Errorf("%w: %v", ErrZeroVector, a)
	}
	return UnitVector3D{v: r3.Scale(1/n, a.r3())}, nil
}

// IsPerpendicularTo reports whether a and b are orthogonal within AngleAccuracy.
// Zero vectors are never perpendicular.
func (a Vector3D) IsPerpendicularTo(b Vector3D) bool {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return false
	}
	return accuracy.AngleIsZero(a.Dot(b) / (na * nb))
}

// IsParallelTo reports whether a and b share a line of action, in either sense.
// Zero vectors are never parallel.
func (a Vector3D) IsParallelTo(b Vector3D) bool {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return false
	}
	return accuracy.AngleIsZero(a.Cross(b).Norm() / (na * nb))
}

// IsOppositeTo reports whether a and b are parallel and point in opposite senses.
func (a Vector3D) IsOppositeTo(b Vector3D) bool {
	return a.IsParallelTo(b) && a.Dot(b) < 0
}

// AngleTo returns the unsigned angle between a and b in radians.
func (a Vector3D) AngleTo(b Vector3D) float64 {
	return math.Atan2(a.Cross(b).Norm(), a.Dot(b))
}

// Equal compares components with LengthIsEqual.
func (a Vector3D) Equal(b Vector3D) bool {
	return accuracy.LengthIsEqual(a.X, b.X) &&
		accuracy.LengthIsEqual(a.Y, b.Y) &&
		accuracy.LengthIsEqual(a.Z, b.Z)
}

// Transformed applies the linear part of m to a.
func (a Vector3D) Transformed(m Matrix44) Vector3D {
	return Vector3D(m.t.ApplyDirection(a.r3()))
}

// UnitVector3D is a Vector3D of unit magnitude. The zero value is invalid;
// construct one with NewUnitVector3D or Vector3D.Normalize.
type UnitVector3D struct {
	v r3.Vec
}

var (
	UnitX = UnitVector3D{v: r3.Vec{X: 1}}
	UnitY = UnitVector3D{v: r3.Vec{Y: 1}}
	UnitZ = UnitVector3D{v: r3.Vec{Z: 1}}
)

// NewUnitVector3D normalizes (x, y, z).
func NewUnitVector3D(x, y, z float64) (UnitVector3D, error) {
	return Vec3(x, y, z).Normalize()
}

func (u UnitVector3D) X() float64 { return u.v.X }

func (u UnitVector3D) Y() float64 { return u.v.Y }

func (u UnitVector3D) Z() float64 { return u.v.Z }

// Vector returns u as a plain Vector3D.
func (u UnitVector3D) Vector() Vector3D { return Vector3D(u.v) }

// Vec returns u as a gonum vector.
func (u UnitVector3D) Vec() r3.Vec { return u.v }

// Neg returns the unit vector pointing opposite to u.
func (u UnitVector3D) Neg() UnitVector3D { return UnitVector3D{v: r3.Scale(-1, u.v)} }

// Dot returns u·v.
func (u UnitVector3D) Dot(v UnitVector3D) float64 { return r3.Dot(u.v, v.v) }

// Cross returns u×v, which is a unit vector only when u and v are perpendicular.
func (u UnitVector3D) Cross(v UnitVector3D) Vector3D { return Vector3D(r3.Cross(u.v, v.v)) }

// IsPerpendicularTo reports whether u and v are orthogonal within AngleAccuracy.
func (u UnitVector3D) IsPerpendicularTo(v UnitVector3D) bool {
	return u.Vector().IsPerpendicularTo(v.Vector())
}

// Equal compares components with LengthIsEqual.
func (u UnitVector3D) Equal(v UnitVector3D) bool { return u.Vector().Equal(v.Vector()) }

// Transformed applies the linear part of m to u and renormalizes.
func (u UnitVector3D) Transformed(m Matrix44) (UnitVector3D, error) {
	return u.Vector().Transformed(m).Normalize()
}

func (u UnitVector3D) String() string {
	return fmt.Sprintf("UnitVector3D(%g, %g, %g)", u.v.X, u.v.Y, u.v.Z)
}

// orthonormal returns dirZ×dirX, the third axis of a right handed triad.
func orthonormal(dirZ, dirX UnitVector3D) UnitVector3D {
	return UnitVector3D{v: r3.Unit(r3.Cross(dirZ.v, dirX.v))}
}

// Vector2D is a 2D vector.
type Vector2D r2.Vec

// Vec2 is shorthand for Vector2D{X: x, Y: y}.
func Vec2(x, y float64) Vector2D { return Vector2D{X: x, Y: y} }

func (a Vector2D) r2() r2.Vec { return r2.Vec(a) }

// Add returns a+b.
func (a Vector2D) Add(b Vector2D) Vector2D { return Vector2D(r2.Add(a.r2(), b.r2())) }

// Sub returns a-b.
func (a Vector2D) Sub(b Vector2D) Vector2D { return Vector2D(r2.Sub(a.r2(), b.r2())) }

// Scale returns f*a.
func (a Vector2D) Scale(f float64) Vector2D { return Vector2D(r2.Scale(f, a.r2())) }

// Dot returns a·b.
func (a Vector2D) Dot(b Vector2D) float64 { return r2.Dot(a.r2(), b.r2()) }

// Norm returns the magnitude of a.
func (a Vector2D) Norm() float64 { return r2.Norm(a.r2()) }

// Cross returns the z component of the 3D cross product of a and b.
func (a Vector2D) Cross(b Vector2D) float64 { return d2.Cross(a.r2(), b.r2()) }

// Equal compares components with LengthIsEqual.
func (a Vector2D) Equal(b Vector2D) bool {
	return accuracy.LengthIsEqual(a.X, b.X) && accuracy.LengthIsEqual(a.Y, b.Y)
}

// IsZero reports whether both components are zero within LengthAccuracy.
func (a Vector2D) IsZero() bool { return accuracy.LengthIsZero(a.X) && accuracy.LengthIsZero(a.Y) }

// Normalize returns the unit vector along a.
func (a Vector2D) Normalize() (UnitVector2D, error) {
	n := a.Norm()
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return UnitVector2D{}, fmt.Errorf("%w: %v", ErrZeroVector, a)
	}
	return UnitVector2D{v: r2.Scale(1/n, a.r2())}, nil
}

// IsPerpendicularTo reports whether a and b are orthogonal within AngleAccuracy.
func (a Vector2D) IsPerpendicularTo(b Vector2D) bool {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return false
	}
	return accuracy.AngleIsZero(a.Dot(b) / (na * nb))
}

// IsParallelTo reports whether a and b share a line of action.
func (a Vector2D) IsParallelTo(b Vector2D) bool {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return false
	}
	return accuracy.AngleIsZero(a.Cross(b) / (na * nb))
}

// AngleTo returns the signed angle from a to b in radians, in (-pi, pi].
func (a Vector2D) AngleTo(b Vector2D) float64 {
	return math.Atan2(a.Cross(b), a.Dot(b))
}

// UnitVector2D is a Vector2D of unit magnitude.
type UnitVector2D struct {
	v r2.Vec
}

// NewUnitVector2D normalizes (x, y).
func NewUnitVector2D(x, y float64) (UnitVector2D, error) {
	return Vec2(x, y).Normalize()
}

func (u UnitVector2D) X() float64 { return u.v.X }

func (u UnitVector2D) Y() float64 { return u.v.Y }

// Vector returns u as a plain Vector2D.
func (u UnitVector2D) Vector() Vector2D { return Vector2D(u.v) }

// Polar returns u in polar form; R is always one.
func (u UnitVector2D) Polar() d2.Pol { return d2.CartesianToPolar(u.v) }

// Equal compares components with LengthIsEqual.
func (u UnitVector2D) Equal(v UnitVector2D) bool { return u.Vector().Equal(v.Vector()) }
