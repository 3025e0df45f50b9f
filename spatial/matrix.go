package spatial

import (
	"errors"
	"fmt"

	"github.com/soypat/geometry/accuracy"
	"github.com/soypat/geometry/internal/d2"
	"github.com/soypat/geometry/internal/d3"
	"github.com/soypat/geometry/units"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrSingularMatrix is returned when inverting a matrix without an inverse.
var ErrSingularMatrix = errors.New("spatial: matrix is singular")

// Matrix33 is a 3x3 matrix. It doubles as a homogeneous transform of
// 2D points. The zero value is the zero matrix; use Identity33 for the identity.
type Matrix33 struct {
	t d2.Transform
}

// NewMatrix33 returns the matrix with the 9 row major values in data.
func NewMatrix33(data []float64) Matrix33 {
	return Matrix33{t: d2.NewTransform(data)}
}

// Identity33 returns the 3x3 identity matrix.
func Identity33() Matrix33 { return Matrix33{t: d2.Identity()} }

// At returns the element at row i, column j.
func (m Matrix33) At(i, j int) float64 { return m.t.At(i, j) }

// Mul returns the matrix product m*b.
func (m Matrix33) Mul(b Matrix33) Matrix33 { return Matrix33{t: m.t.Mul(b.t)} }

// Det returns the determinant of m.
func (m Matrix33) Det() float64 { return m.t.Determinant() }

// Inverse returns the inverse of m.
func (m Matrix33) Inverse() (Matrix33, error) {
	if accuracy.LengthIsZero(m.Det()) {
		return Matrix33{}, ErrSingularMatrix
	}
	inv, err := m.t.Inverse()
	if err != nil {
		return Matrix33{}, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}
	return Matrix33{t: inv}, nil
}

// MulVec returns m*v.
func (m Matrix33) MulVec(v Vector3D) Vector3D {
	return Vector3D{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

// ApplyPoint2D applies m to p as a homogeneous 2D transform.
func (m Matrix33) ApplyPoint2D(p Point2D) Point2D {
	p.v = m.t.ApplyPos(p.v)
	return p
}

// Equal compares elements with LengthIsEqual.
func (m Matrix33) Equal(b Matrix33) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !accuracy.LengthIsEqual(m.At(i, j), b.At(i, j)) {
				return false
			}
		}
	}
	return true
}

// Matrix44 is a 4x4 homogeneous transform with lengths in metres.
// The zero value is the identity transform.
type Matrix44 struct {
	t d3.Transform
}

// NewMatrix44 returns the matrix with the 16 row major values in data.
func NewMatrix44(data []float64) Matrix44 {
	return Matrix44{t: d3.NewTransform(data)}
}

// Identity44 returns the identity transform.
func Identity44() Matrix44 { return Matrix44{} }

// Translation returns the transform moving points by v metres.
func Translation(v Vector3D) Matrix44 {
	return Matrix44{t: d3.Translation(v.r3())}
}

// TranslationAlong returns the transform moving points distance along direction.
func TranslationAlong(direction UnitVector3D, distance units.Distance) Matrix44 {
	return Translation(direction.Vector().Scale(distance.Meters()))
}

// RotationAbout returns the transform rotating points by angle about the
// axis through origin, following the right hand rule.
func RotationAbout(origin Point3D, axis UnitVector3D, angle units.Angle) Matrix44 {
	return Matrix44{t: d3.RotationAbout(origin.v, axis.v, angle.Radians())}
}

// FromFrameAxes returns the transform mapping local coordinates expressed
// along dirX, dirY, dirZ to global coordinates relative to origin.
func FromFrameAxes(origin Point3D, dirX, dirY, dirZ UnitVector3D) Matrix44 {
	return Matrix44{t: d3.FromColumns(dirX.v, dirY.v, dirZ.v, origin.v)}
}

// At returns the element at row i, column j.
func (m Matrix44) At(i, j int) float64 { return m.t.At(i, j) }

// Mul returns m*b, the transform applying b first then m.
func (m Matrix44) Mul(b Matrix44) Matrix44 { return Matrix44{t: m.t.Mul(b.t)} }

// Det returns the determinant of m.
func (m Matrix44) Det() float64 { return m.t.Det() }

// Inverse returns the inverse of m.
func (m Matrix44) Inverse() (Matrix44, error) {
	if accuracy.LengthIsZero(m.Det()) {
		return Matrix44{}, ErrSingularMatrix
	}
	return Matrix44{t: m.t.Inv()}, nil
}

// Rotation returns the upper left 3x3 block of m.
func (m Matrix44) Rotation() Matrix33 {
	var r Matrix33
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.t.Set(i, j, m.At(i, j))
		}
	}
	return r
}

// ApplyPoint returns p transformed by m.
func (m Matrix44) ApplyPoint(p Point3D) Point3D { return p.Transformed(m) }

// ApplyVec transforms a raw position in metres.
func (m Matrix44) ApplyVec(v r3.Vec) r3.Vec { return m.t.Apply(v) }

// IsIdentity reports whether m is the identity within LengthAccuracy.
func (m Matrix44) IsIdentity() bool { return m.Equal(Matrix44{}) }

// Equal compares elements with LengthIsEqual.
func (m Matrix44) Equal(b Matrix44) bool {
	return m.t.EqualWithin(b.t, accuracy.LengthAccuracy)
}

func (m Matrix44) String() string {
	return fmt.Sprintf("Matrix44%v", m.t.SliceCopy())
}
