package spatial

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Frame is a right handed coordinate system positioned at Origin.
// Its rotation and transform matrices are computed once on construction.
type Frame struct {
	origin     Point3D
	dirX, dirY UnitVector3D
	dirZ       UnitVector3D

	// rotation maps global directions to local ones; its rows are the axes.
	rotation Matrix33

	// transform maps local positions to global ones.
	transform Matrix44
}

// WorldFrame is the global coordinate system.
var WorldFrame = mustFrame(Origin, UnitX.Vector(), UnitY.Vector())

func mustFrame(origin Point3D, dirX, dirY Vector3D) Frame {
	f, err := NewFrame(origin, dirX, dirY)
	if err != nil {
		panic(err)
	}
	return f
}

// NewFrame returns the frame at origin with the given x and y directions.
// The directions are normalized and must be perpendicular.
func NewFrame(origin Point3D, dirX, dirY Vector3D) (Frame, error) {
	ux, err := dirX.Normalize()
	if err != nil {
		return Frame{}, fmt.Errorf("frame x direction: %w", err)
	}
	uy, err := dirY.Normalize()
	if err != nil {
		return Frame{}, fmt.Errorf("frame y direction: %w", err)
	}
	if !ux.IsPerpendicularTo(uy) {
		return Frame{}, fmt.Errorf("%w: frame x %v and y %v", ErrNotPerpendicular, ux, uy)
	}
	uz := UnitVector3D{v: r3.Unit(r3.Cross(ux.v, uy.v))}
	rot := NewMatrix33([]float64{
		ux.v.X, ux.v.Y, ux.v.Z,
		uy.v.X, uy.v.Y, uy.v.Z,
		uz.v.X, uz.v.Y, uz.v.Z,
	})
	return Frame{
		origin:    origin,
		dirX:      ux,
		dirY:      uy,
		dirZ:      uz,
		rotation:  rot,
		transform: FromFrameAxes(origin, ux, uy, uz),
	}, nil
}

// Origin returns the origin of f.
func (f Frame) Origin() Point3D { return f.origin }

// DirX returns the x axis of f.
func (f Frame) DirX() UnitVector3D { return f.dirX }

// DirY returns the y axis of f.
func (f Frame) DirY() UnitVector3D { return f.dirY }

// DirZ returns the z axis of f, DirX×DirY.
func (f Frame) DirZ() UnitVector3D { return f.dirZ }

// GlobalToLocalRotation returns the rotation taking global directions to local ones.
func (f Frame) GlobalToLocalRotation() Matrix33 { return f.rotation }

// Transform returns the local to global transform of f.
func (f Frame) Transform() Matrix44 { return f.transform }

// TransformPoint2DLocalToGlobal maps a point in the xy plane of f to space.
// The result is displayed in p's unit.
func (f Frame) TransformPoint2DLocalToGlobal(p Point2D) Point3D {
	v := f.transform.ApplyVec(r3.Vec{X: p.v.X, Y: p.v.Y})
	return Point3D{v: v, unit: p.Unit()}
}

// LocalToGlobal maps local coordinates of f to space.
func (f Frame) LocalToGlobal(p Point3D) Point3D {
	p.v = f.transform.ApplyVec(p.v)
	return p
}

// GlobalToLocal returns p in the coordinates of f.
func (f Frame) GlobalToLocal(p Point3D) Point3D {
	d := Vector3D(r3.Sub(p.v, f.origin.v))
	p.v = f.rotation.MulVec(d).r3()
	return p
}

// GlobalToLocal2D returns p projected onto the xy plane of f, in local coordinates.
func (f Frame) GlobalToLocal2D(p Point3D) Point2D {
	l := f.GlobalToLocal(p)
	return Point2D{v: r2.Vec{X: l.v.X, Y: l.v.Y}, unit: p.Unit()}
}

// Transformed returns f with m applied to its origin and axes.
func (f Frame) Transformed(m Matrix44) (Frame, error) {
	return NewFrame(f.origin.Transformed(m), f.dirX.Vector().Transformed(m), f.dirY.Vector().Transformed(m))
}

// Equal compares origins and axes.
func (f Frame) Equal(g Frame) bool {
	return f.origin.Equal(g.origin) && f.dirX.Equal(g.dirX) && f.dirY.Equal(g.dirY)
}

func (f Frame) String() string {
	return fmt.Sprintf("Frame(origin=%v, x=%v, y=%v, z=%v)", f.origin, f.dirX, f.dirY, f.dirZ)
}
