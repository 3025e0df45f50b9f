package spatial

import (
	"fmt"

	"github.com/soypat/geometry/accuracy"
)

// Plane is the xy plane of a Frame.
type Plane struct {
	Frame
}

// XYPlane is the global xy plane.
var XYPlane = Plane{Frame: WorldFrame}

// NewPlane returns the plane through origin spanned by dirX and dirY.
func NewPlane(origin Point3D, dirX, dirY Vector3D) (Plane, error) {
	f, err := NewFrame(origin, dirX, dirY)
	if err != nil {
		return Plane{}, fmt.Errorf("plane: %w", err)
	}
	return Plane{Frame: f}, nil
}

// Normal returns the unit normal of p.
func (p Plane) Normal() UnitVector3D { return p.dirZ }

// SignedDistance returns the distance of q to p in metres, positive on the normal side.
func (p Plane) SignedDistance(q Point3D) float64 {
	return q.Sub(p.origin).Dot(p.dirZ.Vector())
}

// IsPointContained reports whether q lies on p within LengthAccuracy.
func (p Plane) IsPointContained(q Point3D) bool {
	return accuracy.LengthIsZero(p.SignedDistance(q))
}

// ProjectPoint returns the orthogonal projection of q onto p.
func (p Plane) ProjectPoint(q Point3D) Point3D {
	return q.Add(p.dirZ.Vector().Scale(-p.SignedDistance(q)))
}

// ProjectPoint2D returns the local plane coordinates of the projection of q.
func (p Plane) ProjectPoint2D(q Point3D) Point2D { return p.GlobalToLocal2D(q) }

// Transformed returns p with m applied.
func (p Plane) Transformed(m Matrix44) (Plane, error) {
	f, err := p.Frame.Transformed(m)
	if err != nil {
		return Plane{}, err
	}
	return Plane{Frame: f}, nil
}
