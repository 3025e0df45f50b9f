// Package curves implements the parametric curves of package geometry:
// lines, circles and ellipses.
package curves

import (
	"fmt"
	"math"

	"github.com/soypat/geometry"
	"github.com/soypat/geometry/accuracy"
	"github.com/soypat/geometry/param"
	"github.com/soypat/geometry/spatial"
)

// Line is an infinite straight line. Its parameter is the signed
// distance in metres from the origin along the direction.
type Line struct {
	origin    spatial.Point3D
	direction spatial.UnitVector3D
}

var _ geometry.Curve = (*Line)(nil)

// NewLine returns the line through origin along direction.
func NewLine(origin spatial.Point3D, direction spatial.Vector3D) (*Line, error) {
	d, err := direction.Normalize()
	if err != nil {
		return nil, fmt.Errorf("line direction: %w", err)
	}
	return &Line{origin: origin, direction: d}, nil
}

// Origin returns the point at parameter 0.
func (l *Line) Origin() spatial.Point3D { return l.origin }

// Direction returns the unit direction of l.
func (l *Line) Direction() spatial.UnitVector3D { return l.direction }

func (l *Line) Parameterization() param.Parameterization {
	return param.Parameterization{Form: param.FormOpen, Type: param.TypeLinear, Interval: param.Unbounded()}
}

// Evaluate returns origin + t*direction. The tangent is constant and the
// curvature is zero.
func (l *Line) Evaluate(t float64) geometry.CurveEvaluation {
	return geometry.CurveEvaluation{
		Parameter:       t,
		Position:        l.origin.Add(l.direction.Vector().Scale(t)),
		Tangent:         l.direction,
		FirstDerivative: l.direction.Vector(),
	}
}

// ProjectPoint evaluates l at the foot of the perpendicular from p.
func (l *Line) ProjectPoint(p spatial.Point3D) geometry.CurveEvaluation {
	return l.Evaluate(p.Sub(l.origin).Dot(l.direction.Vector()))
}

// ContainsParam reports whether t is finite.
func (l *Line) ContainsParam(t float64) bool {
	return !math.IsInf(t, 0) && !math.IsNaN(t)
}

// ContainsPoint reports whether p lies on l within LengthAccuracy.
func (l *Line) ContainsPoint(p spatial.Point3D) bool {
	return accuracy.LengthIsZero(l.distanceTo(p))
}

func (l *Line) distanceTo(p spatial.Point3D) float64 {
	return p.Sub(l.origin).Cross(l.direction.Vector()).Norm()
}

func (l *Line) TransformedCopy(m spatial.Matrix44) (geometry.Curve, error) {
	return NewLine(l.origin.Transformed(m), l.direction.Vector().Transformed(m))
}

// IsCoincident reports whether l and other describe the same set of points.
func (l *Line) IsCoincident(other *Line) bool {
	return l.direction.Vector().IsParallelTo(other.direction.Vector()) && l.ContainsPoint(other.origin)
}

// IsOpposite reports whether l and other are coincident with opposite directions.
func (l *Line) IsOpposite(other *Line) bool {
	return l.IsCoincident(other) && l.direction.Dot(other.direction) < 0
}

func (l *Line) String() string {
	return fmt.Sprintf("Line(origin=%v, direction=%v)", l.origin, l.direction)
}
