// Package geometry evaluates parametric curves and surfaces and trims them
// to parameter ranges.
//
// Concrete curves live in package curves and concrete surfaces in package
// surfaces. Every evaluation returns a fresh value owned by the caller.
package geometry

import (
	"errors"
	"math"

	"github.com/soypat/geometry/param"
	"github.com/soypat/geometry/spatial"
	"gonum.org/v1/gonum/integrate/quad"
)

// ErrInvalidRadius is returned when constructing geometry with a radius that
// is not positive or with radii in the wrong order.
var ErrInvalidRadius = errors.New("geometry: invalid radius")

// Curve is a parametric curve in space.
type Curve interface {
	// Parameterization returns the natural parameter range of the curve.
	Parameterization() param.Parameterization
	// Evaluate returns the position and derivatives at parameter t.
	Evaluate(t float64) CurveEvaluation
	// ProjectPoint returns the evaluation at the parameter closest to p.
	ProjectPoint(p spatial.Point3D) CurveEvaluation
	ContainsParam(t float64) bool
	ContainsPoint(p spatial.Point3D) bool
	// TransformedCopy returns a new curve with m applied. m must be rigid.
	TransformedCopy(m spatial.Matrix44) (Curve, error)
}

// Surface is a parametric surface in space.
type Surface interface {
	ParameterizationU() param.Parameterization
	ParameterizationV() param.Parameterization
	// Evaluate returns the position, normal and derivatives at uv.
	Evaluate(uv param.ParamUV) SurfaceEvaluation
	// ProjectPoint returns the evaluation at the parameters closest to p.
	ProjectPoint(p spatial.Point3D) SurfaceEvaluation
	ContainsParam(uv param.ParamUV) bool
	ContainsPoint(p spatial.Point3D) bool
	// TransformedCopy returns a new surface with m applied. m must be rigid.
	TransformedCopy(m spatial.Matrix44) (Surface, error)
}

// CurveEvaluation holds the differential properties of a curve at one parameter.
// Derivatives are in metres per unit parameter.
type CurveEvaluation struct {
	Parameter        float64
	Position         spatial.Point3D
	Tangent          spatial.UnitVector3D
	FirstDerivative  spatial.Vector3D
	SecondDerivative spatial.Vector3D
	Curvature        float64
}

// SurfaceEvaluation holds the differential properties of a surface at one
// parameter pair. Curvatures are in inverse metres and positive where the
// surface bends away from its normal, as on a sphere with outward normal.
type SurfaceEvaluation struct {
	Parameter    param.ParamUV
	Position     spatial.Point3D
	Normal       spatial.UnitVector3D
	UDerivative  spatial.Vector3D
	VDerivative  spatial.Vector3D
	UUDerivative spatial.Vector3D
	UVDerivative spatial.Vector3D
	VVDerivative spatial.Vector3D

	MinCurvature          float64
	MaxCurvature          float64
	MinCurvatureDirection spatial.UnitVector3D
	MaxCurvatureDirection spatial.UnitVector3D
}

// NewSurfaceEvaluation fills in the principal curvatures and directions
// of a SurfaceEvaluation from its derivatives and normal.
func NewSurfaceEvaluation(uv param.ParamUV, pos spatial.Point3D, normal spatial.UnitVector3D, du, dv, duu, duv, dvv spatial.Vector3D) SurfaceEvaluation {
	ev := SurfaceEvaluation{
		Parameter:    uv,
		Position:     pos,
		Normal:       normal,
		UDerivative:  du,
		VDerivative:  dv,
		UUDerivative: duu,
		UVDerivative: duv,
		VVDerivative: dvv,
	}
	n := normal.Vector()
	// First and second fundamental forms.
	E, F, G := du.Dot(du), du.Dot(dv), dv.Dot(dv)
	L, M, N := -duu.Dot(n), -duv.Dot(n), -dvv.Dot(n)
	det := E*G - F*F
	if det <= 0 {
		ev.MinCurvatureDirection = normal
		ev.MaxCurvatureDirection = normal
		return ev
	}
	K := (L*N - M*M) / det
	H := (E*N - 2*F*M + G*L) / (2 * det)
	disc := math.Sqrt(math.Max(H*H-K, 0))
	ev.MinCurvature, ev.MaxCurvature = H-disc, H+disc

	k := ev.MinCurvature
	a1, b1 := M-k*F, -(L - k*E)
	a2, b2 := N-k*G, -(M - k*F)
	a, b := a1, b1
	if math.Hypot(a2, b2) > math.Hypot(a1, b1) {
		a, b = a2, b2
	}
	dir := du.Scale(a).Add(dv.Scale(b))
	if math.Hypot(a, b) < 1e-12 {
		// Umbilic point, any tangent direction is principal.
		dir = du
	}
	minDir, err := dir.Normalize()
	if err != nil {
		minDir, err = dv.Normalize()
		if err != nil {
			minDir = normal
		}
	}
	ev.MinCurvatureDirection = minDir
	maxDir, err := n.Cross(minDir.Vector()).Normalize()
	if err != nil {
		maxDir = minDir
	}
	ev.MaxCurvatureDirection = maxDir
	return ev
}

// arcLengthNodes is the number of Gauss-Legendre nodes used when
// integrating arc length and area.
const arcLengthNodes = 64

// ArcLength returns the length in metres of c over the closed interval iv.
func ArcLength(c Curve, iv param.Interval) float64 {
	if iv.Hi == iv.Lo {
		return 0
	}
	return quad.Fixed(func(t float64) float64 {
		return c.Evaluate(t).FirstDerivative.Norm()
	}, iv.Lo, iv.Hi, arcLengthNodes, nil, 0)
}

// Area returns the area in square metres of s over the closed box b.
func Area(s Surface, b param.BoxUV) float64 {
	if b.U.Hi == b.U.Lo || b.V.Hi == b.V.Lo {
		return 0
	}
	const nodes = arcLengthNodes / 2
	return quad.Fixed(func(u float64) float64 {
		return quad.Fixed(func(v float64) float64 {
			ev := s.Evaluate(param.ParamUV{U: u, V: v})
			return ev.UDerivative.Cross(ev.VDerivative).Norm()
		}, b.V.Lo, b.V.Hi, nodes, nil, 0)
	}, b.U.Lo, b.U.Hi, nodes, nil, 0)
}

// Orientation selects whether a trimmed entity follows its underlying
// geometry's parameter direction or runs against it.
type Orientation uint8

const (
	Forward Orientation = iota
	Reversed
)

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation {
	if o == Forward {
		return Reversed
	}
	return Forward
}

func (o Orientation) String() string {
	if o == Reversed {
		return "reversed"
	}
	return "forward"
}
