package param

import (
	"fmt"
	"math"

	"github.com/soypat/geometry/accuracy"
)

// ParamUV is a parameter pair on a surface.
type ParamUV struct {
	U, V float64
}

// Add returns p+q.
func (p ParamUV) Add(q ParamUV) ParamUV { return ParamUV{U: p.U + q.U, V: p.V + q.V} }

// Sub returns p-q.
func (p ParamUV) Sub(q ParamUV) ParamUV { return ParamUV{U: p.U - q.U, V: p.V - q.V} }

// Scale returns f*p.
func (p ParamUV) Scale(f float64) ParamUV { return ParamUV{U: f * p.U, V: f * p.V} }

// Equal compares both parameters with LengthIsEqual.
func (p ParamUV) Equal(q ParamUV) bool {
	return accuracy.LengthIsEqual(p.U, q.U) && accuracy.LengthIsEqual(p.V, q.V)
}

func (p ParamUV) String() string { return fmt.Sprintf("ParamUV(%g, %g)", p.U, p.V) }

// Location names a corner, edge midpoint or the center of a BoxUV.
type Location uint8

const (
	BottomLeft Location = iota
	BottomCenter
	BottomRight
	LeftCenter
	Center
	RightCenter
	TopLeft
	TopCenter
	TopRight
)

// proportions returns the u and v proportions of l, each 0, 0.5 or 1.
func (l Location) proportions() (u, v float64) {
	if l > TopRight {
		panic("param: invalid location")
	}
	return 0.5 * float64(l%3), 0.5 * float64(l/3)
}

func (l Location) String() string {
	switch l {
	case BottomLeft:
		return "bottom-left"
	case BottomCenter:
		return "bottom-center"
	case BottomRight:
		return "bottom-right"
	case LeftCenter:
		return "left-center"
	case Center:
		return "center"
	case RightCenter:
		return "right-center"
	case TopLeft:
		return "top-left"
	case TopCenter:
		return "top-center"
	case TopRight:
		return "top-right"
	}
	return fmt.Sprintf("Location(%d)", uint8(l))
}

// BoxUV bounds a surface patch in parameter space.
type BoxUV struct {
	U, V Interval
}

// EmptyBoxUV returns a box containing no parameters.
func EmptyBoxUV() BoxUV { return BoxUV{U: EmptyInterval(), V: EmptyInterval()} }

// BoxUVFromParams returns the smallest box containing p and q.
func BoxUVFromParams(p, q ParamUV) BoxUV {
	return BoxUV{
		U: Interval{Lo: math.Min(p.U, q.U), Hi: math.Max(p.U, q.U)},
		V: Interval{Lo: math.Min(p.V, q.V), Hi: math.Max(p.V, q.V)},
	}
}

// BoxUVFromParam returns the zero size box at p.
func BoxUVFromParam(p ParamUV) BoxUV { return BoxUVFromParams(p, p) }

// IsEmpty reports whether either interval of b is empty.
func (b BoxUV) IsEmpty() bool { return b.U.IsEmpty() || b.V.IsEmpty() }

// IsNegative reports whether either interval has a negative span beyond tolerance.
func (b BoxUV) IsNegative(tolU, tolV float64) bool {
	return b.U.Hi-b.U.Lo < -tolU || b.V.Hi-b.V.Lo < -tolV
}

// Equal compares both intervals.
func (b BoxUV) Equal(c BoxUV) bool {
	if b.IsEmpty() || c.IsEmpty() {
		return b.IsEmpty() && c.IsEmpty()
	}
	return b.U.Equal(c.U) && b.V.Equal(c.V)
}

// Center returns the middle of b. It fails on an empty or unbounded box.
func (b BoxUV) Center() (ParamUV, error) { return b.Corner(Center) }

// Corner returns the parameter at location l of b. It fails on an empty
// or unbounded box.
func (b BoxUV) Corner(l Location) (ParamUV, error) {
	if b.IsEmpty() {
		return ParamUV{}, ErrEmptyBox
	}
	pu, pv := l.proportions()
	return b.Proportional(pu, pv)
}

// Proportional maps the proportions u, v in [0, 1] onto b.
func (b BoxUV) Proportional(u, v float64) (ParamUV, error) {
	if b.IsEmpty() {
		return ParamUV{}, ErrEmptyBox
	}
	pu, err := b.U.RelativeValue(u)
	if err != nil {
		return ParamUV{}, fmt.Errorf("u: %w", err)
	}
	pv, err := b.V.RelativeValue(v)
	if err != nil {
		return ParamUV{}, fmt.Errorf("v: %w", err)
	}
	return ParamUV{U: pu, V: pv}, nil
}

// Contains reports whether p lies within b within LengthAccuracy.
// It fails on an empty box.
func (b BoxUV) Contains(p ParamUV) (bool, error) {
	if b.IsEmpty() {
		return false, ErrEmptyBox
	}
	return b.U.Contains(p.U) && b.V.Contains(p.V), nil
}

// Inflate grows b by du and dv on each side. It fails on an empty box.
func (b BoxUV) Inflate(du, dv float64) (BoxUV, error) {
	if b.IsEmpty() {
		return BoxUV{}, ErrEmptyBox
	}
	return BoxUV{U: b.U.Inflate(du), V: b.V.Inflate(dv)}, nil
}

func (b BoxUV) String() string {
	if b.IsEmpty() {
		return "BoxUV(empty)"
	}
	return fmt.Sprintf("BoxUV(u=%v, v=%v)", b.U, b.V)
}

// UniteBoxes returns the smallest box containing a and b. An empty operand
// yields the other.
func UniteBoxes(a, b BoxUV) BoxUV {
	switch {
	case a.IsEmpty():
		return b
	case b.IsEmpty():
		return a
	}
	return BoxUV{U: Unite(a.U, b.U), V: Unite(a.V, b.V)}
}

// IntersectBoxes returns the overlap of a and b with Intersect applied per
// axis. ok is false when either box is empty or the boxes are disjoint.
func IntersectBoxes(a, b BoxUV, tolU, tolV float64) (_ BoxUV, ok bool) {
	if a.IsEmpty() || b.IsEmpty() {
		return EmptyBoxUV(), false
	}
	u, ok := Intersect(a.U, b.U, tolU)
	if !ok {
		return EmptyBoxUV(), false
	}
	v, ok := Intersect(a.V, b.V, tolV)
	if !ok {
		return EmptyBoxUV(), false
	}
	return BoxUV{U: u, V: v}, true
}
