package spatial

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/geometry/units"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestFrameParallelAxes(t *testing.T) {
	_, err := NewFrame(Origin, Vec3(1, 0, 0), Vec3(1, 0, 0))
	if !errors.Is(err, ErrNotPerpendicular) {
		t.Fatalf("NewFrame with parallel axes: got err %v, want %v", err, ErrNotPerpendicular)
	}
	_, err = NewFrame(Origin, Vec3(0, 0, 0), Vec3(1, 0, 0))
	if !errors.Is(err, ErrZeroVector) {
		t.Fatalf("NewFrame with zero axis: got err %v, want %v", err, ErrZeroVector)
	}
}

func TestFrameLocalGlobal(t *testing.T) {
	origin := MustPoint3D(1, 2, 3, units.Meter)
	f, err := NewFrame(origin, Vec3(0, 1, 0), Vec3(-1, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !f.DirZ().Equal(UnitZ) {
		t.Errorf("DirZ = %v, want %v", f.DirZ(), UnitZ)
	}
	p2, _ := NewPoint2D(2, 0, units.Meter)
	got := f.TransformPoint2DLocalToGlobal(p2)
	want := MustPoint3D(1, 4, 3, units.Meter)
	if !got.Equal(want) {
		t.Errorf("TransformPoint2DLocalToGlobal = %v, want %v", got, want)
	}
	local := f.GlobalToLocal(want)
	if !local.Equal(MustPoint3D(2, 0, 0, units.Meter)) {
		t.Errorf("GlobalToLocal = %v, want (2, 0, 0)", local)
	}
	// The cached rotation is the transpose of the linear part of the transform.
	rot := f.GlobalToLocalRotation()
	tr := f.Transform()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(rot.At(i, j)-tr.At(j, i)) > 1e-12 {
				t.Errorf("rotation(%d,%d)=%g, transform(%d,%d)=%g", i, j, rot.At(i, j), j, i, tr.At(j, i))
			}
		}
	}
}

func TestPointUnitEquality(t *testing.T) {
	a := MustPoint3D(10, 0, 0, units.Millimeter)
	b := MustPoint3D(1, 0, 0, units.Centimeter)
	if !a.Equal(b) {
		t.Errorf("%v != %v", a, b)
	}
	if a.X() != 10 || b.X() != 1 {
		t.Errorf("display coordinates changed: %g %g", a.X(), b.X())
	}
	if _, err := NewPoint3D(1, 2, 3, units.Radian); !errors.Is(err, units.ErrDimensionMismatch) {
		t.Errorf("NewPoint3D with angle unit: got err %v", err)
	}
}

func TestPointDefaultUnit(t *testing.T) {
	p, err := NewPoint3D(1, 2, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Unit() != units.DefaultUnits.LengthUnit() {
		t.Errorf("unit = %v, want default %v", p.Unit(), units.DefaultUnits.LengthUnit())
	}
}

func TestPointDistance(t *testing.T) {
	a := MustPoint3D(0, 0, 0, units.Millimeter)
	b := MustPoint3D(3, 4, 0, units.Millimeter)
	d := a.DistanceTo(b)
	if math.Abs(d.Value().Magnitude-5) > 1e-9 {
		t.Errorf("distance = %v, want 5 mm", d)
	}
}

func TestVectorPredicates(t *testing.T) {
	tests := []struct {
		name                    string
		a, b                    Vector3D
		perp, parallel, opposed bool
	}{
		{name: "axes", a: Vec3(1, 0, 0), b: Vec3(0, 1, 0), perp: true},
		{name: "same", a: Vec3(1, 2, 3), b: Vec3(2, 4, 6), parallel: true},
		{name: "opposite", a: Vec3(1, 2, 3), b: Vec3(-1, -2, -3), parallel: true, opposed: true},
		{name: "zero", a: Vec3(0, 0, 0), b: Vec3(1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.IsPerpendicularTo(tt.b); got != tt.perp {
				t.Errorf("IsPerpendicularTo = %v, want %v", got, tt.perp)
			}
			if got := tt.a.IsParallelTo(tt.b); got != tt.parallel {
				t.Errorf("IsParallelTo = %v, want %v", got, tt.parallel)
			}
			if got := tt.a.IsOppositeTo(tt.b); got != tt.opposed {
				t.Errorf("IsOppositeTo = %v, want %v", got, tt.opposed)
			}
		})
	}
}

func TestUnitVectorNormalizes(t *testing.T) {
	u, err := NewUnitVector3D(3, 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(u.Vector().Norm()-1) > 1e-15 {
		t.Errorf("norm = %g", u.Vector().Norm())
	}
	if _, err := NewUnitVector2D(0, 0); !errors.Is(err, ErrZeroVector) {
		t.Errorf("NewUnitVector2D(0, 0): got err %v", err)
	}
	if a := Vec2(1, 0).AngleTo(Vec2(0, 1)); math.Abs(a-math.Pi/2) > 1e-15 {
		t.Errorf("AngleTo = %g, want pi/2", a)
	}
}

func TestMatrix44Inverse(t *testing.T) {
	m := RotationAbout(MustPoint3D(1, 1, 0, units.Meter), UnitZ, units.MustAngle(30, units.Degree))
	m = Translation(Vec3(0.5, -2, 3)).Mul(m)
	inv, err := m.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if !m.Mul(inv).IsIdentity() {
		t.Errorf("m*inv(m) = %v, want identity", m.Mul(inv))
	}
	if math.Abs(m.Det()-1) > 1e-12 {
		t.Errorf("det of rigid transform = %g, want 1", m.Det())
	}
	if _, err := NewMatrix44(make([]float64, 16)).Inverse(); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("inverse of zero matrix: got err %v", err)
	}
}

func TestRotationAbout(t *testing.T) {
	m := RotationAbout(MustPoint3D(1, 0, 0, units.Meter), UnitZ, units.MustAngle(math.Pi/2, units.Radian))
	got := MustPoint3D(2, 0, 0, units.Meter).Transformed(m)
	want := MustPoint3D(1, 1, 0, units.Meter)
	if !got.Equal(want) {
		t.Errorf("rotated point = %v, want %v", got, want)
	}
	dir := Vec3(1, 0, 0).Transformed(m)
	if !dir.Equal(Vec3(0, 1, 0)) {
		t.Errorf("rotated direction = %v, want (0, 1, 0)", dir)
	}
}

func TestMatrix33(t *testing.T) {
	m := NewMatrix33([]float64{
		2, 0, 0,
		0, 3, 0,
		0, 0, 4,
	})
	if math.Abs(m.Det()-24) > 1e-12 {
		t.Errorf("Det = %g, want 24", m.Det())
	}
	inv, err := m.Inverse()
	if err != nil {
		t.Fatal(err)
	}
	if !m.Mul(inv).Equal(Identity33()) {
		t.Errorf("m*inv(m) not identity")
	}
	if _, err := NewMatrix33(nil).Inverse(); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("inverse of zero matrix: got err %v", err)
	}
	shift := NewMatrix33([]float64{
		1, 0, 2,
		0, 1, -1,
		0, 0, 1,
	})
	p := shift.ApplyPoint2D(Point2DFromBase(r2.Vec{X: 1, Y: 1}, nil))
	if p.Vec() != (r2.Vec{X: 3, Y: 0}) {
		t.Errorf("ApplyPoint2D = %v, want (3, 0)", p)
	}
}

func TestPlane(t *testing.T) {
	pl, err := NewPlane(MustPoint3D(0, 0, 1, units.Meter), Vec3(1, 0, 0), Vec3(0, 1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !pl.IsPointContained(MustPoint3D(5, -3, 1, units.Meter)) {
		t.Error("point on plane not contained")
	}
	if pl.IsPointContained(MustPoint3D(5, -3, 1.001, units.Meter)) {
		t.Error("point off plane contained")
	}
	proj := pl.ProjectPoint(Point3DFromBase(r3.Vec{X: 1, Y: 2, Z: 7}, nil))
	if !proj.Equal(MustPoint3D(1, 2, 1, units.Meter)) {
		t.Errorf("ProjectPoint = %v", proj)
	}
	if _, err := NewPlane(Origin, Vec3(1, 0, 0), Vec3(1, 1, 0)); !errors.Is(err, ErrNotPerpendicular) {
		t.Errorf("NewPlane with skewed axes: got err %v", err)
	}
}
