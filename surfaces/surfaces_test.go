package surfaces

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/geometry"
	"github.com/soypat/geometry/accuracy"
	"github.com/soypat/geometry/param"
	"github.com/soypat/geometry/spatial"
	"github.com/soypat/geometry/units"
)

func meters(v float64) units.Distance { return units.MustDistance(v, units.Meter) }

var samples = []param.ParamUV{
	{U: 0, V: 0},
	{U: 0.3, V: -0.4},
	{U: 1.7, V: 0.9},
	{U: 3.1, V: 1.2},
	{U: 5.5, V: -1.3},
}

func TestTorusRadialIdentity(t *testing.T) {
	tor, err := NewTorus(spatial.Origin, meters(3), meters(1), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	for _, uv := range samples {
		ev := tor.Evaluate(uv)
		if !tor.ContainsPoint(ev.Position) {
			t.Errorf("evaluated point %v not on torus", ev.Position)
		}
		// The tube center lies one minor radius behind the surface along the normal.
		center := ev.Position.Add(ev.Normal.Vector().Scale(-1))
		x, y, z := center.Vec().X, center.Vec().Y, center.Vec().Z
		if !accuracy.LengthIsEqual(math.Hypot(x, y), 3) || !accuracy.LengthIsZero(z) {
			t.Errorf("tube center %v not on the major circle", center)
		}
		if !accuracy.LengthIsEqual(ev.MaxCurvature, 1) {
			t.Errorf("max curvature at %v = %g, want 1", uv, ev.MaxCurvature)
		}
		wantMin := math.Cos(uv.V) / (3 + math.Cos(uv.V))
		if math.Abs(ev.MinCurvature-wantMin) > 1e-9 {
			t.Errorf("min curvature at %v = %g, want %g", uv, ev.MinCurvature, wantMin)
		}
		proj := tor.ProjectPoint(ev.Position.Add(ev.Normal.Vector().Scale(0.25)))
		if !proj.Position.Equal(ev.Position) {
			t.Errorf("projection of offset point = %v, want %v", proj.Position, ev.Position)
		}
	}
	if got := tor.Volume().Magnitude; math.Abs(got-2*math.Pi*math.Pi*3) > 1e-12 {
		t.Errorf("volume = %g", got)
	}
	if _, err := NewTorus(spatial.Origin, meters(1), meters(1), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1)); !errors.Is(err, geometry.ErrInvalidRadius) {
		t.Errorf("spindle torus: got err %v", err)
	}
}

func TestSphere(t *testing.T) {
	sph, err := NewSphere(spatial.MustPoint3D(1, 1, 1, units.Meter), meters(2), spatial.Vec3(0, 1, 0), spatial.Vec3(1, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	for _, uv := range samples {
		ev := sph.Evaluate(uv)
		if got := ev.Position.Sub(sph.Origin()).Norm(); !accuracy.LengthIsEqual(got, 2) {
			t.Errorf("|pos-center| = %g, want 2", got)
		}
		if !accuracy.LengthIsEqual(ev.MinCurvature, 0.5) || !accuracy.LengthIsEqual(ev.MaxCurvature, 0.5) {
			t.Errorf("curvatures = %g, %g, want 0.5", ev.MinCurvature, ev.MaxCurvature)
		}
		n := ev.UDerivative.Cross(ev.VDerivative)
		if n.Dot(ev.Normal.Vector()) <= 0 {
			t.Errorf("normal at %v does not follow du×dv", uv)
		}
		proj := sph.ProjectPoint(ev.Position.Add(ev.Normal.Vector().Scale(3)))
		if !proj.Position.Equal(ev.Position) {
			t.Errorf("projection = %v, want %v", proj.Position, ev.Position)
		}
	}
	if sph.ContainsParam(param.ParamUV{U: 0, V: 2}) {
		t.Error("latitude beyond pole accepted")
	}
	pole := sph.Evaluate(param.ParamUV{V: math.Pi / 2})
	if !pole.Position.Equal(spatial.MustPoint3D(3, 1, 1, units.Meter)) {
		t.Errorf("north pole = %v", pole.Position)
	}
}

func TestCylinder(t *testing.T) {
	cyl, err := NewCylinder(spatial.Origin, meters(0.5), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	ev := cyl.Evaluate(param.ParamUV{U: math.Pi / 2, V: 2})
	if !ev.Position.Equal(spatial.MustPoint3D(0, 0.5, 2, units.Meter)) {
		t.Errorf("position = %v", ev.Position)
	}
	if !accuracy.LengthIsZero(ev.MinCurvature) || !accuracy.LengthIsEqual(ev.MaxCurvature, 2) {
		t.Errorf("curvatures = %g, %g, want 0, 2", ev.MinCurvature, ev.MaxCurvature)
	}
	if !ev.MinCurvatureDirection.Vector().IsParallelTo(spatial.Vec3(0, 0, 1)) {
		t.Errorf("min curvature direction %v not along axis", ev.MinCurvatureDirection)
	}
	proj := cyl.ProjectPoint(spatial.MustPoint3D(0, 0, 7, units.Meter))
	if proj.Parameter.U != 0 || !accuracy.LengthIsEqual(proj.Parameter.V, 7) {
		t.Errorf("on-axis projection = %v, want (0, 7)", proj.Parameter)
	}
	if _, err := NewCylinder(spatial.Origin, meters(-1), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1)); !errors.Is(err, geometry.ErrInvalidRadius) {
		t.Errorf("negative radius: got err %v", err)
	}
}

func TestPlaneSurface(t *testing.T) {
	pl, err := NewPlaneSurface(spatial.MustPoint3D(0, 0, 5, units.Meter), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	ev := pl.Evaluate(param.ParamUV{U: 2, V: -3})
	if !ev.Position.Equal(spatial.MustPoint3D(2, -3, 5, units.Meter)) {
		t.Errorf("position = %v", ev.Position)
	}
	if !ev.Normal.Equal(spatial.UnitZ) || ev.MinCurvature != 0 || ev.MaxCurvature != 0 {
		t.Errorf("normal %v curvatures %g %g", ev.Normal, ev.MinCurvature, ev.MaxCurvature)
	}
	proj := pl.ProjectPoint(spatial.MustPoint3D(4, 1, -2, units.Meter))
	if !proj.Parameter.Equal(param.ParamUV{U: 4, V: 1}) {
		t.Errorf("projection parameters = %v", proj.Parameter)
	}
	if !pl.Plane().IsPointContained(proj.Position) {
		t.Error("projection not on plane")
	}
	_, err = NewPlaneSurface(spatial.Origin, spatial.Vec3(1, 0, 0), spatial.Vec3(1, 0, 0))
	if !errors.Is(err, spatial.ErrNotPerpendicular) {
		t.Errorf("parallel reference and axis: got err %v", err)
	}
}

func TestSurfaceTransformedCopy(t *testing.T) {
	sph, _ := NewSphere(spatial.Origin, meters(1), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	m := spatial.RotationAbout(spatial.MustPoint3D(2, 0, 0, units.Meter), spatial.UnitZ, units.MustAngle(180, units.Degree))
	moved, err := sph.TransformedCopy(m)
	if err != nil {
		t.Fatal(err)
	}
	if !moved.ContainsPoint(spatial.MustPoint3D(4, 1, 0, units.Meter)) {
		t.Error("rotated sphere does not contain expected point")
	}
}
