package geometry_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/soypat/geometry"
	"github.com/soypat/geometry/accuracy"
	"github.com/soypat/geometry/curves"
	"github.com/soypat/geometry/param"
	"github.com/soypat/geometry/spatial"
	"github.com/soypat/geometry/surfaces"
	"github.com/soypat/geometry/units"
)

func newCircle(t testing.TB) *curves.Circle {
	t.Helper()
	c, err := curves.NewCircle(spatial.MustPoint3D(1, 2, 0, units.Millimeter), units.MustDistance(10, units.Millimeter), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestTrimmedCurveRoundTrip(t *testing.T) {
	c := newCircle(t)
	a, b := 0.5, 2.5
	tc, err := geometry.NewTrimmedCurve(c, param.MustInterval(a, b))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := tc.EvaluateProportion(0).Position, c.Evaluate(a).Position; !got.Equal(want) {
		t.Errorf("EvaluateProportion(0) = %v, want %v", got, want)
	}
	if got, want := tc.EvaluateProportion(1).Position, c.Evaluate(b).Position; !got.Equal(want) {
		t.Errorf("EvaluateProportion(1) = %v, want %v", got, want)
	}
	if !tc.Start().Equal(c.Evaluate(a).Position) || !tc.End().Equal(c.Evaluate(b).Position) {
		t.Errorf("start/end = %v/%v", tc.Start(), tc.End())
	}
	wantLen := 0.010 * (b - a)
	if got := tc.Length().Meters(); math.Abs(got-wantLen) > 1e-12 {
		t.Errorf("length = %g, want %g", got, wantLen)
	}
	if tc.Length().Unit() != units.Millimeter {
		t.Errorf("length unit = %v, want mm", tc.Length().Unit())
	}
}

func TestTrimmedCurveReversed(t *testing.T) {
	c := newCircle(t)
	tc, err := geometry.NewTrimmedCurve(c, param.MustInterval(0, math.Pi/2))
	if err != nil {
		t.Fatal(err)
	}
	rc := tc.Reversed()
	if rc.Orientation() != geometry.Reversed {
		t.Fatalf("orientation = %v", rc.Orientation())
	}
	if !rc.Start().Equal(tc.End()) || !rc.End().Equal(tc.Start()) {
		t.Errorf("reversed start/end = %v/%v, want %v/%v", rc.Start(), rc.End(), tc.End(), tc.Start())
	}
	for _, u := range []float64{0, 0.2, 0.5, 1} {
		got := rc.EvaluateProportion(u).Position
		want := tc.EvaluateProportion(1 - u).Position
		if !got.Equal(want) {
			t.Errorf("reversed.EvaluateProportion(%g) = %v, want %v", u, got, want)
		}
	}
	if rc.Reversed().Orientation() != geometry.Forward {
		t.Error("double reversal is not forward")
	}
}

func TestTrimmedCurveStringReversed(t *testing.T) {
	tc, err := geometry.NewTrimmedCurve(newCircle(t), param.MustInterval(0, math.Pi/2))
	if err != nil {
		t.Fatal(err)
	}
	rc := tc.Reversed()
	got := rc.String()
	want := fmt.Sprintf("start=%v, end=%v", rc.Start(), rc.End())
	if !strings.Contains(got, want) {
		t.Errorf("String() = %q, want it to contain %q", got, want)
	}
}

func TestTrimmedCurveContainsPoint(t *testing.T) {
	c, err := curves.NewCircle(spatial.Origin, units.MustDistance(1, units.Meter), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	for _, iv := range []param.Interval{
		param.MustInterval(math.Pi, 3*math.Pi/2),
		param.MustInterval(-math.Pi/4, math.Pi/4),
		param.MustInterval(3*math.Pi/2, 5*math.Pi/2),
		param.MustInterval(0, 2*math.Pi),
	} {
		tc, err := geometry.NewTrimmedCurve(c, iv)
		if err != nil {
			t.Fatal(err)
		}
		for _, o := range []*geometry.TrimmedCurve{tc, tc.Reversed()} {
			for _, u := range []float64{0, 0.25, 0.5, 0.75, 1} {
				p := o.EvaluateProportion(u).Position
				if !o.ContainsPoint(p) {
					t.Errorf("%v: point at proportion %g not contained: %v", o, u, p)
				}
			}
		}
	}
	tc, _ := geometry.NewTrimmedCurve(c, param.MustInterval(math.Pi, 3*math.Pi/2))
	for _, p := range []spatial.Point3D{
		spatial.MustPoint3D(0, 1, 0, units.Meter),
		spatial.MustPoint3D(1, 0, 0, units.Meter),
		spatial.MustPoint3D(-1, -1, 0, units.Meter), // off the circle
	} {
		if tc.ContainsPoint(p) {
			t.Errorf("%v should not contain %v", tc, p)
		}
	}
}

func TestTrimmedCurveOpenInterval(t *testing.T) {
	l, _ := curves.NewLine(spatial.Origin, spatial.Vec3(1, 0, 0))
	_, err := geometry.NewTrimmedCurve(l, l.Parameterization().Interval)
	if !errors.Is(err, geometry.ErrOpenInterval) {
		t.Errorf("trimming to unbounded interval: got err %v", err)
	}
}

func TestTrimmedCurveTranslateRotate(t *testing.T) {
	l, _ := curves.NewLine(spatial.Origin, spatial.Vec3(1, 0, 0))
	tc, err := geometry.NewTrimmedCurve(l, param.MustInterval(0, 2))
	if err != nil {
		t.Fatal(err)
	}
	err = tc.Translate(spatial.UnitY, units.MustDistance(3, units.Meter))
	if err != nil {
		t.Fatal(err)
	}
	if !tc.Start().Equal(spatial.MustPoint3D(0, 3, 0, units.Meter)) || !tc.End().Equal(spatial.MustPoint3D(2, 3, 0, units.Meter)) {
		t.Errorf("translated start/end = %v/%v", tc.Start(), tc.End())
	}
	err = tc.Rotate(spatial.MustPoint3D(0, 3, 0, units.Meter), spatial.UnitZ, units.MustAngle(90, units.Degree))
	if err != nil {
		t.Fatal(err)
	}
	if !tc.End().Equal(spatial.MustPoint3D(0, 5, 0, units.Meter)) {
		t.Errorf("rotated end = %v", tc.End())
	}
	if got := tc.EvaluateProportion(1).Position; !got.Equal(tc.End()) {
		t.Errorf("geometry and cached end disagree: %v vs %v", got, tc.End())
	}
	if !accuracy.LengthIsEqual(tc.Length().Meters(), 2) {
		t.Errorf("length changed to %v", tc.Length())
	}
}

func TestTrimmedCurveConcurrentMoves(t *testing.T) {
	l, _ := curves.NewLine(spatial.Origin, spatial.Vec3(1, 0, 0))
	tc, err := geometry.NewTrimmedCurve(l, param.MustInterval(0, 1))
	if err != nil {
		t.Fatal(err)
	}
	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := tc.Translate(spatial.UnitZ, units.MustDistance(1, units.Millimeter)); err != nil {
				t.Error(err)
			}
			// Readers must always see start and geometry from the same state.
			_ = tc.EvaluateProportion(0.5)
			_ = tc.Start()
		}()
	}
	wg.Wait()
	want := spatial.MustPoint3D(0, 0, n, units.Millimeter)
	if !tc.Start().Equal(want) {
		t.Errorf("start after %d moves = %v, want %v", n, tc.Start(), want)
	}
	if !tc.EvaluateProportion(0).Position.Equal(want) {
		t.Errorf("geometry after %d moves = %v", n, tc.EvaluateProportion(0).Position)
	}
}

func TestTrimmedSurface(t *testing.T) {
	cyl, err := surfaces.NewCylinder(spatial.Origin, units.MustDistance(1, units.Meter), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	box := param.BoxUV{U: param.MustInterval(0, math.Pi), V: param.MustInterval(0, 2)}
	ts, err := geometry.NewTrimmedSurface(cyl, box)
	if err != nil {
		t.Fatal(err)
	}
	ev := ts.EvaluateProportion(0, 1)
	if !ev.Position.Equal(spatial.MustPoint3D(1, 0, 2, units.Meter)) {
		t.Errorf("EvaluateProportion(0, 1) = %v", ev.Position)
	}
	rs := ts.Reversed()
	rev := rs.EvaluateProportion(0, 1)
	if !rev.Position.Equal(spatial.MustPoint3D(-1, 0, 2, units.Meter)) {
		t.Errorf("reversed EvaluateProportion(0, 1) = %v", rev.Position)
	}
	if !rev.Normal.Equal(ts.EvaluateProportion(1, 1).Normal.Neg()) {
		t.Errorf("reversed normal %v not negated", rev.Normal)
	}
	u, v := rs.ProportionalParameters(rs.Parameters(0.25, 0.75))
	if !accuracy.LengthIsEqual(u, 0.25) || !accuracy.LengthIsEqual(v, 0.75) {
		t.Errorf("ProportionalParameters = %g, %g, want 0.25, 0.75", u, v)
	}
	if got := ts.Area(); math.Abs(got-2*math.Pi) > 1e-9 {
		t.Errorf("area = %g, want 2π", got)
	}
	_, err = geometry.NewTrimmedSurface(cyl, param.BoxUV{U: box.U, V: param.Unbounded()})
	if !errors.Is(err, geometry.ErrOpenInterval) {
		t.Errorf("unbounded box: got err %v", err)
	}
}

func TestTrimmedSurfaceTranslate(t *testing.T) {
	pl, _ := surfaces.NewPlaneSurface(spatial.Origin, spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	ts, err := geometry.NewTrimmedSurface(pl, param.BoxUVFromParams(param.ParamUV{}, param.ParamUV{U: 1, V: 1}))
	if err != nil {
		t.Fatal(err)
	}
	if err := ts.Translate(spatial.UnitZ, units.MustDistance(5, units.Centimeter)); err != nil {
		t.Fatal(err)
	}
	got := ts.EvaluateProportion(1, 1).Position
	if !got.Equal(spatial.MustPoint3D(1, 1, 0.05, units.Meter)) {
		t.Errorf("translated corner = %v", got)
	}
}

func TestArcLengthEllipse(t *testing.T) {
	e, err := curves.NewEllipse(spatial.Origin, units.MustDistance(2, units.Meter), units.MustDistance(2, units.Meter), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	// A circular ellipse has the circle's perimeter.
	got := geometry.ArcLength(e, param.MustInterval(0, 2*math.Pi))
	if math.Abs(got-4*math.Pi) > 1e-9 {
		t.Errorf("ArcLength = %g, want 4π", got)
	}
}

func BenchmarkEvaluateProportion(b *testing.B) {
	c := newCircle(b)
	tc, _ := geometry.NewTrimmedCurve(c, param.MustInterval(0, math.Pi))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tc.EvaluateProportion(0.3)
	}
}
