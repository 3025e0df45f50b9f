package render

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/geometry"
	"github.com/soypat/geometry/curves"
	"github.com/soypat/geometry/internal/d3"
	"github.com/soypat/geometry/param"
	"github.com/soypat/geometry/spatial"
	"github.com/soypat/geometry/surfaces"
	"github.com/soypat/geometry/units"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

func trimmedSphere(t testing.TB) *geometry.TrimmedSurface {
	t.Helper()
	sph, err := surfaces.NewSphere(spatial.Origin, units.MustDistance(2, units.Meter), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	ts, err := geometry.NewTrimmedSurface(sph, param.BoxUV{U: param.MustInterval(0, 2*math.Pi), V: param.MustInterval(-math.Pi/2, math.Pi/2)})
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestTessellateSphere(t *testing.T) {
	const nu, nv = 16, 8
	ts := trimmedSphere(t)
	mesh := Tessellate(ts, nu, nv, 1)
	// The first and last rows of cells each lose one triangle to the poles.
	want := 2*nu*nv - 2*nu
	if len(mesh) != want {
		t.Fatalf("got %d triangles, want %d", len(mesh), want)
	}
	for i, tri := range mesh {
		for _, v := range tri.V {
			if math.Abs(r3.Norm(v)-2) > 1e-12 {
				t.Fatalf("triangle %d vertex %v not on sphere", i, v)
			}
		}
		c := r3.Scale(1.0/3, r3.Add(r3.Add(tri.V[0], tri.V[1]), tri.V[2]))
		if r3.Dot(tri.Normal(), c) <= 0 {
			t.Fatalf("triangle %d faces inwards", i)
		}
	}
	bounds := d3.Set(mesh[0].V[:]).Bounds()
	for _, tri := range mesh[1:] {
		bounds = bounds.Extend(tri.Bounds())
	}
	if !d3.EqualWithin(bounds.Max, r3.Vec{X: 2, Y: 2, Z: 2}, 1e-9) {
		t.Errorf("mesh bounds max %v", bounds.Max)
	}
	// Reversing the surface flips every triangle.
	rev := Tessellate(ts.Reversed(), nu, nv, 1)
	for i, tri := range rev {
		c := r3.Scale(1.0/3, r3.Add(r3.Add(tri.V[0], tri.V[1]), tri.V[2]))
		if r3.Dot(tri.Normal(), c) >= 0 {
			t.Fatalf("reversed triangle %d faces outwards", i)
		}
	}
}

func TestSTLWriteReadback(t *testing.T) {
	r, err := NewSurfaceRenderer(12, 6, units.Millimeter, trimmedSphere(t))
	if err != nil {
		t.Fatal(err)
	}
	input, err := RenderAll(r)
	if err != nil {
		t.Fatal(err)
	}
	// Pole cells lose one triangle each, so the preallocation is never exceeded.
	if want := 2*12*6 - 2*12; len(input) != want || cap(input) != r.MaxTriangles() {
		t.Errorf("RenderAll: got %d triangles in capacity %d, want %d in %d", len(input), cap(input), want, r.MaxTriangles())
	}
	var b bytes.Buffer
	err = WriteSTL(&b, input)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 84+stlTriangleSize*len(input) {
		t.Fatalf("STL size %d for %d triangles", b.Len(), len(input))
	}
	output, err := ReadSTL(&b)
	if err != nil && !errors.Is(err, ErrNormalMismatch) {
		t.Fatal(err)
	}
	if len(output) != len(input) {
		t.Fatal("length of triangles written/read not equal")
	}
	const tol = 1e-3 // float32 resolution at 2000mm.
	for iface, expect := range input {
		got := output[iface]
		for i := range expect.V {
			if !d3.EqualWithin(got.V[i], expect.V[i], tol) {
				t.Fatalf("%dth triangle out of tolerance. got vertex %0.5g, want %0.5g", iface, got.V[i], expect.V[i])
			}
		}
	}
}

func TestCreateSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sphere.stl")
	ts := trimmedSphere(t)
	r, _ := NewSurfaceRenderer(20, 10, nil, ts, ts.Reversed())
	if err := CreateSTL(path, r); err != nil {
		t.Fatal(err)
	}
	fp, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	got, err := ReadSTL(fp)
	if err != nil && !errors.Is(err, ErrNormalMismatch) {
		t.Fatal(err)
	}
	mesh := Tessellate(ts, 20, 10, 1)
	if len(got) != 2*len(mesh) {
		t.Errorf("CreateSTL wrote %d triangles, want %d", len(got), 2*len(mesh))
	}
}

func TestReadSTLErrors(t *testing.T) {
	if _, err := ReadSTL(bytes.NewReader(nil)); err == nil {
		t.Error("expected error on empty input")
	}
	var b bytes.Buffer
	b.Write(make([]byte, 80))
	b.Write([]byte{2, 0, 0, 0})
	b.Write(make([]byte, stlTriangleSize))
	if _, err := ReadSTL(&b); err == nil {
		t.Error("expected error on truncated or degenerate input")
	}
	// A header claiming far more triangles than the input holds.
	b.Reset()
	b.Write(make([]byte, 80))
	b.Write([]byte{0xf0, 0xff, 0xff, 0xff})
	if _, err := ReadSTL(&b); !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		t.Errorf("oversized triangle count: got err %v, want EOF", err)
	}
	if err := WriteSTL(io.Discard, nil); err == nil {
		t.Error("expected error writing no triangles")
	}
}

func TestRendererUnit(t *testing.T) {
	if _, err := NewSurfaceRenderer(1, 1, units.Degree); !errors.Is(err, units.ErrDimensionMismatch) {
		t.Errorf("angle output unit: got err %v", err)
	}
	if _, err := NewSurfaceRenderer(0, 1, nil); err == nil {
		t.Error("expected error for empty grid")
	}
}

func TestCurvePolyline(t *testing.T) {
	c, err := curves.NewCircle(spatial.Origin, units.MustDistance(1, units.Meter), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	tc, _ := geometry.NewTrimmedCurve(c, param.MustInterval(0, math.Pi))
	pts := CurvePolyline(tc, 4)
	if len(pts) != 5 {
		t.Fatalf("got %d points", len(pts))
	}
	if !d3.EqualWithin(pts[2], r3.Vec{Y: 1}, 1e-12) || !d3.EqualWithin(pts[4], r3.Vec{X: -1}, 1e-12) {
		t.Errorf("polyline = %v", pts)
	}
}

func TestPlotCurvesDeterministic(t *testing.T) {
	c, _ := curves.NewCircle(spatial.Origin, units.MustDistance(1, units.Meter), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	l, _ := curves.NewLine(spatial.Origin, spatial.Vec3(1, 1, 0))
	tc, _ := geometry.NewTrimmedCurve(c, param.MustInterval(0, 1.5*math.Pi))
	tl, _ := geometry.NewTrimmedCurve(l, param.MustInterval(-1, 1))
	render := func() []byte {
		p, err := PlotCurves(spatial.XYPlane, []*geometry.TrimmedCurve{tc, tl}, 64, units.Millimeter)
		if err != nil {
			t.Fatal(err)
		}
		var b bytes.Buffer
		if err := WritePlot(p, &b, "png"); err != nil {
			t.Fatal(err)
		}
		return b.Bytes()
	}
	first, second := render(), render()
	ok, err := cmpimg.Equal("png", first, second)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("plotting the same curves twice produced different images")
	}
	p := must(PlotCurves(spatial.XYPlane, []*geometry.TrimmedCurve{tc}, 48, units.Millimeter))
	if w, h := p.X.Max-p.X.Min, p.Y.Max-p.Y.Min; math.Abs(w-2200) > 1e-6 || math.Abs(h-2200) > 1e-6 {
		t.Errorf("axes span %g by %g mm, want 2200 by 2200", w, h)
	}
	if err := SavePlot(must(PlotCurves(spatial.XYPlane, []*geometry.TrimmedCurve{tc}, 8, nil)), filepath.Join(t.TempDir(), "empty.svg")); err != nil {
		t.Error(err)
	}
}

func TestMeshIndex(t *testing.T) {
	pl, err := surfaces.NewPlaneSurface(spatial.MustPoint3D(0, 0, 5, units.Meter), spatial.Vec3(1, 0, 0), spatial.Vec3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	lid := must(geometry.NewTrimmedSurface(pl, param.BoxUV{U: param.MustInterval(-1, 1), V: param.MustInterval(-1, 1)}))
	idx, err := NewMeshIndex(8, 8, trimmedSphere(t), lid)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		p        spatial.Point3D
		surface  int
		expected spatial.Point3D
	}{
		{p: spatial.MustPoint3D(2.5, 0, 0, units.Meter), surface: 0, expected: spatial.MustPoint3D(2, 0, 0, units.Meter)},
		{p: spatial.MustPoint3D(0, 0, 4.8, units.Meter), surface: 1, expected: spatial.MustPoint3D(0, 0, 5, units.Meter)},
		{p: spatial.MustPoint3D(0, 0, -3, units.Meter), surface: 0, expected: spatial.MustPoint3D(0, 0, -2, units.Meter)},
	} {
		i, ev := idx.Project(test.p)
		if i != test.surface {
			t.Errorf("%v: nearest surface %d, want %d", test.p, i, test.surface)
			continue
		}
		if !ev.Position.Equal(test.expected) {
			t.Errorf("%v: projected to %v, want %v", test.p, ev.Position, test.expected)
		}
	}
	want := d3.Box{Min: r3.Vec{X: -2, Y: -2, Z: -2}, Max: r3.Vec{X: 2, Y: 2, Z: 5}}
	if b := idx.Bounds(); !b.Equals(want, 1e-12) {
		t.Errorf("index bounds %v, want %v", b, want)
	}
	if _, err := NewMeshIndex(0, 4, lid); err == nil {
		t.Error("expected error for empty grid")
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
