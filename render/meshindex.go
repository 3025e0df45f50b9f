package render

import (
	"errors"
	"math"

	"github.com/soypat/geometry"
	"github.com/soypat/geometry/internal/d3"
	"github.com/soypat/geometry/spatial"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface = kdTriangles{}
	_ kdtree.Bounder   = kdTriangles{}
)

// MeshIndex finds the trimmed surface closest to a point. A coarse
// tessellation of every surface is searched by triangle centroid and
// the winning surface is then projected onto exactly.
type MeshIndex struct {
	surfaces []*geometry.TrimmedSurface
	tree     *kdtree.Tree
}

// NewMeshIndex tessellates each surface on an nu by nv grid and indexes the
// triangles. Vertices are kept in metres.
func NewMeshIndex(nu, nv int, surfaces ...*geometry.TrimmedSurface) (*MeshIndex, error) {
	if nu < 1 || nv < 1 {
		return nil, errors.New("render: grid needs at least one cell per direction")
	}
	var tris kdTriangles
	for i, ts := range surfaces {
		for _, t := range Tessellate(ts, nu, nv, 1) {
			tris = append(tris, kdTriangle{Triangle3: t, surface: i})
		}
	}
	if len(tris) == 0 {
		return nil, errors.New("render: no triangles to index")
	}
	return &MeshIndex{surfaces: surfaces, tree: kdtree.New(tris, true)}, nil
}

// Nearest returns the index of the surface whose tessellation is closest
// to p along with the triangle that was matched.
func (m *MeshIndex) Nearest(p spatial.Point3D) (surface int, tri Triangle3) {
	v := p.Vec()
	got, _ := m.tree.Nearest(kdTriangle{Triangle3: Triangle3{V: [3]r3.Vec{v, v, v}}})
	k := got.(kdTriangle)
	return k.surface, k.Triangle3
}

// Project returns the index of the surface nearest p and the evaluation at
// p's projection onto it.
func (m *MeshIndex) Project(p spatial.Point3D) (int, geometry.SurfaceEvaluation) {
	i, _ := m.Nearest(p)
	return i, m.surfaces[i].ProjectPoint(p)
}

// Bounds returns the bounding box of every indexed triangle, in metres.
func (m *MeshIndex) Bounds() d3.Box {
	bb := m.tree.Root.Bounding
	return d3.Box{
		Min: bb.Min.(kdTriangle).V[0],
		Max: bb.Max.(kdTriangle).V[0],
	}
}

type kdTriangles []kdTriangle

type kdTriangle struct {
	Triangle3
	surface int
}

func (k kdTriangles) Index(i int) kdtree.Comparable { return k[i] }

// Len returns the length of the list.
func (k kdTriangles) Len() int { return len(k) }

// Pivot partitions the list based on the dimension specified.
func (k kdTriangles) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), triangles: k}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (k kdTriangles) Slice(start, end int) kdtree.Interface { return k[start:end] }

func (k kdTriangles) Bounds() *kdtree.Bounding {
	max := r3.Vec{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64}
	min := r3.Vec{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64}
	for _, tri := range k {
		b := tri.Triangle3.Bounds()
		min = d3.MinElem(min, b.Min)
		max = d3.MaxElem(max, b.Max)
	}
	return &kdtree.Bounding{
		Min: kdTriangle{Triangle3: Triangle3{V: [3]r3.Vec{min, min, min}}},
		Max: kdTriangle{Triangle3: Triangle3{V: [3]r3.Vec{max, max, max}}},
	}
}

// Compare returns the signed distance of a's centroid from the plane passing
// through b's centroid and perpendicular to the dimension d.
func (a kdTriangle) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return kdComp(a, b.(kdTriangle), int(d))
}

// Dims returns the number of dimensions described in the Comparable.
func (a kdTriangle) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between centroids.
func (a kdTriangle) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.centroid(), b.(kdTriangle).centroid()))
}

func (a kdTriangle) centroid() r3.Vec {
	return r3.Scale(1./3., r3.Add(a.V[0], r3.Add(a.V[1], a.V[2])))
}

// c = a.dim - b.dim
func kdComp(a, b kdTriangle, dim int) float64 {
	ac, bc := a.centroid(), b.centroid()
	switch dim {
	case 0:
		return ac.X - bc.X
	case 1:
		return ac.Y - bc.Y
	}
	return ac.Z - bc.Z
}

type kdPlane struct {
	dim       int
	triangles kdTriangles
}

func (p kdPlane) Less(i, j int) bool {
	return kdComp(p.triangles[i], p.triangles[j], p.dim) < 0
}

func (p kdPlane) Swap(i, j int) {
	p.triangles[i], p.triangles[j] = p.triangles[j], p.triangles[i]
}

func (p kdPlane) Len() int { return len(p.triangles) }

func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.triangles = p.triangles[start:end]
	return p
}
