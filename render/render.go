// Package render samples trimmed curves and surfaces into polylines,
// triangle meshes and plots.
package render

import (
	"errors"
	"io"

	"github.com/soypat/geometry"
	"github.com/soypat/geometry/internal/d3"
	"github.com/soypat/geometry/units"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a triangle in space with counterclockwise winding.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the unit normal of t following its winding.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if two vertices of t are within tol of each other
// or the triangle has no area.
func (t Triangle3) Degenerate(tol float64) bool {
	if d3.EqualWithin(t.V[0], t.V[1], tol) || d3.EqualWithin(t.V[1], t.V[2], tol) || d3.EqualWithin(t.V[2], t.V[0], tol) {
		return true
	}
	return r3.Norm(r3.Cross(r3.Sub(t.V[1], t.V[0]), r3.Sub(t.V[2], t.V[0]))) <= tol*tol
}

// Bounds returns the bounding box of t.
func (t Triangle3) Bounds() d3.Box {
	return d3.Set(t.V[:]).Bounds()
}

// Renderer streams triangles. ReadTriangles returns io.EOF once every
// triangle has been read.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// RenderAll reads every triangle from r. Reaching io.EOF is not an error.
// When r reports MaxTriangles the result is allocated once at that size.
func RenderAll(r Renderer) ([]Triangle3, error) {
	capacity := trianglesInBuffer
	if s, ok := r.(interface{ MaxTriangles() int }); ok {
		capacity = s.MaxTriangles()
	}
	result := make([]Triangle3, 0, capacity)
	chunk := make([]Triangle3, trianglesInBuffer)
	for {
		nt, err := r.ReadTriangles(chunk)
		result = append(result, chunk[:nt]...)
		if err == io.EOF {
			return result, nil
		} else if err != nil {
			return result, err
		}
	}
}

// SurfaceRenderer tessellates trimmed surfaces on a regular grid of
// proportional parameters.
type SurfaceRenderer struct {
	surfaces []*geometry.TrimmedSurface
	nu, nv   int
	scale    float64
	next     int

	// pending holds tessellated triangles not yet read.
	pending []Triangle3
}

var _ Renderer = (*SurfaceRenderer)(nil)

// NewSurfaceRenderer returns a renderer dividing each surface into nu by nv
// cells. Vertices are written in unit u, metres if nil.
func NewSurfaceRenderer(nu, nv int, u *units.Unit, surfaces ...*geometry.TrimmedSurface) (*SurfaceRenderer, error) {
	if nu < 1 || nv < 1 {
		return nil, errors.New("render: grid needs at least one cell per direction")
	}
	scale, err := unitScale(u)
	if err != nil {
		return nil, err
	}
	return &SurfaceRenderer{surfaces: surfaces, nu: nu, nv: nv, scale: scale}, nil
}

func unitScale(u *units.Unit) (float64, error) {
	if u == nil {
		return 1, nil
	}
	if !u.Compatible(units.Meter) {
		return 0, units.ErrDimensionMismatch
	}
	return 1 / u.Factor(), nil
}

// ReadTriangles fills t with the next tessellated triangles.
func (r *SurfaceRenderer) ReadTriangles(t []Triangle3) (int, error) {
	for len(r.pending) < len(t) && r.next < len(r.surfaces) {
		r.pending = append(r.pending, Tessellate(r.surfaces[r.next], r.nu, r.nv, r.scale)...)
		r.next++
	}
	if len(r.pending) == 0 {
		return 0, io.EOF
	}
	n := copy(t, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// MaxTriangles returns the number of triangles r yields when no cell is
// degenerate.
func (r *SurfaceRenderer) MaxTriangles() int {
	return 2 * r.nu * r.nv * len(r.surfaces)
}

// Tessellate samples ts on an (nu+1) by (nv+1) grid and returns two
// triangles per cell, wound with increasing u then v so their normals
// follow the oriented surface normal. Vertices are multiplied by scale.
// Degenerate triangles, such as those at a sphere's poles, are omitted
// along with any triangle that has a non-finite vertex.
func Tessellate(ts *geometry.TrimmedSurface, nu, nv int, scale float64) []Triangle3 {
	grid := make([]r3.Vec, (nu+1)*(nv+1))
	for j := 0; j <= nv; j++ {
		for i := 0; i <= nu; i++ {
			p := ts.EvaluateProportion(float64(i)/float64(nu), float64(j)/float64(nv)).Position
			grid[j*(nu+1)+i] = r3.Scale(scale, p.Vec())
		}
	}
	at := func(i, j int) r3.Vec { return grid[j*(nu+1)+i] }
	// Tolerance scaled to the output unit.
	tol := 1e-12 * scale
	mesh := make([]Triangle3, 0, 2*nu*nv)
	for j := 0; j < nv; j++ {
		for i := 0; i < nu; i++ {
			a, b, c, d := at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)
			for _, tri := range [2]Triangle3{{V: [3]r3.Vec{a, b, c}}, {V: [3]r3.Vec{a, c, d}}} {
				if !tri.Degenerate(tol) && d3.IsFinite(tri.V[0]) && d3.IsFinite(tri.V[1]) && d3.IsFinite(tri.V[2]) {
					mesh = append(mesh, tri)
				}
			}
		}
	}
	return mesh
}

// CurvePolyline samples tc at n+1 evenly spaced proportions.
func CurvePolyline(tc *geometry.TrimmedCurve, n int) []r3.Vec {
	if n < 1 {
		n = 1
	}
	pts := make([]r3.Vec, n+1)
	for i := range pts {
		pts[i] = tc.EvaluateProportion(float64(i) / float64(n)).Position.Vec()
	}
	return pts
}
