package render

import (
	"fmt"
	"io"
	"math"

	"github.com/soypat/geometry"
	"github.com/soypat/geometry/internal/d2"
	"github.com/soypat/geometry/spatial"
	"github.com/soypat/geometry/units"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotSize is the side length of saved curve plots.
const PlotSize = 6 * vg.Inch

// PlotCurves draws each trimmed curve projected onto plane, sampled at
// samples+1 points. Coordinates are shown in unit u, metres if nil.
func PlotCurves(plane spatial.Plane, curves []*geometry.TrimmedCurve, samples int, u *units.Unit) (*plot.Plot, error) {
	return PlotLabeledCurves(plane, curves, nil, samples, u)
}

// PlotLabeledCurves is PlotCurves with legend labels. Curves without a
// label are listed by index. Both axes span the same range so shapes are
// not distorted.
func PlotLabeledCurves(plane spatial.Plane, curves []*geometry.TrimmedCurve, labels []string, samples int, u *units.Unit) (*plot.Plot, error) {
	scale, err := unitScale(u)
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = units.Meter
	}
	p := plot.New()
	p.X.Label.Text = fmt.Sprintf("x (%s)", u.Symbol())
	p.Y.Label.Text = fmt.Sprintf("y (%s)", u.Symbol())
	var all d2.Set
	for i, tc := range curves {
		pts := CurvePolyline(tc, samples)
		xys := make(plotter.XYs, len(pts))
		for j, v := range pts {
			local := plane.ProjectPoint2D(spatial.Point3DFromBase(v, nil)).Vec()
			xys[j].X = scale * local.X
			xys[j].Y = scale * local.Y
			all = append(all, r2.Vec{X: xys[j].X, Y: xys[j].Y})
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("curve %d: %w", i, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		label := fmt.Sprintf("curve %d", i)
		if i < len(labels) {
			label = labels[i]
		}
		p.Legend.Add(label, line)
	}
	p.Add(plotter.NewGrid())
	if len(all) > 0 {
		b := all.Bounds()
		size := b.Size()
		if side := 1.1 * math.Max(size.X, size.Y); side > 0 {
			b = b.Enlarge(r2.Vec{X: side - size.X, Y: side - size.Y})
			p.X.Min, p.X.Max = b.Min.X, b.Max.X
			p.Y.Min, p.Y.Max = b.Min.Y, b.Max.Y
		}
	}
	return p, nil
}

// SavePlot writes p to path. The format follows the file extension.
func SavePlot(p *plot.Plot, path string) error {
	return p.Save(PlotSize, PlotSize, path)
}

// WritePlot writes p to w in the given format, such as "png" or "svg".
func WritePlot(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(PlotSize, PlotSize, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
