package cmd

import (
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/soypat/geometry/render"
	"github.com/soypat/geometry/spatial"
	"github.com/spf13/cobra"
)

var (
	evalSamples int

	plotOut     string
	plotSamples int

	stlOut string
	stlNU  int
	stlNV  int

	projectPoint []float64
	projectCells int
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate the scene at proportional parameters.",
	Long: `eval prints position and tangent for every curve and position and
normal for every surface at samples+1 evenly spaced proportional parameters
in [0, 1] along each direction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if evalSamples < 1 {
			return errors.New("eval: samples must be positive")
		}
		return Evaluate(cmd.OutOrStdout(), model, evalSamples)
	},
	DisableAutoGenTag: true,
}

// Evaluate writes evaluations of every entity in m to w.
func Evaluate(w io.Writer, m *Model, samples int) error {
	for _, c := range m.Curves {
		if _, err := fmt.Fprintf(w, "%s: %v length=%v\n", c.Name, c.TrimmedCurve, c.Length()); err != nil {
			return err
		}
		for i := 0; i <= samples; i++ {
			u := float64(i) / float64(samples)
			ev := c.EvaluateProportion(u)
			pos, err := ev.Position.WithUnit(m.LengthUnit)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "\tu=%.4g t=%.6g position=%v tangent=%v\n", u, ev.Parameter, pos, ev.Tangent)
			if err != nil {
				return err
			}
		}
	}
	for _, s := range m.Surfaces {
		if _, err := fmt.Fprintf(w, "%s: %v area=%.6g m^2\n", s.Name, s.TrimmedSurface, s.Area()); err != nil {
			return err
		}
		for j := 0; j <= samples; j++ {
			v := float64(j) / float64(samples)
			for i := 0; i <= samples; i++ {
				u := float64(i) / float64(samples)
				ev := s.EvaluateProportion(u, v)
				pos, err := ev.Position.WithUnit(m.LengthUnit)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(w, "\tu=%.4g v=%.4g position=%v normal=%v\n", u, v, pos, ev.Normal)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot the scene's curves.",
	Long: `plot projects every curve onto the world XY plane and saves the
result as an image. The output format follows the file extension.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(model.Curves) == 0 {
			return errors.New("plot: scene has no curves")
		}
		labels := make([]string, len(model.Curves))
		for i, c := range model.Curves {
			labels[i] = c.Name
		}
		p, err := render.PlotLabeledCurves(spatial.XYPlane, model.TrimmedCurves(), labels, plotSamples, model.LengthUnit)
		if err != nil {
			return err
		}
		if err := render.SavePlot(p, plotOut); err != nil {
			return err
		}
		log.WithFields(log.Fields{"out": plotOut, "curves": len(model.Curves)}).Info("plot written")
		return nil
	},
	DisableAutoGenTag: true,
}

var stlCmd = &cobra.Command{
	Use:   "stl",
	Short: "Mesh the scene's surfaces to an STL file.",
	Long: `stl samples every trimmed surface on an nu by nv grid and writes the
resulting triangles to a binary STL file. Vertices are written in the
scene's length unit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(model.Surfaces) == 0 {
			return errors.New("stl: scene has no surfaces")
		}
		r, err := render.NewSurfaceRenderer(stlNU, stlNV, model.LengthUnit, model.TrimmedSurfaces()...)
		if err != nil {
			return err
		}
		if err := render.CreateSTL(stlOut, r); err != nil {
			return err
		}
		log.WithFields(log.Fields{"out": stlOut, "surfaces": len(model.Surfaces)}).Info("stl written")
		return nil
	},
	DisableAutoGenTag: true,
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project a point onto the nearest surface.",
	Long: `project finds the surface closest to --point, given in the scene's
length unit, using a coarse mesh of every surface, then prints the exact
projection onto that surface and onto every curve.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(projectPoint) != 3 {
			return fmt.Errorf("project: point needs 3 coordinates, got %d", len(projectPoint))
		}
		p, err := spatial.NewPoint3D(projectPoint[0], projectPoint[1], projectPoint[2], model.LengthUnit)
		if err != nil {
			return err
		}
		return Project(cmd.OutOrStdout(), model, p, projectCells)
	},
	DisableAutoGenTag: true,
}

// Project writes the projections of p onto the nearest surface of m and
// onto each of its curves to w.
func Project(w io.Writer, m *Model, p spatial.Point3D, cells int) error {
	if len(m.Surfaces) > 0 {
		idx, err := render.NewMeshIndex(cells, cells, m.TrimmedSurfaces()...)
		if err != nil {
			return err
		}
		i, ev := idx.Project(p)
		pos, err := ev.Position.WithUnit(m.LengthUnit)
		if err != nil {
			return err
		}
		u, v := m.Surfaces[i].ProportionalParameters(ev.Parameter)
		_, err = fmt.Fprintf(w, "%s: u=%.4g v=%.4g position=%v distance=%v\n", m.Surfaces[i].Name, u, v, pos, p.DistanceTo(ev.Position))
		if err != nil {
			return err
		}
	}
	for _, c := range m.Curves {
		ev := c.ProjectPoint(p)
		pos, err := ev.Position.WithUnit(m.LengthUnit)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s: t=%.6g position=%v distance=%v\n", c.Name, ev.Parameter, pos, p.DistanceTo(ev.Position))
		if err != nil {
			return err
		}
	}
	return nil
}
