package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/soypat/geometry"
	"github.com/soypat/geometry/curves"
	"github.com/soypat/geometry/param"
	"github.com/soypat/geometry/spatial"
	"github.com/soypat/geometry/surfaces"
	"github.com/soypat/geometry/units"
)

// Scene is the TOML description of a set of trimmed curves and surfaces.
// Lengths are read in LengthUnit and angular parameters in AngleUnit.
// Empty units fall back to the process defaults.
type Scene struct {
	LengthUnit string `toml:"length_unit"`
	AngleUnit  string `toml:"angle_unit"`

	Curves   []CurveEntry   `toml:"curve"`
	Surfaces []SurfaceEntry `toml:"surface"`
}

// CurveEntry describes one trimmed curve. Kind is one of line, circle or
// ellipse. Unset direction vectors default to the world X and Z axes.
type CurveEntry struct {
	Name      string     `toml:"name"`
	Kind      string     `toml:"kind"`
	Origin    [3]float64 `toml:"origin"`
	Direction [3]float64 `toml:"direction"`
	Reference [3]float64 `toml:"reference"`
	Axis      [3]float64 `toml:"axis"`
	Radius    float64    `toml:"radius"`
	Major     float64    `toml:"major"`
	Minor     float64    `toml:"minor"`
	Interval  [2]float64 `toml:"interval"`
	Reversed  bool       `toml:"reversed"`
}

// SurfaceEntry describes one trimmed surface. Kind is one of plane,
// cylinder, sphere or torus.
type SurfaceEntry struct {
	Name      string     `toml:"name"`
	Kind      string     `toml:"kind"`
	Origin    [3]float64 `toml:"origin"`
	Reference [3]float64 `toml:"reference"`
	Axis      [3]float64 `toml:"axis"`
	Radius    float64    `toml:"radius"`
	Major     float64    `toml:"major"`
	Minor     float64    `toml:"minor"`
	U         [2]float64 `toml:"u"`
	V         [2]float64 `toml:"v"`
	Reversed  bool       `toml:"reversed"`
}

// Model is a built Scene.
type Model struct {
	LengthUnit *units.Unit
	AngleUnit  *units.Unit

	Curves   []NamedCurve
	Surfaces []NamedSurface
}

// NamedCurve is a trimmed curve with the name it was given in the scene.
type NamedCurve struct {
	Name string
	*geometry.TrimmedCurve
}

// NamedSurface is a trimmed surface with the name it was given in the scene.
type NamedSurface struct {
	Name string
	*geometry.TrimmedSurface
}

// TrimmedCurves returns the model's curves without their names.
func (m *Model) TrimmedCurves() []*geometry.TrimmedCurve {
	out := make([]*geometry.TrimmedCurve, len(m.Curves))
	for i := range m.Curves {
		out[i] = m.Curves[i].TrimmedCurve
	}
	return out
}

// TrimmedSurfaces returns the model's surfaces without their names.
func (m *Model) TrimmedSurfaces() []*geometry.TrimmedSurface {
	out := make([]*geometry.TrimmedSurface, len(m.Surfaces))
	for i := range m.Surfaces {
		out[i] = m.Surfaces[i].TrimmedSurface
	}
	return out
}

// DecodeScene reads a Scene from TOML. Keys the Scene does not define are an error.
func DecodeScene(r io.Reader) (*Scene, error) {
	var s Scene
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("scene: unknown keys %s", strings.Join(keys, ", "))
	}
	return &s, nil
}

// LoadScene decodes and builds the scene at path.
func LoadScene(path string, defaults *units.Defaults) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := DecodeScene(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s.Build(defaults)
}

// Build constructs the geometry described by s. defaults supplies the
// units s leaves unset.
func (s *Scene) Build(defaults *units.Defaults) (*Model, error) {
	m := &Model{LengthUnit: defaults.LengthUnit(), AngleUnit: defaults.AngleUnit()}
	var err error
	if s.LengthUnit != "" {
		if m.LengthUnit, err = lookupUnit(s.LengthUnit, units.Meter); err != nil {
			return nil, fmt.Errorf("length_unit: %w", err)
		}
	}
	if s.AngleUnit != "" {
		if m.AngleUnit, err = lookupUnit(s.AngleUnit, units.Radian); err != nil {
			return nil, fmt.Errorf("angle_unit: %w", err)
		}
	}
	for i, e := range s.Curves {
		tc, err := m.buildCurve(e)
		if err != nil {
			return nil, fmt.Errorf("curve %d (%s): %w", i, e.Kind, err)
		}
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("curve%d", i)
		}
		m.Curves = append(m.Curves, NamedCurve{Name: name, TrimmedCurve: tc})
	}
	for i, e := range s.Surfaces {
		ts, err := m.buildSurface(e)
		if err != nil {
			return nil, fmt.Errorf("surface %d (%s): %w", i, e.Kind, err)
		}
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("surface%d", i)
		}
		m.Surfaces = append(m.Surfaces, NamedSurface{Name: name, TrimmedSurface: ts})
	}
	return m, nil
}

func lookupUnit(symbol string, expected *units.Unit) (*units.Unit, error) {
	u, err := units.Lookup(symbol)
	if err != nil {
		return nil, err
	}
	if !u.Compatible(expected) {
		return nil, fmt.Errorf("%w: %s is not a unit of %s", units.ErrDimensionMismatch, u.Symbol(), expected.Name())
	}
	return u, nil
}

func (m *Model) buildCurve(e CurveEntry) (*geometry.TrimmedCurve, error) {
	origin, err := m.point(e.Origin)
	if err != nil {
		return nil, err
	}
	reference := vecOr(e.Reference, spatial.UnitX.Vector())
	axis := vecOr(e.Axis, spatial.UnitZ.Vector())
	var c geometry.Curve
	switch e.Kind {
	case "line":
		c, err = curves.NewLine(origin, vecOr(e.Direction, spatial.UnitX.Vector()))
	case "circle":
		c, err = curves.NewCircle(origin, m.distance(e.Radius), reference, axis)
	case "ellipse":
		c, err = curves.NewEllipse(origin, m.distance(e.Major), m.distance(e.Minor), reference, axis)
	default:
		return nil, fmt.Errorf("unknown curve kind %q", e.Kind)
	}
	if err != nil {
		return nil, err
	}
	iv, err := m.interval(e.Interval, c.Parameterization())
	if err != nil {
		return nil, err
	}
	tc, err := geometry.NewTrimmedCurve(c, iv)
	if err != nil {
		return nil, err
	}
	if e.Reversed {
		tc = tc.Reversed()
	}
	return tc, nil
}

func (m *Model) buildSurface(e SurfaceEntry) (*geometry.TrimmedSurface, error) {
	origin, err := m.point(e.Origin)
	if err != nil {
		return nil, err
	}
	reference := vecOr(e.Reference, spatial.UnitX.Vector())
	axis := vecOr(e.Axis, spatial.UnitZ.Vector())
	var s geometry.Surface
	switch e.Kind {
	case "plane":
		s, err = surfaces.NewPlaneSurface(origin, reference, axis)
	case "cylinder":
		s, err = surfaces.NewCylinder(origin, m.distance(e.Radius), reference, axis)
	case "sphere":
		s, err = surfaces.NewSphere(origin, m.distance(e.Radius), reference, axis)
	case "torus":
		s, err = surfaces.NewTorus(origin, m.distance(e.Major), m.distance(e.Minor), reference, axis)
	default:
		return nil, fmt.Errorf("unknown surface kind %q", e.Kind)
	}
	if err != nil {
		return nil, err
	}
	var box param.BoxUV
	if box.U, err = m.interval(e.U, s.ParameterizationU()); err != nil {
		return nil, fmt.Errorf("u: %w", err)
	}
	if box.V, err = m.interval(e.V, s.ParameterizationV()); err != nil {
		return nil, fmt.Errorf("v: %w", err)
	}
	ts, err := geometry.NewTrimmedSurface(s, box)
	if err != nil {
		return nil, err
	}
	if e.Reversed {
		ts = ts.Reversed()
	}
	return ts, nil
}

func (m *Model) point(v [3]float64) (spatial.Point3D, error) {
	return spatial.NewPoint3D(v[0], v[1], v[2], m.LengthUnit)
}

// distance never fails since LengthUnit is checked in Build.
// Non-positive radii are rejected by the constructors.
func (m *Model) distance(v float64) units.Distance {
	return units.MustDistance(v, m.LengthUnit)
}

// interval converts a scene range to the curve's parameter space. Linear
// parameters are lengths, every other kind is read as an angle.
func (m *Model) interval(v [2]float64, p param.Parameterization) (param.Interval, error) {
	u := m.AngleUnit
	if p.Type == param.TypeLinear {
		u = m.LengthUnit
	}
	return param.NewInterval(u.ToBase(v[0]), u.ToBase(v[1]))
}

func vecOr(v [3]float64, def spatial.Vector3D) spatial.Vector3D {
	if v == [3]float64{} {
		return def
	}
	return spatial.Vec3(v[0], v[1], v[2])
}
