// Package units attaches physical units to scalar values and keeps
// arithmetic and comparisons dimensionally consistent.
//
// Quantities are stored once in the SI base unit of their dimension.
// The unit a quantity carries only controls how values are read back.
package units

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang/geo/s1"
	"gonum.org/v1/gonum/unit"
)

var (
	// ErrDimensionMismatch is returned when a unit's dimension does not match the expected one.
	ErrDimensionMismatch = errors.New("units: dimension mismatch")
	// ErrUnknownUnit is returned by Lookup for unregistered symbols.
	ErrUnknownUnit = errors.New("units: unknown unit")
)

// Unit is a named scale of a physical dimension. Units are compared by identity;
// use the package level values or Lookup to obtain one.
type Unit struct {
	name   string
	symbol string
	// factor converts a magnitude in this unit to the SI base unit.
	factor float64
	dims   unit.Dimensions
}

var (
	lengthDims = unit.Length(1).Unit().Dimensions()
	angleDims  = unit.Angle(1).Unit().Dimensions()
	areaDims   = unit.Length(1).Unit().Mul(unit.Length(1)).Dimensions()
	volumeDims = unit.Volume(1).Unit().Dimensions()
)

// Length units.
var (
	Meter      = &Unit{name: "meter", symbol: "m", factor: 1, dims: lengthDims}
	Kilometer  = &Unit{name: "kilometer", symbol: "km", factor: 1e3, dims: lengthDims}
	Centimeter = &Unit{name: "centimeter", symbol: "cm", factor: 1e-2, dims: lengthDims}
	Millimeter = &Unit{name: "millimeter", symbol: "mm", factor: 1e-3, dims: lengthDims}
	Micrometer = &Unit{name: "micrometer", symbol: "um", factor: 1e-6, dims: lengthDims}
	Inch       = &Unit{name: "inch", symbol: "in", factor: 0.0254, dims: lengthDims}
	Foot       = &Unit{name: "foot", symbol: "ft", factor: 0.3048, dims: lengthDims}
	Yard       = &Unit{name: "yard", symbol: "yd", factor: 0.9144, dims: lengthDims}
)

// Angle units.
var (
	Radian = &Unit{name: "radian", symbol: "rad", factor: float64(s1.Radian), dims: angleDims}
	Degree = &Unit{name: "degree", symbol: "deg", factor: float64(s1.Degree), dims: angleDims}
)

// Area units.
var (
	SquareMeter      = &Unit{name: "square meter", symbol: "m^2", factor: 1, dims: areaDims}
	SquareMillimeter = &Unit{name: "square millimeter", symbol: "mm^2", factor: 1e-6, dims: areaDims}
)

// Volume units.
var (
	CubicMeter      = &Unit{name: "cubic meter", symbol: "m^3", factor: 1, dims: volumeDims}
	CubicMillimeter = &Unit{name: "cubic millimeter", symbol: "mm^3", factor: 1e-9, dims: volumeDims}
)

// Dimensionless is the unit of pure numbers.
var Dimensionless = &Unit{name: "dimensionless", symbol: "", factor: 1, dims: unit.Dimensions{}}

var registry = []*Unit{
	Meter, Kilometer, Centimeter, Millimeter, Micrometer, Inch, Foot, Yard,
	Radian, Degree,
	SquareMeter, SquareMillimeter,
	CubicMeter, CubicMillimeter,
	Dimensionless,
}

// aliases maps alternative spellings to registered symbols.
var aliases = map[string]string{
	"meter": "m", "meters": "m", "metre": "m",
	"millimeter": "mm", "millimeters": "mm",
	"centimeter": "cm", "micron": "um", "µm": "um",
	"inch": "in", "inches": "in", "foot": "ft", "feet": "ft",
	"radian": "rad", "radians": "rad",
	"degree": "deg", "degrees": "deg", "°": "deg",
}

// Lookup returns the registered unit with the given symbol or name.
func Lookup(symbol string) (*Unit, error) {
	s := strings.TrimSpace(symbol)
	if alias, ok := aliases[strings.ToLower(s)]; ok {
		s = alias
	}
	for _, u := range registry {
		if u.symbol == s {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownUnit, symbol)
}

// Name returns the long name of the unit.
func (u *Unit) Name() string { return u.name }

// Symbol returns the short symbol of the unit, e.g. "mm".
func (u *Unit) Symbol() string { return u.symbol }

// Factor returns the multiplier converting a magnitude in u to the SI base unit.
func (u *Unit) Factor() float64 { return u.factor }

// Dimensions returns the physical dimensions of u.
func (u *Unit) Dimensions() unit.Dimensions { return u.dims }

func (u *Unit) String() string { return u.symbol }

// Compatible reports whether u and v measure the same dimension.
func (u *Unit) Compatible(v *Unit) bool {
	return unit.DimensionsMatch(unit.New(1, u.dims), unit.New(1, v.dims))
}

// ToBase converts a magnitude in u to the SI base unit.
func (u *Unit) ToBase(v float64) float64 { return v * u.factor }

// FromBase converts a magnitude in the SI base unit to u.
func (u *Unit) FromBase(v float64) float64 { return v / u.factor }

// Base returns the SI base unit sharing u's dimension.
func (u *Unit) Base() *Unit {
	for _, b := range []*Unit{Meter, Radian, SquareMeter, CubicMeter, Dimensionless} {
		if u.Compatible(b) {
			return b
		}
	}
	return u
}

// Convert converts value from one unit to another.
func Convert(value float64, from, to *Unit) (float64, error) {
	if err := checkDimensions(from, to); err != nil {
		return 0, err
	}
	return to.FromBase(from.ToBase(value)), nil
}

func checkDimensions(u, expected *Unit) error {
	if u == nil || expected == nil {
		return fmt.Errorf("%w: nil unit", ErrDimensionMismatch)
	}
	if !u.Compatible(expected) {
		return fmt.Errorf("%w: %s (%v) is not compatible with %s (%v)",
			ErrDimensionMismatch, u.name, u.dims, expected.name, expected.dims)
	}
	return nil
}
