package units

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/unit"
)

// quantityRelTol is the relative tolerance used when comparing unit-normalized magnitudes.
const quantityRelTol = 1e-12

// Quantity is a magnitude expressed in a unit.
type Quantity struct {
	Magnitude float64
	Unit      *Unit
}

// Q is shorthand for Quantity{Magnitude: v, Unit: u}.
func Q(v float64, u *Unit) Quantity { return Quantity{Magnitude: v, Unit: u} }

// Base returns the magnitude converted to the SI base unit.
func (q Quantity) Base() float64 { return q.Unit.ToBase(q.Magnitude) }

// In returns q expressed in unit u.
func (q Quantity) In(u *Unit) (Quantity, error) {
	v, err := Convert(q.Magnitude, q.Unit, u)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Magnitude: v, Unit: u}, nil
}

// Equal reports whether q and other describe the same physical amount.
// Quantities of different dimensions are never equal.
func (q Quantity) Equal(other Quantity) bool {
	if q.Unit == nil || other.Unit == nil || !q.Unit.Compatible(other.Unit) {
		return false
	}
	return scalar.EqualWithinAbsOrRel(q.Base(), other.Base(), 0, quantityRelTol)
}

func (q Quantity) String() string {
	if q.Unit == nil || q.Unit.symbol == "" {
		return fmt.Sprintf("%g", q.Magnitude)
	}
	return fmt.Sprintf("%g %s", q.Magnitude, q.Unit.symbol)
}

// PhysicalQuantity ties a display unit to the dimension it must have.
type PhysicalQuantity struct {
	unit *Unit
	base *Unit
}

// NewPhysicalQuantity fails with ErrDimensionMismatch if u does not have
// the dimensions of expected.
func NewPhysicalQuantity(u, expected *Unit) (PhysicalQuantity, error) {
	if err := checkDimensions(u, expected); err != nil {
		return PhysicalQuantity{}, err
	}
	return PhysicalQuantity{unit: u, base: expected.Base()}, nil
}

// Unit returns the display unit.
func (p PhysicalQuantity) Unit() *Unit { return p.unit }

// BaseUnit returns the SI base unit of the quantity's dimension.
func (p PhysicalQuantity) BaseUnit() *Unit { return p.base }

// SetUnit changes the display unit. The new unit must share the quantity's dimension.
func (p *PhysicalQuantity) SetUnit(u *Unit) error {
	if err := checkDimensions(u, p.base); err != nil {
		return err
	}
	p.unit = u
	return nil
}

// Measurement is a PhysicalQuantity holding a single canonical magnitude
// in the base unit. Changing the display unit never touches the stored magnitude.
type Measurement struct {
	PhysicalQuantity
	value *unit.Unit
}

// NewMeasurement creates a measurement of value in unit u. The unit must
// have the dimensions of expected.
func NewMeasurement(value float64, u, expected *Unit) (Measurement, error) {
	pq, err := NewPhysicalQuantity(u, expected)
	if err != nil {
		return Measurement{}, err
	}
	return Measurement{
		PhysicalQuantity: pq,
		value:            unit.New(u.ToBase(value), u.dims),
	}, nil
}

// Value returns the measurement in its display unit. The zero Measurement
// has no unit and its Value is a unitless zero.
func (m Measurement) Value() Quantity {
	u := m.unit
	if u == nil {
		u = m.base
	}
	if u == nil {
		return Quantity{Magnitude: m.BaseMagnitude()}
	}
	return Quantity{Magnitude: u.FromBase(m.BaseMagnitude()), Unit: u}
}

// BaseMagnitude returns the stored magnitude in the base unit.
func (m Measurement) BaseMagnitude() float64 {
	if m.value == nil {
		return 0
	}
	return m.value.Value()
}

// SetValue replaces the stored magnitude with q converted once to the base unit.
// The display unit is left unchanged.
func (m *Measurement) SetValue(q Quantity) error {
	if err := checkDimensions(q.Unit, m.base); err != nil {
		return err
	}
	m.value = unit.New(q.Base(), q.Unit.dims)
	return nil
}

// Equal reports whether both measurements describe the same physical amount.
func (m Measurement) Equal(other Measurement) bool {
	return m.Value().Equal(other.Value())
}

func (m Measurement) String() string { return m.Value().String() }
