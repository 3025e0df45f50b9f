package param

import (
	"fmt"
	"math"
)

// Form describes how a parameter range closes on itself.
type Form uint8

const (
	FormUnknown Form = iota
	FormOpen
	FormClosed
	FormPeriodic
)

func (f Form) String() string {
	switch f {
	case FormOpen:
		return "open"
	case FormClosed:
		return "closed"
	case FormPeriodic:
		return "periodic"
	}
	return "unknown"
}

// Type describes how the parameter relates to arc length.
type Type uint8

const (
	TypeOther Type = iota
	TypeLinear
	TypeCircular
)

func (t Type) String() string {
	switch t {
	case TypeLinear:
		return "linear"
	case TypeCircular:
		return "circular"
	}
	return "other"
}

// Parameterization describes the natural parameter range of a curve or
// one direction of a surface.
type Parameterization struct {
	Form     Form
	Type     Type
	Interval Interval
}

func (p Parameterization) String() string {
	return fmt.Sprintf("Parameterization(%v, %v, %v)", p.Form, p.Type, p.Interval)
}

// Wrap shifts t by whole periods into [lo, lo+period) when p is periodic
// with a closed Interval. Otherwise t is returned unchanged.
func (p Parameterization) Wrap(t, lo float64) float64 {
	if p.Form != FormPeriodic || !p.Interval.IsClosed() {
		return t
	}
	period := p.Interval.Hi - p.Interval.Lo
	if period <= 0 || math.IsInf(t, 0) || math.IsNaN(t) {
		return t
	}
	t = math.Mod(t-lo, period)
	if t < 0 {
		t += period
	}
	return lo + t
}
