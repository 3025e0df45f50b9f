package units

// Distance is a Measurement of length.
type Distance struct {
	Measurement
}

// NewDistance returns a Distance of value in unit u. A nil unit selects
// the process wide default length unit at the time of the call.
func NewDistance(value float64, u *Unit) (Distance, error) {
	return DefaultUnits.Distance(value, u)
}

// MustDistance is like NewDistance but panics on a dimension mismatch.
func MustDistance(value float64, u *Unit) Distance {
	d, err := NewDistance(value, u)
	if err != nil {
		panic(err)
	}
	return d
}

// DistanceFromBase returns a Distance of v metres displayed in unit u.
// A nil unit displays in metres.
func DistanceFromBase(v float64, u *Unit) Distance {
	if u == nil {
		u = Meter
	}
	d, err := newDistance(u.FromBase(v), u)
	if err != nil {
		panic(err)
	}
	return d
}

func newDistance(value float64, u *Unit) (Distance, error) {
	m, err := NewMeasurement(value, u, Meter)
	if err != nil {
		return Distance{}, err
	}
	return Distance{Measurement: m}, nil
}

// Meters returns the distance in metres.
func (d Distance) Meters() float64 { return d.BaseMagnitude() }

// Angle is a Measurement of plane angle.
type Angle struct {
	Measurement
}

// NewAngle returns an Angle of value in unit u. A nil unit selects
// the process wide default angle unit at the time of the call.
func NewAngle(value float64, u *Unit) (Angle, error) {
	return DefaultUnits.Angle(value, u)
}

// MustAngle is like NewAngle but panics on a dimension mismatch.
func MustAngle(value float64, u *Unit) Angle {
	a, err := NewAngle(value, u)
	if err != nil {
		panic(err)
	}
	return a
}

func newAngle(value float64, u *Unit) (Angle, error) {
	m, err := NewMeasurement(value, u, Radian)
	if err != nil {
		return Angle{}, err
	}
	return Angle{Measurement: m}, nil
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 { return a.BaseMagnitude() }
