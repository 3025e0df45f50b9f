package units

import (
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// Defaults holds the units assigned to measurements constructed without one.
// The zero value is not usable; use NewDefaults.
type Defaults struct {
	mu     sync.RWMutex
	length *Unit
	angle  *Unit
}

// DefaultUnits is the process wide Defaults, initialised to SI units.
// It lives for the whole process; reassigning a unit only affects
// measurements constructed afterwards.
var DefaultUnits = NewDefaults()

// NewDefaults returns Defaults set to metres and radians.
func NewDefaults() *Defaults {
	return &Defaults{length: Meter, angle: Radian}
}

// LengthUnit returns the current default length unit.
func (d *Defaults) LengthUnit() *Unit {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.length
}

// AngleUnit returns the current default angle unit.
func (d *Defaults) AngleUnit() *Unit {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.angle
}

// SetLength replaces the default length unit.
func (d *Defaults) SetLength(u *Unit) error {
	if err := checkDimensions(u, Meter); err != nil {
		return fmt.Errorf("default length unit: %w", err)
	}
	d.mu.Lock()
	prev := d.length
	d.length = u
	d.mu.Unlock()
	log.WithFields(log.Fields{"previous": prev.Symbol(), "unit": u.Symbol()}).Debug("default length unit changed")
	return nil
}

// SetAngle replaces the default angle unit.
func (d *Defaults) SetAngle(u *Unit) error {
	if err := checkDimensions(u, Radian); err != nil {
		return fmt.Errorf("default angle unit: %w", err)
	}
	d.mu.Lock()
	prev := d.angle
	d.angle = u
	d.mu.Unlock()
	log.WithFields(log.Fields{"previous": prev.Symbol(), "unit": u.Symbol()}).Debug("default angle unit changed")
	return nil
}

// Set replaces both default units under a single lock. Neither unit changes
// unless both have the right dimensions.
func (d *Defaults) Set(length, angle *Unit) error {
	if err := checkDimensions(length, Meter); err != nil {
		return fmt.Errorf("default length unit: %w", err)
	}
	if err := checkDimensions(angle, Radian); err != nil {
		return fmt.Errorf("default angle unit: %w", err)
	}
	d.mu.Lock()
	d.length, d.angle = length, angle
	d.mu.Unlock()
	log.WithFields(log.Fields{"length": length.Symbol(), "angle": angle.Symbol()}).Debug("default units changed")
	return nil
}

// Distance returns a Distance of value in u, or in d's length unit if u is nil.
func (d *Defaults) Distance(value float64, u *Unit) (Distance, error) {
	if u == nil {
		u = d.LengthUnit()
	}
	return newDistance(value, u)
}

// Angle returns an Angle of value in u, or in d's angle unit if u is nil.
func (d *Defaults) Angle(value float64, u *Unit) (Angle, error) {
	if u == nil {
		u = d.AngleUnit()
	}
	return newAngle(value, u)
}

// Config selects default units from the environment, e.g.
//  GEOMETRY_LENGTH_UNIT=mm GEOMETRY_ANGLE_UNIT=deg
type Config struct {
	LengthUnit string `envconfig:"LENGTH_UNIT" default:"m"`
	AngleUnit  string `envconfig:"ANGLE_UNIT" default:"rad"`
}

// LoadConfig reads Config from GEOMETRY_ prefixed environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("geometry", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply resolves the configured symbols and assigns them to d. On error d
// is left unchanged.
func (c Config) Apply(d *Defaults) error {
	length, err := Lookup(c.LengthUnit)
	if err != nil {
		return err
	}
	angle, err := Lookup(c.AngleUnit)
	if err != nil {
		return err
	}
	return d.Set(length, angle)
}
