// Package clock converts between an oscillator frequency and its cycle times.
//
// A Calculator keeps four fields: frequency, total cycle time, half cycle time,
// and the cycle time left after the propagation delay. Editing any of them
// recomputes the other three.
package clock

import (
	"fmt"
	"math"
	"strings"

	"github.com/avdva/nbit/numerr"
	"github.com/avdva/nbit/units"
)

// Field identifies a calculator field.
type Field int

const (
	Frequency Field = iota
	TotalCycleTime
	HalfCycleTime
	AdjustedCycleTime

	numFields
)

var fieldNames = [numFields]string{
	Frequency:         "frequency",
	TotalCycleTime:    "total cycle time",
	HalfCycleTime:     "half cycle time",
	AdjustedCycleTime: "adjusted cycle time",
}

// String returns a human-readable field name.
func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// ParseField returns a field by its name or by its first word,
// like "frequency", "total", or "adjusted cycle time".
func ParseField(s string) (Field, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range fieldNames {
		if s == name || s == strings.Fields(name)[0] {
			return Field(f), nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", s)
}

// Readout holds the displayed text of every field.
type Readout [numFields]string

// Get returns the text of a field.
func (r Readout) Get(f Field) string {
	return r[f]
}

// Calculator is the state of the frequency form.
// It's not safe for concurrent use.
type Calculator struct {
	delay         float64 // seconds
	highPrecision bool
	fields        Readout
	last          Field
}

// New returns a calculator with the given options.
func New(opts ...Option) *Calculator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Calculator{
		delay:         o.delay.Seconds(),
		highPrecision: o.highPrecision,
	}
}

// Set changes a field and recomputes the others from it.
// On error, the other fields keep their previous values.
func (c *Calculator) Set(f Field, input string) (Readout, error) {
	if f < 0 || f >= numFields {
		return c.fields, fmt.Errorf("unknown field %v", f)
	}
	c.fields[f] = input
	c.last = f
	return c.render()
}

// SetHighPrecision turns rounding off or on, and recomputes the fields
// from the field that was set last.
func (c *Calculator) SetHighPrecision(on bool) (Readout, error) {
	c.highPrecision = on
	if c.fields[c.last] == "" {
		return c.fields, nil
	}
	return c.render()
}

// Readout returns the current fields.
func (c *Calculator) Readout() Readout {
	return c.fields
}

// LastSource returns the field that was set last.
func (c *Calculator) LastSource() Field {
	return c.last
}

func (c *Calculator) render() (Readout, error) {
	period, err := c.period(c.last, c.fields[c.last])
	if err != nil {
		return c.fields, fmt.Errorf("%s: %w", c.last, err)
	}
	for f := Field(0); f < numFields; f++ {
		if f != c.last {
			c.fields[f] = c.format(f, period)
		}
	}
	return c.fields, nil
}

// period returns the total cycle time in seconds.
func (c *Calculator) period(f Field, input string) (float64, error) {
	v, err := units.ParseValueWithUnit(input)
	if err != nil {
		return 0, err
	}
	var period float64
	switch f {
	case Frequency:
		period = 1 / v
	case TotalCycleTime:
		period = v
	case HalfCycleTime:
		period = 2 * v
	case AdjustedCycleTime:
		period = v + c.delay
	}
	if period <= 0 || math.IsInf(period, 0) || math.IsNaN(period) {
		return 0, numerr.Newf(numerr.Range, input, "value '%s' gives no valid cycle time", input)
	}
	return period, nil
}

func (c *Calculator) format(f Field, period float64) string {
	switch f {
	case Frequency:
		return units.FormatOutput(1/period, units.Frequency, c.highPrecision)
	case HalfCycleTime:
		return units.FormatOutput(period/2, units.Time, c.highPrecision)
	case AdjustedCycleTime:
		return units.FormatOutput(period-c.delay, units.Time, c.highPrecision)
	default:
		return units.FormatOutput(period, units.Time, c.highPrecision)
	}
}
