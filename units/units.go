// Package units parses and formats frequencies and times with unit suffixes.
//
// ParseValueWithUnit accepts strings like "2.5 MHz" or "100ns" and returns the value
// in base units, hertz or seconds. FormatOutput does the opposite and picks the unit
// that keeps the displayed number readable.
package units

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avdva/nbit/internal/strutil"
	"github.com/avdva/nbit/numerr"
)

// Quantity selects a unit ladder for FormatOutput.
type Quantity int

const (
	// Frequency values are in hertz.
	Frequency Quantity = iota
	// Time values are in seconds.
	Time
)

// DefaultPrecision is the number of decimals kept by FormatOutput.
const DefaultPrecision = 2

const (
	stepFactor  = 1000
	upThreshold = 900
	// downThreshold is upThreshold one step lower.
	downThreshold = 0.9
)

// scales maps lowercase unit suffixes to their factor in base units.
var scales = map[string]decimal.Decimal{
	"hz":  decimal.New(1, 0),
	"khz": decimal.New(1, 3),
	"mhz": decimal.New(1, 6),
	"ghz": decimal.New(1, 9),
	"s":   decimal.New(1, 0),
	"ms":  decimal.New(1, -3),
	"us":  decimal.New(1, -6),
	"ns":  decimal.New(1, -9),
}

// ladders are ordered from the base unit, each step is stepFactor.
var ladders = [...][4]string{
	Frequency: {"Hz", "kHz", "MHz", "GHz"},
	Time:      {"s", "ms", "µs", "ns"},
}

var valueWithUnit = regexp.MustCompile(`^(\d+(?:\.\d+)?)([a-z]+)?$`)

// String returns the base unit symbol.
func (q Quantity) String() string {
	if q < 0 || int(q) >= len(ladders) {
		return "Quantity(" + strconv.Itoa(int(q)) + ")"
	}
	return ladders[q][0]
}

// ParseValueWithUnit parses a non-negative number with an optional unit suffix.
// Commas and whitespace are ignored, and the unit is case-insensitive.
// Known units are Hz, kHz, MHz, GHz, s, ms, us and ns.
// The result is in hertz or seconds. A number without a unit is returned as is,
// and it's up to the caller to decide what it measures.
func ParseValueWithUnit(input string) (float64, error) {
	cleaned := strings.ToLower(strutil.Strip(input, strutil.IsSeparator))
	match := valueWithUnit.FindStringSubmatch(cleaned)
	if match == nil {
		return 0, numerr.New(numerr.Format, input, "invalid input format")
	}
	value, err := decimal.NewFromString(match[1])
	if err != nil {
		return 0, numerr.Wrap(numerr.Format, input, err)
	}
	if unit := match[2]; unit != "" {
		scale, found := scales[unit]
		if !found {
			return 0, numerr.Newf(numerr.Unit, input, "unrecognized unit %q", unit)
		}
		value = value.Mul(scale)
	}
	f, _ := value.Float64()
	return f, nil
}

// FormatOutput formats a value in base units with the most readable unit.
// Frequencies of 900 and more move to the next larger unit, up to GHz.
// Times below 0.9 move to the next smaller unit, down to ns.
// The number is rounded to DefaultPrecision decimals unless highPrecision is set.
// An unknown quantity has no units, so only the number is returned.
func FormatOutput(value float64, q Quantity, highPrecision bool) string {
	if q < 0 || int(q) >= len(ladders) {
		if !highPrecision {
			value = Round(value, DefaultPrecision)
		}
		return formatNumber(value)
	}
	ladder := ladders[q]
	index := 0
	switch q {
	case Frequency:
		for value >= upThreshold && index < len(ladder)-1 {
			value /= stepFactor
			index++
		}
	default:
		for value < downThreshold && index < len(ladder)-1 {
			value *= stepFactor
			index++
		}
	}
	if !highPrecision {
		value = Round(value, DefaultPrecision)
	}
	return formatNumber(value) + " " + ladder[index]
}

// Round rounds value to 'precision' decimals, halves away from zero.
// It scales by 10^precision and back, so it's subject to float64 rounding.
func Round(value float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(value*p) / p
}

// formatNumber prints the shortest representation, switching to the exponent
// form for very large and very small magnitudes. The exponent has no leading zeros: 1e-7, 1e+21.
func formatNumber(value float64) string {
	if abs := math.Abs(value); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(value, 'g', -1, 64)
		// 'g' pads the exponent to two digits.
		if i := strings.IndexByte(s, 'e'); i >= 0 && i+2 < len(s) && s[i+2] == '0' {
			s = s[:i+2] + strings.TrimLeft(s[i+2:], "0")
		}
		return s
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
