package clock

import "time"

// DefaultPropagationDelay is the delay of six logic ICs in series.
const DefaultPropagationDelay = 40 * time.Nanosecond

type options struct {
	delay         time.Duration
	highPrecision bool
}

// Option configures a Calculator.
type Option func(*options)

// WithPropagationDelay sets the delay subtracted from the total cycle time
// to get the adjusted cycle time. Negative values are treated as zero.
func WithPropagationDelay(d time.Duration) Option {
	return func(o *options) {
		if d < 0 {
			d = 0
		}
		o.delay = d
	}
}

// WithHighPrecision disables rounding of the displayed values.
func WithHighPrecision(on bool) Option {
	return func(o *options) {
		o.highPrecision = on
	}
}

func defaultOptions() options {
	return options{delay: DefaultPropagationDelay}
}
