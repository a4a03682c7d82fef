package form

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// Option configures a Form.
type Option func(*options)

type options struct {
	registry    *validator.Registry
	logger      *slog.Logger
	cross       []CrossFieldRule
	debounce    time.Duration
	reporter    Reporter
	eventBuffer int
}

func defaultOptions() *options {
	return &options{
		eventBuffer: 16,
	}
}

// WithRegistry evaluates rules with reg instead of validator.DefaultRegistry.
func WithRegistry(reg *validator.Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCrossFieldRules adds cross-field rules, evaluated in order.
func WithCrossFieldRules(rules ...CrossFieldRule) Option {
	return func(o *options) {
		o.cross = append(o.cross, rules...)
	}
}

// WithDebounce delays each asynchronous check by d. A change arriving
// within the window supersedes the pending check before it starts.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = max(d, 0)
	}
}

// WithReporter sets where Submit sends its payload. Defaults to a
// LogReporter on the form's logger.
func WithReporter(r Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithEventBuffer sets the per-subscriber event buffer. Events that do not
// fit are dropped for that subscriber.
func WithEventBuffer(n int) Option {
	return func(o *options) {
		o.eventBuffer = n
	}
}
