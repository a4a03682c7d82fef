package existence

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// DefaultLatency is the simulated round trip of a lookup.
const DefaultLatency = 750 * time.Millisecond

// Checker answers whether a name is already taken.
type Checker interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context, name string) (bool, error)

func (f CheckerFunc) Exists(ctx context.Context, name string) (bool, error) {
	return f(ctx, name)
}

// StaticChecker looks names up in a fixed set after a fixed delay. It
// stands in for a remote user directory.
type StaticChecker struct {
	names   []string
	latency time.Duration
}

// Option configures a StaticChecker.
type Option func(*StaticChecker)

// WithLatency overrides DefaultLatency. Negative values are treated as zero.
func WithLatency(d time.Duration) Option {
	return func(c *StaticChecker) {
		c.latency = max(d, 0)
	}
}

// NewStaticChecker returns a checker over a copy of names. Matching is
// exact and case-sensitive.
func NewStaticChecker(names []string, opts ...Option) *StaticChecker {
	c := &StaticChecker{
		names:   slices.Clone(names),
		latency: DefaultLatency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Exists waits for the configured latency, then reports membership. It
// returns the context error if ctx ends first.
func (c *StaticChecker) Exists(ctx context.Context, name string) (bool, error) {
	if c.latency > 0 {
		timer := time.NewTimer(c.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return false, err
	}
	return slices.Contains(c.names, name), nil
}

// Names returns a copy of the known names.
func (c *StaticChecker) Names() []string {
	return slices.Clone(c.names)
}

// Rule wraps a Checker as the asynchronous userExists rule. Non-string
// values fail the check with ErrUnsupportedValue.
func Rule(c Checker) validator.AsyncRule {
	return validator.AsyncRule{
		Kind: validator.KindUserExists,
		Check: func(ctx context.Context, value any) (bool, error) {
			name, ok := value.(string)
			if !ok {
				return false, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
			}
			return c.Exists(ctx, name)
		},
	}
}
