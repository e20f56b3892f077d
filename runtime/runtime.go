// Package runtime holds the process-wide, read-only facts that
// request handlers depend on: the environment name, the process
// start time and the clock.
package runtime

import "time"

// processStart is captured once, when the binary is loaded.
var processStart = time.Now()

// Clock returns the current time.
type Clock func() time.Time

// Runtime is immutable after construction and safe for
// concurrent use.
type Runtime struct {
	environment string
	started     time.Time
	clock       Clock
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithClock replaces the wall clock used by the runtime.
func WithClock(clock Clock) Option {
	return func(r *Runtime) {
		r.clock = clock
	}
}

// WithStartTime overrides the process start time.
func WithStartTime(started time.Time) Option {
	return func(r *Runtime) {
		r.started = started
	}
}

// New creates a runtime from the given config.
func New(config Config, opts ...Option) *Runtime {
	environment := config.Environment
	if environment == "" {
		environment = DefaultEnvironment
	}

	r := &Runtime{
		environment: environment,
		started:     processStart,
		clock:       time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Environment returns the configured environment name.
func (r *Runtime) Environment() string {
	return r.environment
}

// Now returns the current time in UTC.
func (r *Runtime) Now() time.Time {
	return r.clock().UTC()
}

// Uptime returns the time elapsed since the process started.
// It is never negative.
func (r *Runtime) Uptime() time.Duration {
	uptime := r.clock().Sub(r.started)
	if uptime < 0 {
		return 0
	}

	return uptime
}
