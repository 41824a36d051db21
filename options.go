package ordsched

import "github.com/zoobzio/clockz"

// config holds the tunables a QueueScheduler is built with, assembled by
// applying a caller's Options over sane defaults.
type config struct {
	maxInputSize          int
	maxOutputSize         int
	clock                 clockz.Clock
	strictGeneratorErrors bool
}

func defaultConfig() config {
	return config{
		maxInputSize:  Unlimited,
		maxOutputSize: Unlimited,
		clock:         clockz.RealClock,
	}
}

// Option configures a QueueScheduler at construction time.
type Option func(*config)

// WithMaxInputSize bounds the input queue's capacity. The feeder task
// blocks once it is full, providing backpressure against a generator
// that outpaces the worker pool. Unlimited (0) is the default.
func WithMaxInputSize(n int) Option {
	return func(c *config) { c.maxInputSize = n }
}

// WithMaxOutputSize bounds the output queue's capacity. The scheduler
// task blocks once it is full, providing backpressure against a caller
// that is slow to Pop. Unlimited (0) is the default.
func WithMaxOutputSize(n int) Option {
	return func(c *config) { c.maxOutputSize = n }
}

// WithClock overrides the clock used for timestamps and durations,
// letting tests substitute a clockz.FakeClock for deterministic timing
// assertions.
func WithClock(clock clockz.Clock) Option {
	return func(c *config) { c.clock = clock }
}

// WithStrictGeneratorErrors changes how Launch treats a Generator error
// that is not ErrGeneratorExhausted. By default (false) any generator
// error is coalesced with clean exhaustion: the session ends normally
// and Pop's sentinel carries no error. When true, the generator's error
// is attached to the session's sentinel instead.
func WithStrictGeneratorErrors(strict bool) Option {
	return func(c *config) { c.strictGeneratorErrors = strict }
}
