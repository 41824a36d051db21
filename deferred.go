package ordsched

import "context"

// deferred is a single-value future: a handle a consumer can synchronously
// await, resolved exactly once by whichever worker task owns it. Go has
// no native future type, so a buffered channel of size one is the
// idiomatic substitute for a promise/future pair.
type deferred[Output any] struct {
	ch chan outcome[Output]
}

// outcome is the resolved value of a deferred result: either a produced
// Output, a failure, or — when sentinel is true — the end-of-output
// marker. Once pushed to ch, an outcome is never reassigned.
type outcome[Output any] struct {
	value    Output
	err      error
	sentinel bool
}

// newDeferred creates an unresolved deferred result and the resolver used
// to settle it exactly once.
func newDeferred[Output any]() (*deferred[Output], func(outcome[Output])) {
	d := &deferred[Output]{ch: make(chan outcome[Output], 1)}
	resolve := func(o outcome[Output]) {
		d.ch <- o
	}
	return d, resolve
}

// newSentinelDeferredErr creates an already-resolved deferred result
// carrying the end-of-output marker, used by the scheduler goroutine to
// publish the final sentinel without spawning a worker task. err is
// non-nil only when WithStrictGeneratorErrors is enabled and the
// generator failed with something other than ErrGeneratorExhausted.
func newSentinelDeferredErr[Output any](err error) *deferred[Output] {
	d := &deferred[Output]{ch: make(chan outcome[Output], 1)}
	d.ch <- outcome[Output]{sentinel: true, err: err}
	return d
}

// Await blocks until the deferred result is resolved, or ctx is canceled.
// The final bool is false exactly when the resolved outcome is the
// end-of-output sentinel.
func (d *deferred[Output]) Await(ctx context.Context) (Output, error, bool) {
	select {
	case o := <-d.ch:
		d.ch <- o // allow repeated Await calls to observe the same outcome
		return o.value, o.err, !o.sentinel
	case <-ctx.Done():
		var zero Output
		return zero, ctx.Err(), true
	}
}
