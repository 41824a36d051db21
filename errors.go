package ordsched

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned at the engine boundary.
var (
	// ErrGeneratorExhausted signals end-of-stream from a Generator.
	ErrGeneratorExhausted = errors.New("ordsched: generator exhausted")

	// ErrSessionActive is returned by Launch when a session is already
	// running on this scheduler.
	ErrSessionActive = errors.New("ordsched: session already active")

	// ErrSchedulerClosed is returned by Launch and AddWorkers after Close.
	ErrSchedulerClosed = errors.New("ordsched: scheduler closed")

	// ErrIndexOutOfBounds reports an out-of-range index. No function in
	// this package returns it.
	ErrIndexOutOfBounds = errors.New("ordsched: index out of bounds")
)

// Error provides rich context about a worker failure: a timestamp, the
// worker identity and input that caused the failure, duration, and
// timeout/cancellation classification. ordsched has exactly one hop per
// item (the worker that processed it), so there is no multi-step path
// to record.
type Error[Output any] struct {
	Timestamp time.Time
	Worker    Identity
	Input     any
	Err       error
	Duration  time.Duration
	Timeout   bool
	Canceled  bool
}

// Error implements the error interface.
func (e *Error[Output]) Error() string {
	if e == nil {
		return "<nil>"
	}
	name := e.Worker.Name()
	if name == "" {
		name = "unknown-worker"
	}
	if e.Timeout {
		return fmt.Sprintf("%s timed out after %v: %v", name, e.Duration, e.Err)
	}
	if e.Canceled {
		return fmt.Sprintf("%s canceled after %v: %v", name, e.Duration, e.Err)
	}
	return fmt.Sprintf("%s failed after %v: %v", name, e.Duration, e.Err)
}

// Unwrap returns the underlying error, supporting errors.Is/errors.As.
func (e *Error[Output]) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsTimeout reports whether the failure was caused by a timeout,
// including context.DeadlineExceeded surfacing from the worker itself.
func (e *Error[Output]) IsTimeout() bool {
	if e == nil {
		return false
	}
	return e.Timeout || errors.Is(e.Err, context.DeadlineExceeded)
}

// IsCanceled reports whether the failure was caused by cancellation.
func (e *Error[Output]) IsCanceled() bool {
	if e == nil {
		return false
	}
	return e.Canceled || errors.Is(e.Err, context.Canceled)
}
