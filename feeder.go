package ordsched

import (
	"context"
	"errors"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/metricz"
)

// Generator produces the next Input for a session. Returning
// ErrGeneratorExhausted — or wrapping it with errors.Is semantics —
// signals end of stream. Any other error is, by default, treated
// identically to exhaustion: the feeder does not distinguish
// end-of-stream from generator failure in the data path, unless
// WithStrictGeneratorErrors is set. Generator is invoked from a single
// goroutine (the feeder) and need not be safe for concurrent use.
type Generator[Input any] func(context.Context) (Input, error)

// item is the element type of the input queue: either a real Input value
// or, once, the null sentinel meaning no further items will arrive.
type item[Input any] struct {
	value    Input
	sentinel bool
}

// feederTask drains a Generator into the bounded input queue until the
// generator signals exhaustion or any other failure, then pushes exactly
// one sentinel item and returns. The feeder itself does not decide
// whether a non-exhaustion error is coalesced or surfaced — it always
// reports its terminal error via onDone; schedulerTask decides what to
// do with it based on WithStrictGeneratorErrors. It runs on its own
// goroutine, started by the scheduler goroutine at the beginning of each
// session.
type feederTask[Input any] struct {
	identity Identity
	input    *BoundedQueue[item[Input]]
	metrics  *metricz.Registry

	// onDone, if set, is invoked with the terminal error (exhaustion or
	// otherwise) exactly once, immediately before the sentinel item is
	// pushed — the scheduler goroutine only ever observes onDone's write
	// after popping that sentinel, since both happen through the same
	// BoundedQueue mutex.
	onDone func(error)
}

func (f *feederTask[Input]) run(ctx context.Context, gen Generator[Input]) {
	capitan.Info(ctx, SignalFeederStarted, FieldName.Field(f.identity.Name()))

	for {
		select {
		case <-ctx.Done():
			f.finish(ctx.Err())
			return
		default:
		}

		value, err := gen(ctx)
		if err != nil {
			if errors.Is(err, ErrGeneratorExhausted) {
				capitan.Info(ctx, SignalFeederExhausted, FieldName.Field(f.identity.Name()))
			} else {
				capitan.Warn(ctx, SignalFeederFailed,
					FieldName.Field(f.identity.Name()),
					FieldError.Field(err.Error()),
				)
			}
			f.finish(err)
			return
		}

		f.input.Push(item[Input]{value: value})
		if f.metrics != nil {
			f.metrics.Counter(MetricItemsFed).Inc()
			f.metrics.Gauge(MetricInputQueueDepth).Set(float64(f.input.Len()))
		}
	}
}

func (f *feederTask[Input]) finish(err error) {
	if f.onDone != nil {
		f.onDone(err)
	}
	f.input.Push(item[Input]{sentinel: true})
}
