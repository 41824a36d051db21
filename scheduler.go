package ordsched

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// schedulerTask is the per-session coordinator goroutine. It starts a
// feederTask, then repeatedly pops items off the input queue and pairs
// each with an idle worker, until the feeder's sentinel arrives.
//
// The load-bearing property: the idle worker is borrowed from the pool
// ON THIS GOROUTINE, before the worker task goroutine is spawned, and
// the resulting deferred result is pushed to the output queue before
// that goroutine is given a chance to run. That ordering is what makes
// output order match input order: the output queue only ever receives
// deferreds in dispatch order, never in completion order.
type schedulerTask[Input, Output any] struct {
	identity Identity
	pool     *workerPool[Input, Output]
	input    *BoundedQueue[item[Input]]
	output   *BoundedQueue[*deferred[Output]]
	metrics  *metricz.Registry
	tracer   *tracez.Tracer
	clock    clockz.Clock
	hooks    *hookz.Hooks[SchedulerEvent]

	// strict and feederErr implement WithStrictGeneratorErrors: feederErr
	// points at a variable the feeder goroutine writes to, under the
	// happens-before guarantee documented on feederTask.onDone, before
	// this task observes the sentinel input item.
	strict    bool
	feederErr *error
}

func (t *schedulerTask[Input, Output]) run(ctx context.Context) {
	ctx, span := t.tracer.StartSpan(ctx, SessionSpan)
	defer span.Finish()
	span.SetTag(TagPoolSize, strconv.Itoa(t.pool.Size()))

	if t.hooks.ListenerCount(EventSessionLaunched) > 0 {
		_ = t.hooks.Emit(ctx, EventSessionLaunched, SchedulerEvent{ //nolint:errcheck
			Scheduler: t.identity,
			PoolSize:  t.pool.Size(),
			Timestamp: t.clock.Now(),
		})
	}
	capitan.Info(ctx, SignalSessionLaunched,
		FieldName.Field(t.identity.Name()),
		FieldPoolSize.Field(t.pool.Size()),
		FieldTimestamp.Field(float64(t.clock.Now().Unix())),
	)

	var wg sync.WaitGroup
	for {
		it := t.input.Pop()
		inputLen := t.input.Len()
		t.metrics.Gauge(MetricInputQueueDepth).Set(float64(inputLen))
		if it.sentinel {
			wg.Wait()

			var sentinelErr error
			if t.strict && t.feederErr != nil && *t.feederErr != nil && !errors.Is(*t.feederErr, ErrGeneratorExhausted) {
				sentinelErr = *t.feederErr
			}
			t.output.Push(newSentinelDeferredErr[Output](sentinelErr))
			t.metrics.Gauge(MetricOutputQueueDepth).Set(float64(t.output.Len()))

			span.SetTag(TagSuccess, "true")
			if t.hooks.ListenerCount(EventSessionDrained) > 0 {
				_ = t.hooks.Emit(ctx, EventSessionDrained, SchedulerEvent{ //nolint:errcheck
					Scheduler: t.identity,
					PoolSize:  t.pool.Size(),
					Timestamp: t.clock.Now(),
				})
			}
			capitan.Info(ctx, SignalSessionDrained,
				FieldName.Field(t.identity.Name()),
				FieldTimestamp.Field(float64(t.clock.Now().Unix())),
			)
			return
		}

		pw := t.pool.Borrow(ctx)

		d, resolve := newDeferred[Output]()
		t.output.Push(d)
		outputLen := t.output.Len()
		t.metrics.Gauge(MetricOutputQueueDepth).Set(float64(outputLen))

		t.metrics.Counter(MetricItemsDispatched).Inc()
		if t.hooks.ListenerCount(EventItemDispatched) > 0 {
			_ = t.hooks.Emit(ctx, EventItemDispatched, SchedulerEvent{ //nolint:errcheck
				Scheduler: t.identity,
				WorkerID:  pw.id,
				Timestamp: t.clock.Now(),
			})
		}
		capitan.Info(ctx, SignalItemDispatched,
			FieldName.Field(t.identity.Name()),
			FieldWorkerID.Field(pw.id),
			FieldInputQueueLen.Field(inputLen),
			FieldOutputQueueLen.Field(outputLen),
		)

		wg.Add(1)
		go t.runWorker(ctx, pw, it.value, resolve, &wg)
	}
}

// runWorker invokes the borrowed worker against one item, then returns the
// worker to the pool and only after that resolves the deferred result. The
// return must happen strictly before the resolve on every path — including
// the panic-recovery path — so a caller who observes a resolved result can
// never see its worker still marked busy.
func (t *schedulerTask[Input, Output]) runWorker(
	ctx context.Context,
	pw *pooledWorker[Input, Output],
	input Input,
	resolve func(outcome[Output]),
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	workerID := NewIdentity(fmt.Sprintf("worker-%d", pw.id), "")

	spanCtx, span := t.tracer.StartSpan(ctx, DispatchSpan)
	span.SetTag(TagWorkerID, strconv.Itoa(pw.id))
	defer span.Finish()

	start := t.clock.Now()
	var result Output
	var err error

	func() {
		defer recoverFromPanic(&result, &err, workerID, input)
		result, err = pw.worker.Process(spanCtx, input)
	}()

	duration := t.clock.Since(start)

	if err != nil {
		span.SetTag(TagSuccess, "false")
		span.SetTag(TagError, err.Error())
		t.metrics.Counter(MetricItemsFailed).Inc()
		capitan.Warn(ctx, SignalItemFailed,
			FieldName.Field(t.identity.Name()),
			FieldWorkerID.Field(pw.id),
			FieldError.Field(err.Error()),
			FieldDuration.Field(duration.Seconds()),
		)
		if wrapped, ok := err.(*Error[Output]); ok {
			t.pool.Return(ctx, pw)
			resolve(outcome[Output]{err: wrapped})
		} else {
			wrappedErr := &Error[Output]{
				Timestamp: t.clock.Now(),
				Worker:    workerID,
				Input:     input,
				Err:       err,
				Duration:  duration,
			}
			t.pool.Return(ctx, pw)
			resolve(outcome[Output]{err: wrappedErr})
		}
	} else {
		span.SetTag(TagSuccess, "true")
		t.metrics.Counter(MetricItemsCompleted).Inc()
		capitan.Info(ctx, SignalItemCompleted,
			FieldName.Field(t.identity.Name()),
			FieldWorkerID.Field(pw.id),
			FieldDuration.Field(duration.Seconds()),
		)
		t.pool.Return(ctx, pw)
		resolve(outcome[Output]{value: result})
	}

	if t.hooks.ListenerCount(EventItemCompleted) > 0 {
		_ = t.hooks.Emit(ctx, EventItemCompleted, SchedulerEvent{ //nolint:errcheck
			Scheduler: t.identity,
			WorkerID:  pw.id,
			Success:   err == nil,
			Err:       err,
			Duration:  duration,
			Timestamp: t.clock.Now(),
		})
	}
}
