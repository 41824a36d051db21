package ordsched

import (
	"context"
	"errors"
	"sync"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// ErrNoSession is returned by Pop when Launch has never been called on
// this scheduler.
var ErrNoSession = errors.New("ordsched: no session has been launched")

// QueueScheduler is the public facade: an order-preserving parallel job
// scheduler over a fixed (but growable, between sessions) worker pool.
// A QueueScheduler is built once with New and may run many sessions over
// its lifetime via repeated Launch/Pop-to-sentinel/Launch cycles, reusing
// the same workers and their accumulated internal state across sessions
// until Close is called.
//
// It carries an embedded Identity, a metricz.Registry, a tracez.Tracer,
// and a hookz.Hooks instance, all exposed via Metrics/Tracer/
// hook-registration accessors.
type QueueScheduler[Input, Output any] struct {
	identity Identity
	cfg      config

	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[SchedulerEvent]

	mu     sync.Mutex
	pool   *workerPool[Input, Output]
	input  *BoundedQueue[item[Input]]
	output *BoundedQueue[*deferred[Output]]
	active bool
	closed bool
	cancel context.CancelFunc

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a QueueScheduler identified by identity, configured by
// opts. No workers are attached yet; call AddWorkers before the first
// Launch.
func New[Input, Output any](identity Identity, opts ...Option) *QueueScheduler[Input, Output] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	metrics := newMetricsRegistry()
	return &QueueScheduler[Input, Output]{
		identity: identity,
		cfg:      cfg,
		metrics:  metrics,
		tracer:   tracez.New(),
		hooks:    hookz.New[SchedulerEvent](),
		pool:     newWorkerPool[Input, Output](identity, metrics, cfg.clock),
	}
}

// Identity returns the scheduler's identity.
func (s *QueueScheduler[Input, Output]) Identity() Identity {
	return s.identity
}

// Metrics returns the metrics registry backing this scheduler's
// instrumentation.
func (s *QueueScheduler[Input, Output]) Metrics() *metricz.Registry {
	return s.metrics
}

// Tracer returns the tracer backing this scheduler's spans.
func (s *QueueScheduler[Input, Output]) Tracer() *tracez.Tracer {
	return s.tracer
}

// AddWorkers grows the pool by n workers built from factory. It may only
// be called between sessions, not while a session is active.
func (s *QueueScheduler[Input, Output]) AddWorkers(ctx context.Context, factory *WorkerFactory[Worker[Input, Output]], n int) error {
	s.mu.Lock()
	closed := s.closed
	active := s.active
	s.mu.Unlock()

	if closed {
		return ErrSchedulerClosed
	}
	if active {
		return ErrSessionActive
	}
	return s.pool.AddWorkers(ctx, factory, n)
}

// GetWorkers returns a diagnostic snapshot of the pool's idle workers.
// It is only valid between sessions and returns ErrSessionActive while a
// session is running.
func (s *QueueScheduler[Input, Output]) GetWorkers() ([]WorkerHandle, error) {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if active {
		return nil, ErrSessionActive
	}
	return s.pool.Snapshot(), nil
}

// Launch starts a new session: a feeder goroutine drains gen into a
// fresh bounded input queue, and a scheduler goroutine pairs each item
// with an idle worker and publishes a deferred result, in dispatch
// order, to a fresh bounded output queue. Launch returns once the
// session is underway; it does not block for the session to drain — use
// Pop to consume results until it reports the session is done.
//
// Only one session may be active on a scheduler at a time; Launch
// returns ErrSessionActive if called while a prior session has not yet
// drained, and ErrSchedulerClosed after Close.
func (s *QueueScheduler[Input, Output]) Launch(ctx context.Context, gen Generator[Input]) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSchedulerClosed
	}
	if s.active {
		s.mu.Unlock()
		return ErrSessionActive
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	inputQ := NewBoundedQueue[item[Input]](s.cfg.maxInputSize)
	outputQ := NewBoundedQueue[*deferred[Output]](s.cfg.maxOutputSize)

	s.active = true
	s.cancel = cancel
	s.input = inputQ
	s.output = outputQ
	s.mu.Unlock()

	var feederErr error
	feeder := &feederTask[Input]{
		identity: s.identity,
		input:    inputQ,
		metrics:  s.metrics,
		onDone:   func(err error) { feederErr = err },
	}
	sched := &schedulerTask[Input, Output]{
		identity:  s.identity,
		pool:      s.pool,
		input:     inputQ,
		output:    outputQ,
		metrics:   s.metrics,
		tracer:    s.tracer,
		clock:     s.cfg.clock,
		hooks:     s.hooks,
		strict:    s.cfg.strictGeneratorErrors,
		feederErr: &feederErr,
	}

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		go func() {
			defer s.wg.Done()
			feeder.run(sessionCtx, gen)
		}()
		sched.run(sessionCtx)
		s.mu.Lock()
		s.active = false
		s.mu.Unlock()
	}()

	return nil
}

// Pop blocks for the next result of the active (or most recently
// launched) session, in the order items were produced by the Generator.
// The final return value is false exactly once per session, when the
// session's sentinel is reached; any error attached to that sentinel
// comes from WithStrictGeneratorErrors. Pop returns ErrNoSession, with
// false, if Launch has never been called.
func (s *QueueScheduler[Input, Output]) Pop(ctx context.Context) (Output, error, bool) {
	s.mu.Lock()
	outputQ := s.output
	s.mu.Unlock()

	var zero Output
	if outputQ == nil {
		return zero, ErrNoSession, false
	}

	d := outputQ.Pop()
	v, err, ok := d.Await(ctx)
	if !ok {
		// The sentinel becomes visible before the session goroutines
		// finish and clear the active flag; wait for them so Launch can
		// start the next session as soon as Pop returns.
		s.wg.Wait()
	}
	return v, err, ok
}

// Close shuts down the scheduler: it cancels any active session, waits
// for the feeder, scheduler, and every outstanding worker task to
// return, and releases observability resources. Close is idempotent and
// safe to call more than once.
func (s *QueueScheduler[Input, Output]) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		cancel := s.cancel
		s.mu.Unlock()

		if cancel != nil {
			cancel()
		}
		s.wg.Wait()

		capitan.Info(context.Background(), SignalSchedulerClosed,
			FieldName.Field(s.identity.Name()),
		)

		s.tracer.Close()
		s.hooks.Close()
	})
	return nil
}
