package ordsched

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/metricz"
)

// pooledWorker pairs a caller-supplied worker with its assigned id. It is
// the element type of the idle-worker BoundedQueue.
type pooledWorker[Input, Output any] struct {
	id     int
	worker Worker[Input, Output]
}

// workerPool owns the set of workers for a QueueScheduler, materialized
// as a BoundedQueue of idle workers. Capacity equals the final pool
// size: every push back from a finished worker task can never block in
// practice, but the blocking discipline is still honored for
// correctness.
//
// Adding workers and borrowing/returning them are logged via capitan and
// reflected in a shared metricz registry, the same instrumentation
// applied to a semaphore's acquire/release path.
type workerPool[Input, Output any] struct {
	mu       sync.Mutex
	idle     *BoundedQueue[*pooledWorker[Input, Output]]
	size     int
	nextID   int64
	identity Identity
	metrics  *metricz.Registry
	clock    clockz.Clock
}

func newWorkerPool[Input, Output any](identity Identity, metrics *metricz.Registry, clock clockz.Clock) *workerPool[Input, Output] {
	return &workerPool[Input, Output]{
		idle:     NewBoundedQueue[*pooledWorker[Input, Output]](Unlimited),
		identity: identity,
		metrics:  metrics,
		clock:    clock,
	}
}

// AddWorkers builds n workers from factory and enqueues them as idle. Ids
// are assigned monotonically across every call made on this pool's
// lifetime, never resetting, so a worker's id stays stable across
// repeated AddWorkers calls.
func (p *workerPool[Input, Output]) AddWorkers(ctx context.Context, factory *WorkerFactory[Worker[Input, Output]], n int) error {
	for i := 0; i < n; i++ {
		id := int(atomic.AddInt64(&p.nextID, 1)) - 1
		w, err := factory.BuildNew(id)
		if err != nil {
			return err
		}

		// The idle queue's capacity must track the pool size exactly: it
		// must never contain duplicates, and a return-push must never
		// actually block. BoundedQueue has no resize primitive, so
		// growth is handled by recreating the queue and reseeding it
		// under the pool lock; AddWorkers only happens before Launch, so
		// there is no concurrent borrower to race with.
		p.mu.Lock()
		p.size++
		newSize := p.size
		p.growLocked(newSize)
		p.idle.Push(&pooledWorker[Input, Output]{id: id, worker: w})
		p.mu.Unlock()

		capitan.Info(ctx, SignalWorkerAdded,
			FieldName.Field(p.identity.Name()),
			FieldWorkerID.Field(id),
			FieldPoolSize.Field(newSize),
		)
		p.metrics.Gauge(MetricIdleWorkers).Set(float64(p.idle.Len()))
	}
	return nil
}

// growLocked recreates the idle queue at the new capacity, preserving any
// workers already enqueued. Must be called with p.mu held.
func (p *workerPool[Input, Output]) growLocked(newSize int) {
	existing := p.idle.PeekData()
	grown := NewBoundedQueue[*pooledWorker[Input, Output]](newSize)
	for _, w := range existing {
		grown.Push(w)
	}
	p.idle = grown
}

// Borrow pops one idle worker, blocking while the pool is saturated (all
// workers busy). This call happens on the scheduler goroutine, before the
// corresponding worker task is spawned — see scheduler.go for why that
// ordering is load-bearing.
func (p *workerPool[Input, Output]) Borrow(ctx context.Context) *pooledWorker[Input, Output] {
	p.mu.Lock()
	size := p.size
	idle := p.idle.Len()
	p.mu.Unlock()

	if idle == 0 {
		capitan.Warn(ctx, SignalPoolSaturated,
			FieldName.Field(p.identity.Name()),
			FieldPoolSize.Field(size),
			FieldIdleWorkers.Field(idle),
		)
	}

	pw := p.idle.Pop()

	p.metrics.Gauge(MetricIdleWorkers).Set(float64(p.idle.Len()))
	capitan.Info(ctx, SignalWorkerBorrowed,
		FieldName.Field(p.identity.Name()),
		FieldWorkerID.Field(pw.id),
	)
	return pw
}

// Return pushes a worker back onto the idle queue. It must be called
// exactly once per successful Borrow, regardless of whether the worker's
// item succeeded or failed — a failing worker is not assumed corrupted.
func (p *workerPool[Input, Output]) Return(ctx context.Context, pw *pooledWorker[Input, Output]) {
	p.idle.Push(pw)
	p.metrics.Gauge(MetricIdleWorkers).Set(float64(p.idle.Len()))
	capitan.Info(ctx, SignalWorkerReturned,
		FieldName.Field(p.identity.Name()),
		FieldWorkerID.Field(pw.id),
	)
}

// Snapshot returns a diagnostic view of currently idle workers. This is
// only meaningful between sessions — before the first Launch, or after
// Pop has returned the sentinel and every worker task has quiesced —
// since it delegates to BoundedQueue's explicitly non-thread-safe
// PeekData.
func (p *workerPool[Input, Output]) Snapshot() []WorkerHandle {
	data := p.idle.PeekData()
	out := make([]WorkerHandle, len(data))
	for i, pw := range data {
		out[i] = WorkerHandle{ID: pw.id}
	}
	return out
}

// Size returns the total number of workers owned by the pool (idle + busy).
func (p *workerPool[Input, Output]) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.size
}
