// Package ordsched provides an order-preserving parallel job scheduler.
//
// # Overview
//
// ordsched consumes a stream of inputs from a user-supplied generator,
// dispatches them across a fixed pool of stateful workers running on
// independent goroutines, and emits the processed outputs back to the
// caller, via Pop, in exactly the same order the inputs were produced —
// regardless of the real-time completion order of the workers.
//
// It targets CPU-bound pipelines (media frames, records, batches) where
// downstream consumers require sequence fidelity but upstream work is
// independently parallelizable.
//
// # Core Concepts
//
//   - Worker: a stateful, exclusively owned object that consumes one Input
//     and produces one Output. Workers are built by a WorkerFactory and
//     owned by a WorkerPool for the lifetime of the QueueScheduler.
//   - Three bounded queues: an input queue (generator -> scheduler), the
//     idle-worker queue (the pool), and an output queue of deferred
//     results (scheduler -> consumer). Each is independently backpressured.
//   - A feeder goroutine drains the generator into the input queue. A
//     scheduler goroutine pairs items with idle workers and publishes
//     deferred results in dispatch order, not completion order.
//
// # Quick Start
//
//	sched := ordsched.New[int, string](ordsched.NewIdentity("stringify", ""))
//	factory := ordsched.NewWorkerFactory(func(id int) (ordsched.Worker[int, string], error) {
//	    return &stringifyWorker{id: id}, nil
//	})
//	sched.AddWorkers(context.Background(), factory, 3)
//
//	var n int
//	gen := func(_ context.Context) (int, error) {
//	    if n >= 30 {
//	        return 0, ordsched.ErrGeneratorExhausted
//	    }
//	    n++
//	    return n - 1, nil
//	}
//	sched.Launch(context.Background(), gen)
//
//	for {
//	    out, err, ok := sched.Pop(context.Background())
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(out, err)
//	}
//	sched.Close()
//
// # Reuse
//
// A QueueScheduler is reusable across sessions: once Pop has returned the
// sentinel, Launch may be called again with a fresh generator. Workers are
// not rebuilt between sessions — their ids and any internal state survive,
// which is the point of owning them for the scheduler's whole lifetime
// rather than building one per item.
//
// # Observability
//
// ordsched instruments every queue/worker state transition with structured
// signals (github.com/zoobzio/capitan), exposes counters and gauges
// (github.com/zoobzio/metricz), traces sessions and dispatches
// (github.com/zoobzio/tracez), and fires lifecycle hooks
// (github.com/zoobzio/hookz) so callers can observe a running scheduler
// without touching its internals.
package ordsched
