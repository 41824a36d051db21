package ordsched

import "github.com/zoobzio/capitan"

// Signal constants for ordsched's queue/worker/session events. Signals
// follow the pattern: <component>.<event>.
const (
	// WorkerPool signals.
	SignalWorkerAdded    capitan.Signal = "workerpool.added"
	SignalWorkerBorrowed capitan.Signal = "workerpool.borrowed"
	SignalWorkerReturned capitan.Signal = "workerpool.returned"
	SignalPoolSaturated  capitan.Signal = "workerpool.saturated"

	// Feeder signals.
	SignalFeederStarted   capitan.Signal = "feeder.started"
	SignalFeederExhausted capitan.Signal = "feeder.exhausted"
	SignalFeederFailed    capitan.Signal = "feeder.failed"

	// Scheduler/session signals.
	SignalSessionLaunched capitan.Signal = "scheduler.launched"
	SignalItemDispatched  capitan.Signal = "scheduler.dispatched"
	SignalItemCompleted   capitan.Signal = "scheduler.completed"
	SignalItemFailed      capitan.Signal = "scheduler.failed"
	SignalSessionDrained  capitan.Signal = "scheduler.drained"
	SignalSchedulerClosed capitan.Signal = "scheduler.closed"
)

// Common field keys using capitan's primitive key types, avoiding custom
// struct serialization in log fields.
var (
	FieldName           = capitan.NewStringKey("name")
	FieldWorkerID       = capitan.NewIntKey("worker_id")
	FieldPoolSize       = capitan.NewIntKey("pool_size")
	FieldIdleWorkers    = capitan.NewIntKey("idle_workers")
	FieldInputQueueLen  = capitan.NewIntKey("input_queue_len")
	FieldOutputQueueLen = capitan.NewIntKey("output_queue_len")
	FieldError          = capitan.NewStringKey("error")
	FieldTimestamp      = capitan.NewFloat64Key("timestamp")
	FieldDuration       = capitan.NewFloat64Key("duration")
)
