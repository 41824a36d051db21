package ordsched

import (
	"context"
	"time"

	"github.com/zoobzio/hookz"
)

// Hook event keys emitted on a QueueScheduler's hooks.Hooks instance.
const (
	EventSessionLaunched = hookz.Key("ordsched.session.launched")
	EventSessionDrained  = hookz.Key("ordsched.session.drained")
	EventItemDispatched  = hookz.Key("ordsched.item.dispatched")
	EventItemCompleted   = hookz.Key("ordsched.item.completed")
)

// SchedulerEvent is the single payload type carried by every key emitted
// on a QueueScheduler's hooks.Hooks instance. Fields irrelevant to a
// given key are left zero — SessionLaunched/SessionDrained leave
// WorkerID/Success/Err unset, ItemDispatched/ItemCompleted leave
// PoolSize unset.
type SchedulerEvent struct {
	Scheduler Identity
	PoolSize  int
	WorkerID  int
	Success   bool
	Err       error
	Duration  time.Duration
	Timestamp time.Time
}

// OnSessionLaunched registers a handler invoked when Launch starts a new
// session.
func (s *QueueScheduler[Input, Output]) OnSessionLaunched(handler func(context.Context, SchedulerEvent) error) error {
	_, err := s.hooks.Hook(EventSessionLaunched, handler)
	return err
}

// OnSessionDrained registers a handler invoked when the scheduler
// goroutine publishes a session's sentinel to the output queue, after
// every worker task of that session has finished.
func (s *QueueScheduler[Input, Output]) OnSessionDrained(handler func(context.Context, SchedulerEvent) error) error {
	_, err := s.hooks.Hook(EventSessionDrained, handler)
	return err
}

// OnDispatch registers a handler invoked each time an item is handed to
// a worker.
func (s *QueueScheduler[Input, Output]) OnDispatch(handler func(context.Context, SchedulerEvent) error) error {
	_, err := s.hooks.Hook(EventItemDispatched, handler)
	return err
}

// OnComplete registers a handler invoked each time a worker finishes
// (successfully or not).
func (s *QueueScheduler[Input, Output]) OnComplete(handler func(context.Context, SchedulerEvent) error) error {
	_, err := s.hooks.Hook(EventItemCompleted, handler)
	return err
}
