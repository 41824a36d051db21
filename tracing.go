package ordsched

import "github.com/zoobzio/tracez"

// Span names for QueueScheduler observability: a session span parents
// one dispatch span per item, mirroring a process/attempt span pair.
const (
	SessionSpan  = tracez.Key("ordsched.session")
	DispatchSpan = tracez.Key("ordsched.dispatch")
)

// Span tags.
const (
	TagWorkerID  = tracez.Tag("ordsched.worker_id")
	TagPoolSize  = tracez.Tag("ordsched.pool_size")
	TagSuccess   = tracez.Tag("ordsched.success")
	TagError     = tracez.Tag("ordsched.error")
)
