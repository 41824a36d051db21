package ordsched

import "github.com/zoobzio/metricz"

// Metric keys for QueueScheduler observability: a counter per queue
// event paired with a gauge for the current queue/pool depth.
const (
	MetricItemsFed         = metricz.Key("ordsched.items.fed")
	MetricItemsDispatched  = metricz.Key("ordsched.items.dispatched")
	MetricItemsCompleted   = metricz.Key("ordsched.items.completed")
	MetricItemsFailed      = metricz.Key("ordsched.items.failed")
	MetricInputQueueDepth  = metricz.Key("ordsched.queue.input.depth")
	MetricOutputQueueDepth = metricz.Key("ordsched.queue.output.depth")
	MetricIdleWorkers      = metricz.Key("ordsched.workers.idle")
)

// newMetricsRegistry builds and registers the full set of ordsched
// metrics on a fresh registry, one per QueueScheduler instance.
func newMetricsRegistry() *metricz.Registry {
	r := metricz.New()
	r.Counter(MetricItemsFed)
	r.Counter(MetricItemsDispatched)
	r.Counter(MetricItemsCompleted)
	r.Counter(MetricItemsFailed)
	r.Gauge(MetricInputQueueDepth)
	r.Gauge(MetricOutputQueueDepth)
	r.Gauge(MetricIdleWorkers)
	return r
}
