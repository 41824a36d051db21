package ordsched

import "testing"

// TestSignalsInitialized is a cheap sanity check that every signal
// constant is a non-empty string, since a signal left as its zero value
// would silently fail to match anything a listener hooks.
func TestSignalsInitialized(t *testing.T) {
	signals := []struct {
		name string
		sig  string
	}{
		{"SignalWorkerAdded", string(SignalWorkerAdded)},
		{"SignalWorkerBorrowed", string(SignalWorkerBorrowed)},
		{"SignalWorkerReturned", string(SignalWorkerReturned)},
		{"SignalPoolSaturated", string(SignalPoolSaturated)},
		{"SignalFeederStarted", string(SignalFeederStarted)},
		{"SignalFeederExhausted", string(SignalFeederExhausted)},
		{"SignalFeederFailed", string(SignalFeederFailed)},
		{"SignalSessionLaunched", string(SignalSessionLaunched)},
		{"SignalItemDispatched", string(SignalItemDispatched)},
		{"SignalItemCompleted", string(SignalItemCompleted)},
		{"SignalItemFailed", string(SignalItemFailed)},
		{"SignalSessionDrained", string(SignalSessionDrained)},
		{"SignalSchedulerClosed", string(SignalSchedulerClosed)},
	}
	for _, s := range signals {
		if s.sig == "" {
			t.Errorf("%s is empty", s.name)
		}
	}
}
