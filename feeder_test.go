package ordsched

import (
	"context"
	"errors"
	"testing"
)

func TestFeederTask_DrainsThenPushesSentinel(t *testing.T) {
	input := NewBoundedQueue[item[int]](Unlimited)
	f := &feederTask[int]{identity: NewIdentity("feeder", ""), input: input}

	f.run(context.Background(), sliceGenerator([]int{1, 2, 3}))

	for _, want := range []int{1, 2, 3} {
		it := input.Pop()
		if it.sentinel {
			t.Fatalf("got unexpected sentinel before value %d", want)
		}
		if it.value != want {
			t.Errorf("got %d, want %d", it.value, want)
		}
	}
	if it := input.Pop(); !it.sentinel {
		t.Fatalf("expected sentinel after generator exhaustion")
	}
}

func TestFeederTask_CoalescesNonExhaustionErrorByDefault(t *testing.T) {
	input := NewBoundedQueue[item[int]](Unlimited)
	var onDoneErr error
	f := &feederTask[int]{
		identity: NewIdentity("feeder", ""),
		input:    input,
		onDone:   func(err error) { onDoneErr = err },
	}

	failErr := errors.New("boom")
	f.run(context.Background(), failingGenerator([]int{9}, failErr))

	it := input.Pop()
	if it.sentinel {
		t.Fatalf("got sentinel before the one real value")
	}
	if it.value != 9 {
		t.Errorf("got %d, want 9", it.value)
	}
	it = input.Pop()
	if !it.sentinel {
		t.Fatalf("expected sentinel after generator failure")
	}
	if !errors.Is(onDoneErr, failErr) {
		t.Errorf("onDone error = %v, want %v", onDoneErr, failErr)
	}
}

// The feeder itself always reports its terminal error via onDone and
// pushes an immediate sentinel on a generator failure with no items
// produced; it does not know about WithStrictGeneratorErrors — that
// decision belongs to schedulerTask, covered end-to-end in
// TestQueueScheduler_StrictGeneratorErrorSurfacesOnSentinel.
func TestFeederTask_ImmediateFailurePushesImmediateSentinel(t *testing.T) {
	input := NewBoundedQueue[item[int]](Unlimited)
	var onDoneErr error
	f := &feederTask[int]{
		identity: NewIdentity("feeder", ""),
		input:    input,
		onDone:   func(err error) { onDoneErr = err },
	}

	failErr := errors.New("boom")
	f.run(context.Background(), failingGenerator(nil, failErr))

	it := input.Pop()
	if !it.sentinel {
		t.Fatalf("expected immediate sentinel")
	}
	if !errors.Is(onDoneErr, failErr) {
		t.Errorf("onDone error = %v, want %v", onDoneErr, failErr)
	}
}
