package ordsched

import (
	"fmt"
	"runtime/debug"
	"time"
)

// recoverFromPanic converts a panic inside a worker's Process call into an
// *Error[Output], so a misbehaving worker cannot take down the process
// from the worker task goroutine it runs on. result and err point at the
// caller's result and error variables; recoverFromPanic only acts if
// recover() returns non-nil.
func recoverFromPanic[Output any](result *Output, err *error, id Identity, input any) {
	if r := recover(); r != nil {
		*err = &Error[Output]{
			Timestamp: time.Now(),
			Worker:    id,
			Err:       fmt.Errorf("panic: %v\n%s", r, debug.Stack()),
			Input:     input,
		}
	}
}
