package catalog

import "time"

// Scheduler runs a task after a delay. The returned function cancels the
// task if it has not run yet.
type Scheduler interface {
	Schedule(delay time.Duration, task func()) (cancel func())
}

// Immediate runs every task synchronously, ignoring the delay
type Immediate struct{}

func (Immediate) Schedule(_ time.Duration, task func()) func() {
	task()
	return func() {}
}
