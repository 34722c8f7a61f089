package lifecycle

import (
	"time"

	"github.com/seanpburke/nifty/task"
	"github.com/seanpburke/nifty/workerpool"
)

// NewSchedulerComponent wraps a *task.Scheduler as a Component so a
// ComponentManager can bring it up and tear it down alongside the rest of
// an application's components, including ordering it against dependencies
// with AddDependency. Start is a no-op: NewScheduler already starts the
// dispatch goroutine eagerly. Stop discards the scheduler's handle, which
// blocks until the dispatch goroutine has actually exited.
func NewSchedulerComponent(id string, scheduler *task.Scheduler) *SimpleComponent {
	sc := &SimpleComponent{CompId: id}
	sc.StartFunc = func() error { return nil }
	sc.StopFunc = func() error {
		scheduler.Discard()
		return nil
	}
	return sc
}

// NewPoolComponent wraps a *workerpool.Pool[T] as a Component. Stop shuts
// the pool down, waiting up to shutdownTimeout for queued work to drain
// (handler calls already in progress are not waited for), then discards
// the caller's handle on the pool.
func NewPoolComponent[T any](id string, pool *workerpool.Pool[T], shutdownTimeout time.Duration) *SimpleComponent {
	pc := &SimpleComponent{CompId: id}
	pc.StartFunc = func() error { return nil }
	pc.StopFunc = func() error {
		err := pool.Shutdown(shutdownTimeout)
		pool.Discard()
		return err
	}
	return pc
}
