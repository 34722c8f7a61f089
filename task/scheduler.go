package task

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"

	"github.com/seanpburke/nifty/core"
	"github.com/seanpburke/nifty/l3"
)

var logger = l3.Get()

// TaskClass and SchedulerClass are the core object class paths registered
// for Task and Scheduler respectively. Unlike Queue/Pool, a Task does not
// extend Scheduler's class path: the two are siblings, not a subclass
// relationship, matching the source runtime where a task is data owned by
// the scheduler rather than a kind of scheduler.
const (
	TaskClass      = "core:task"
	SchedulerClass = "core:scheduler"
)

// Task is one scheduled activation of fn, one-shot or periodic, living in
// exactly one of three states at a time (invariant T1): queued in its
// scheduler's heap, currently executing on the scheduler's dispatch
// goroutine, or cancelled/completed and no longer reachable from the heap.
type Task struct {
	core.Header

	fn       func(arg any)
	arg      any
	interval time.Duration
	schedule Schedule
	abstime  time.Time
	seq      uint64

	heapIndex int
	executing bool
	cancelled bool
}

func (t *Task) destroy() {
	// Nothing beyond the closure and argument, both already unreachable
	// once the handle table drops its entry.
}

// Interval returns the task's reschedule interval; zero means one-shot.
func (t *Task) Interval() time.Duration { return t.interval }

// NextRun returns the absolute time this task is next due to fire. Once a
// task starts executing, NextRun keeps returning the time it was popped
// for until it either reschedules (periodic) or is discarded (one-shot).
func (t *Task) NextRun() time.Time { return t.abstime }

// Scheduler is a single-goroutine min-heap timer: one dispatch goroutine
// pops the earliest-due task, runs its function with the heap unlocked,
// and, for periodic tasks that were not cancelled mid-run, reinserts it at
// abstime+interval. schedule and cancel only ever take the heap's mutex
// briefly; all the waiting happens on the dispatch goroutine alone.
type Scheduler struct {
	core.Header

	mu      sync.Mutex
	cond    *sync.Cond
	heap    taskHeap
	seq     uint64
	stopped bool
	current atomic.Uint64
	doneCh  chan struct{}
}

// NewScheduler creates a Scheduler and starts its dispatch goroutine. The
// goroutine runs until the scheduler's last handle is discarded: per the
// source runtime's failure semantics, "the scheduler thread never exits as
// long as any handle to the scheduler object is live."
func NewScheduler() *Scheduler {
	s := &Scheduler{
		doneCh: make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	s.Header.Register(s, SchedulerClass, s.destroy)
	go s.run()
	return s
}

func (s *Scheduler) destroy() {
	s.mu.Lock()
	s.stopped = true
	s.cond.Broadcast()
	s.mu.Unlock()
	<-s.doneCh
}

// Schedule inserts a new task under the scheduler's mutex and wakes the
// dispatch goroutine. If abstime is the zero time, the task's first
// activation is now+interval; if interval is zero or negative, the task
// fires exactly once and is never reinserted. Schedule returns
// core.ErrShutdown if the scheduler's last handle has already been
// discarded.
//
// The returned *Task is a live reference the caller owns, exactly like
// the value any other constructor in this module (queue.New, NewPool,
// NewScheduler itself) hands back: the caller must Discard it once done
// with it. That reference is independent of the heap's own internal
// reference, which the dispatch loop releases on the task's final
// retirement (completion of a one-shot, cancellation, or exhaustion of a
// Schedule); neither side's Discard substitutes for the other.
func (s *Scheduler) Schedule(abstime time.Time, interval time.Duration, fn func(arg any), arg any) (*Task, error) {
	if interval < 0 {
		interval = 0
	}
	if abstime.IsZero() {
		abstime = time.Now().Add(interval)
	}
	return s.scheduleTask(abstime, interval, nil, fn, arg)
}

// ScheduleWith schedules fn according to sched -- an *IntervalSchedule,
// *OneShotSchedule, *CronSchedule, or any caller-supplied Schedule -- in
// place of Schedule's bare abstime+interval pair. The dispatch loop
// reinserts the task at sched.Next(lastFireTime) after every activation
// instead of doing fixed-interval arithmetic itself, so a cron expression
// or a one-shot delay drives the same heap/cancellation machinery
// Schedule does. ScheduleWith returns ErrScheduleExhausted if sched has
// no activation time at or after now, and core.ErrShutdown under the same
// condition as Schedule. The returned *Task has the same caller-owned
// reference contract as Schedule's.
func (s *Scheduler) ScheduleWith(sched Schedule, fn func(arg any), arg any) (*Task, error) {
	first := sched.Next(time.Now())
	if first.IsZero() {
		return nil, ErrScheduleExhausted
	}
	return s.scheduleTask(first, 0, sched, fn, arg)
}

// scheduleTask is the shared insertion path for Schedule and
// ScheduleWith: build the Task, register it with the handle table, take
// the heap's own reference, and push it under the scheduler's mutex.
func (s *Scheduler) scheduleTask(abstime time.Time, interval time.Duration, sched Schedule, fn func(arg any), arg any) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, core.ErrShutdown
	}

	t := &Task{
		fn:       fn,
		arg:      arg,
		interval: interval,
		schedule: sched,
		abstime:  abstime,
	}
	t.Header.Register(t, TaskClass, t.destroy)
	// The heap's reference keeps the task alive independent of whatever
	// the caller does with the handle this call returns; it is released
	// exactly once, when the task leaves the heap for good.
	t.Header.Retain()

	s.seq++
	t.seq = s.seq
	heap.Push(&s.heap, t)
	s.cond.Signal()

	return t, nil
}

// Cancel removes handle's task from the heap, if it is still there, and
// returns the argument it was scheduled with so the caller can dispose of
// it (T3: exactly once). If the task is currently executing or has
// already fired its last activation, Cancel returns ok=false; for a
// periodic task that is currently executing, it still suppresses the next
// reinsertion.
func (s *Scheduler) Cancel(h core.Handle) (arg any, ok bool) {
	t, err := core.Lookup[Task](h, TaskClass)
	if err != nil {
		return nil, false
	}
	defer t.Header.Discard()

	s.mu.Lock()
	removed := t.heapIndex >= 0
	if removed {
		heap.Remove(&s.heap, t.heapIndex)
		arg, t.arg = t.arg, nil
	} else {
		t.cancelled = true
	}
	s.mu.Unlock()

	if !removed {
		return nil, false
	}
	t.Header.Discard() // release the heap's own reference
	return arg, true
}

// CurrentTask returns the handle of the task presently executing on the
// scheduler's dispatch goroutine, the Go analogue of the source runtime's
// thread-local task_this(). It is only meaningful when called from within
// a task's own fn; called from anywhere else it reports ok=false.
func (s *Scheduler) CurrentTask() (h core.Handle, ok bool) {
	v := s.current.Load()
	return core.Handle(v), v != 0
}

// run is the scheduler's single dispatch goroutine: the whole of the
// algorithm described for the source runtime's scheduler thread, wait on
// the heap's earliest abstime (or forever if empty), pop what's due, run
// it with the lock released, and reinsert periodic tasks that survived
// uncancelled.
func (s *Scheduler) run() {
	defer close(s.doneCh)

	s.mu.Lock()
	defer s.mu.Unlock()

	for !s.stopped {
		next := s.heap.peek()
		if next == nil {
			s.cond.Wait()
			continue
		}

		wait := time.Until(next.abstime)
		if wait > 0 {
			s.waitFor(wait)
			continue
		}

		heap.Pop(&s.heap)
		next.executing = true
		s.current.Store(uint64(next.Handle()))

		s.mu.Unlock()
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.ErrorF("task: panic in scheduled task %v: %v", next.Handle(), r)
				}
			}()
			next.fn(next.arg)
		}()
		s.mu.Lock()

		s.current.Store(0)
		next.executing = false

		reinsert := false
		if !next.cancelled {
			switch {
			case next.schedule != nil:
				if nextTime := next.schedule.Next(next.abstime); !nextTime.IsZero() {
					next.abstime = nextTime
					reinsert = true
				}
			case next.interval > 0:
				next.abstime = next.abstime.Add(next.interval)
				reinsert = true
			}
		}

		if !reinsert {
			s.mu.Unlock()
			next.Header.Discard()
			s.mu.Lock()
			continue
		}

		s.seq++
		next.seq = s.seq
		heap.Push(&s.heap, next)
	}
}

// waitFor blocks the dispatch goroutine until d elapses or a new task is
// scheduled/the scheduler is stopped, whichever wakes the condition first.
// Callers must hold s.mu.
func (s *Scheduler) waitFor(d time.Duration) {
	timer := time.AfterFunc(d, func() {
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	})
	s.cond.Wait()
	timer.Stop()
}
