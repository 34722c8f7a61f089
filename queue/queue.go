package queue

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/seanpburke/nifty/core"
)

// Class is the core object class path registered for a standalone Queue.
// Subclasses (workerpool.Pool) extend it with core.JoinClass or a const
// concatenation, e.g. queue.Class + ":pool".
const Class = "core:queue"

// State is one of the three states a Queue moves through over its life.
type State int32

const (
	// StateRunning accepts both Enqueue and Dequeue.
	StateRunning State = iota
	// StateShuttingDown refuses new Enqueue calls but still lets
	// Dequeue drain whatever is left.
	StateShuttingDown
	// StateShut means the queue is empty, no consumer is waiting, and
	// Shutdown's caller (if still waiting) has been woken.
	StateShut
)

// Queue is a generic bounded FIFO. Its zero value is not usable; either
// construct one with New, or, when embedding it in a subclass, call
// Init before any other method.
type Queue[T any] struct {
	core.Header

	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	drained  *sync.Cond

	items            []T
	limit            int // 0 means unbounded
	st               State
	waitingConsumers int
}

// Init brings a Queue's internal state to life with the given capacity
// (0 means unbounded). Types that embed Queue by value call Init once,
// before registering themselves with the core handle table, exactly as
// the source runtime's subclass constructors call the parent
// constructor first.
func (q *Queue[T]) Init(limit int) {
	if limit < 0 {
		limit = 0
	}
	q.limit = limit
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	q.drained = sync.NewCond(&q.mu)
	q.st = StateRunning
}

// New creates a standalone, RUNNING Queue with the given capacity (0
// means unbounded).
func New[T any](limit int) *Queue[T] {
	q := &Queue[T]{}
	q.Init(limit)
	q.Header.Register(q, Class, q.destroy)
	return q
}

func (q *Queue[T]) destroy() {
	// Storage is plain Go slices; there is nothing to release beyond
	// what the garbage collector already reclaims once the handle
	// table drops its reference.
}

// State returns the queue's current lifecycle state.
func (q *Queue[T]) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.st
}

// Count returns the number of items currently buffered.
func (q *Queue[T]) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue[T]) isFull() bool {
	return q.limit > 0 && len(q.items) >= q.limit
}

// Enqueue adds item to the queue. If the queue is full and RUNNING, it
// blocks according to timeout: negative waits indefinitely, zero
// returns immediately without waiting (a poll), and positive waits up
// to that duration. It returns core.ErrShutdown if the queue is not
// RUNNING on entry or becomes non-RUNNING while waiting, and
// core.ErrTimeout if the wait expires first.
func (q *Queue[T]) Enqueue(item T, timeout time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for {
		if q.st != StateRunning {
			return core.ErrShutdown
		}
		if !q.isFull() {
			break
		}
		if q.wait(q.notFull, timeout) {
			return core.ErrTimeout
		}
	}

	q.items = append(q.items, item)
	q.notEmpty.Signal()
	return nil
}

// Dequeue removes and returns the item at the front of the queue,
// blocking while the queue is empty and RUNNING according to the same
// timeout convention as Enqueue. Once the queue is SHUTTING_DOWN,
// Dequeue keeps returning buffered items until none remain, then
// returns core.ErrShutdown.
func (q *Queue[T]) Dequeue(timeout time.Duration) (item T, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 {
		if q.st != StateRunning {
			err = core.ErrShutdown
			return
		}
		q.waitingConsumers++
		timedOut := q.wait(q.notEmpty, timeout)
		q.waitingConsumers--
		q.maybeReachShut()
		if timedOut {
			err = core.ErrTimeout
			return
		}
	}

	item = q.items[0]
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	q.notFull.Signal()
	q.maybeReachShut()
	return item, nil
}

// Shutdown moves the queue from RUNNING to SHUTTING_DOWN, wakes every
// waiter, and then waits up to timeout for the queue to finish
// draining (SHUT: empty, with no consumer still waiting). A queue that
// is already SHUTTING_DOWN or SHUT returns core.ErrShutdown immediately;
// this matches "further shutdown calls return SHUTDOWN" in the design.
func (q *Queue[T]) Shutdown(timeout time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.st != StateRunning {
		return core.ErrShutdown
	}
	q.st = StateShuttingDown
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
	q.maybeReachShut()

	for q.st != StateShut {
		if q.wait(q.drained, timeout) {
			return core.ErrTimeout
		}
	}
	return nil
}

// maybeReachShut transitions SHUTTING_DOWN -> SHUT once the queue is
// empty and no consumer is still blocked in Dequeue. Callers must hold
// q.mu.
func (q *Queue[T]) maybeReachShut() {
	if q.st == StateShuttingDown && len(q.items) == 0 && q.waitingConsumers == 0 {
		q.st = StateShut
		q.drained.Broadcast()
	}
}

// wait blocks on cond until signaled or timeout elapses, and reports
// whether the deadline fired first. Callers must hold q.mu; cond must
// have been created with &q.mu as its Locker. A negative timeout waits
// indefinitely; a zero timeout is a poll that returns immediately
// without waiting at all.
func (q *Queue[T]) wait(cond *sync.Cond, timeout time.Duration) (timedOut bool) {
	if timeout == 0 {
		return true
	}
	if timeout < 0 {
		cond.Wait()
		return false
	}

	var fired atomic.Bool
	timer := time.AfterFunc(timeout, func() {
		fired.Store(true)
		q.mu.Lock()
		cond.Broadcast()
		q.mu.Unlock()
	})
	cond.Wait()
	timer.Stop()
	return fired.Load()
}
