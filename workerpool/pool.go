package workerpool

import (
	"sync"
	"time"

	"github.com/seanpburke/nifty/core"
	"github.com/seanpburke/nifty/l3"
	"github.com/seanpburke/nifty/queue"
)

var logger = l3.Get()

// Class is the core object class path registered for a Pool. It extends
// queue.Class so a *Pool can be cast back down to a *queue.Queue[T] with
// core.Cast, matching the source runtime's Queue/Pool subclass relationship.
const Class = queue.Class + ":pool"

// Handler processes one work item pulled off the pool's queue. A Handler
// that panics takes down the worker goroutine that called it; Pool does not
// recover panics on its callers' behalf.
type Handler[T any] func(item T)

// Pool is a bounded queue of work items serviced by an elastic set of
// worker goroutines. It embeds queue.Queue[T] and is constructed with
// NewPool rather than queue.New, since the queue portion must be
// initialized before the pool registers itself with the handle table.
type Pool[T any] struct {
	queue.Queue[T]

	handler Handler[T]

	minThreads  int
	maxThreads  int
	idleTimeout time.Duration

	mu          sync.Mutex
	numThreads  int
	highWater   int
	selfRelease sync.Once
}

// NewPool creates a Pool backed by a queue of the given capacity (0 means
// unbounded) and starts minThreads workers immediately. It spawns
// additional workers on demand, up to maxThreads, whenever Submit finds the
// queue holding at least as many items as there are live workers (whether
// a worker is idle is not checked); workers above minThreads that sit idle for longer than
// idleTimeout exit voluntarily. A non-positive idleTimeout disables
// voluntary shrinking: every worker runs until Shutdown. minThreads is
// raised to 1 if given as less: a pool never voluntarily shrinks below one
// worker while it is running, so the self-reference spawnWorkerLocked
// takes on the pool's first worker is released exactly once, by the last
// worker's exit on Shutdown.
func NewPool[T any](handler Handler[T], minThreads, maxThreads, queueLimit int, idleTimeout time.Duration) *Pool[T] {
	if minThreads < 1 {
		minThreads = 1
	}
	if maxThreads < 1 {
		maxThreads = 1
	}
	if minThreads > maxThreads {
		minThreads = maxThreads
	}

	p := &Pool[T]{
		handler:     handler,
		minThreads:  minThreads,
		maxThreads:  maxThreads,
		idleTimeout: idleTimeout,
	}
	p.Queue.Init(queueLimit)
	p.Header.Register(p, Class, p.destroy)

	for i := 0; i < minThreads; i++ {
		p.spawnWorkerLocked()
	}
	return p
}

func (p *Pool[T]) destroy() {
	// All worker goroutines have already exited by the time this runs;
	// there is nothing left to release beyond the embedded queue, whose
	// storage the garbage collector reclaims on its own.
}

// Submit enqueues item for processing, blocking according to the same
// timeout convention as queue.Queue.Enqueue, and spawns a new worker first
// if the pool looks saturated (the queue already holds at least as many
// items as there are live workers) and has room to grow.
func (p *Pool[T]) Submit(item T, timeout time.Duration) error {
	p.mu.Lock()
	if p.Count() >= p.numThreads && p.numThreads < p.maxThreads {
		p.spawnWorkerLocked()
	}
	p.mu.Unlock()

	return p.Enqueue(item, timeout)
}

// NumThreads returns the current number of live worker goroutines.
func (p *Pool[T]) NumThreads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.numThreads
}

// HighWaterMark returns the peak number of concurrent workers observed.
func (p *Pool[T]) HighWaterMark() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.highWater
}

// spawnWorkerLocked starts one worker goroutine. Callers must hold p.mu.
// The first spawn retains a reference on the pool's own header so the pool
// outlives every caller-held reference until the last worker exits.
func (p *Pool[T]) spawnWorkerLocked() {
	if p.numThreads == 0 {
		p.Header.Retain()
	}
	p.numThreads++
	if p.numThreads > p.highWater {
		p.highWater = p.numThreads
	}
	logger.DebugF("workerpool: spawning worker %d/%d for %s", p.numThreads, p.maxThreads, p.Class())
	go p.workerLoop()
}

// workerLoop repeatedly dequeues and handles work items until the queue
// shuts down or, for a worker above minThreads, until it has sat idle for
// longer than idleTimeout.
func (p *Pool[T]) workerLoop() {
	defer p.onWorkerExit()

	for {
		timeout := time.Duration(-1)
		if p.canShrink() {
			timeout = p.idleTimeout
		}

		item, err := p.Dequeue(timeout)
		if err != nil {
			if err == core.ErrTimeout {
				if p.tryShrink() {
					return
				}
				continue
			}
			return
		}

		p.handler(item)
	}
}

func (p *Pool[T]) canShrink() bool {
	if p.idleTimeout <= 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.numThreads > p.minThreads
}

// tryShrink re-checks canShrink's condition under the lock. The re-check
// matters: another worker may have already shrunk the pool to minThreads
// between this worker's idle timeout firing and its attempt to exit. The
// actual bookkeeping for the exit happens in onWorkerExit, which every
// return path through workerLoop defers.
func (p *Pool[T]) tryShrink() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.numThreads > p.minThreads
}

// onWorkerExit runs on every worker's exit path. It accounts for the
// worker's departure and releases the pool's self-reference exactly once,
// when the last worker leaves.
func (p *Pool[T]) onWorkerExit() {
	p.mu.Lock()
	p.numThreads--
	last := p.numThreads == 0
	p.mu.Unlock()

	if last {
		logger.DebugF("workerpool: last worker exited for %s", p.Class())
		p.releaseSelf()
	}
}

func (p *Pool[T]) releaseSelf() {
	p.selfRelease.Do(p.Header.Discard)
}

// Shutdown stops accepting new Submit calls, lets every queued item drain
// to a worker, and waits up to timeout for the queue to reach SHUT (empty,
// with no worker still waiting on it); handler calls already in progress
// are not waited for. If no worker is left at that point, Shutdown
// releases the pool's self-reference itself. NewPool
// always starts at least one worker, so in practice this is reached only
// if every worker has already exited by the time Shutdown runs; it exists
// so Shutdown never leaves the self-reference for a worker exit that will
// never happen.
func (p *Pool[T]) Shutdown(timeout time.Duration) error {
	err := p.Queue.Shutdown(timeout)

	p.mu.Lock()
	empty := p.numThreads == 0
	p.mu.Unlock()
	if empty {
		p.releaseSelf()
	}

	return err
}
