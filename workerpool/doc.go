// Package workerpool implements an elastic fixed-handler thread pool on top
// of queue.Queue, the same way the source C runtime derives its thread pool
// from its queue rather than composing a separate one: Pool embeds a
// queue.Queue[T] of pending work items and is itself a core object, castable
// back down to queue.Class.
//
// A Pool starts at its minimum thread count (raised to 1 if given as less,
// so a RUNNING pool always has somewhere to route work) and grows on
// demand: Submit spawns a worker whenever the queue already holds at least
// as many items as there are live workers and the pool is below its
// maximum; it does not check whether any worker is idle. Workers above the minimum voluntarily
// exit after sitting idle for longer than the pool's idle timeout, so a
// burst of work grows the pool and a quiet period shrinks it back down to
// its floor, never to zero while running. The pool's own handle stays
// alive for as long as any worker is running, even if every caller-held
// reference has already been discarded; Shutdown releases the pool's
// self-reference immediately if no worker was ever spawned, or hands that
// release off to whichever worker exits last.
package workerpool
