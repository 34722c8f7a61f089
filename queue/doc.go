// Package queue provides a bounded, blocking FIFO queue with shutdown
// semantics. It is the base abstraction workerpool.Pool builds on: Pool
// embeds a Queue of work items the same way the source C runtime makes
// its thread pool a subclass of its queue.
//
// A Queue starts RUNNING. Enqueue blocks while the queue is full and
// RUNNING; Dequeue blocks while the queue is empty and RUNNING. Shutdown
// moves the queue to SHUTTING_DOWN: no further enqueues are accepted,
// but pending items still drain to waiting consumers. Once the queue is
// empty and no consumer is waiting, it reaches SHUT and Shutdown's own
// wait returns.
package queue
