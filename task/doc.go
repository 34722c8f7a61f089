// Package task implements a single-goroutine, min-heap task scheduler:
// one-shot and periodic function activations, fired in (abstime, insertion
// sequence) order and cancellable by handle. It is the Go translation of
// the source runtime's scheduler thread, with container/heap standing in
// for its hand-rolled binary heap and a core.Handle standing in for a
// pointer to the scheduled task.
//
// Schedule and Cancel only ever hold the scheduler's mutex briefly; all of
// the waiting happens on the dispatch goroutine Scheduler.run spawns when
// the scheduler is constructed and keeps alive until the scheduler's last
// handle is discarded.
//
// The Schedule/IntervalSchedule/OneShotSchedule/CronSchedule types express
// activation times other than a bare time.Time -- a fixed interval, a
// relative delay, or a cron expression. Scheduler.ScheduleWith drives a
// task from such a Schedule, calling its Next after every activation to
// reinsert the task; Scheduler.Schedule does not need them.
package task
