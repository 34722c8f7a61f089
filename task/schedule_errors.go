package task

import (
	"errors"
	"time"
)

// Schedule computes the next activation time for a recurring or one-shot
// task, given the time of its last (or, for the first call, its
// construction-time) activation. A Schedule that has no further
// activations returns the zero time.Time, the signal Scheduler uses to
// retire a task instead of rescheduling it.
type Schedule interface {
	Next(from time.Time) time.Time
}

var (
	// ErrInvalidInterval is returned by NewIntervalSchedule for a
	// non-positive interval.
	ErrInvalidInterval = errors.New("task: interval must be positive")
	// ErrInvalidDelay is returned by NewOneShotSchedule for a negative
	// delay.
	ErrInvalidDelay = errors.New("task: delay must not be negative")
	// ErrInvalidCronExpr is returned by NewCronSchedule for a
	// malformed cron expression.
	ErrInvalidCronExpr = errors.New("task: invalid cron expression")
	// ErrScheduleExhausted is returned by Scheduler.ScheduleWith when the
	// given Schedule has no activation time at or after now.
	ErrScheduleExhausted = errors.New("task: schedule has no activation time")
)
