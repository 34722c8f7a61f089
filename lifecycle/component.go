package lifecycle

import (
	"errors"
	"time"
)

type ComponentState int

const (
	// Unknown is the state of the component when it is not known.
	Unknown ComponentState = iota
	// Error is the state of the component when it is in error.
	Error
	// Stopped is the state of the component when it is stopped.
	Stopped
	//Stopping is the state of the component when it is stopping.
	Stopping
	// Running is the state of the component when it is running.
	Running
	// Starting is the state of the component when it is starting.
	Starting
)

var ErrCompNotFound = errors.New("component not found")

var ErrCompAlreadyStarted = errors.New("component already started")

var ErrCompAlreadyStopped = errors.New("component already stopped")

var ErrInvalidComponentState = errors.New("invalid component state")

// ErrCyclicDependency is returned by AddDependency when dependsOn already
// depends directly on id. Longer cycles through other components are not detected.
var ErrCyclicDependency = errors.New("cyclic component dependency")

// ErrTimeout is returned by the *WithTimeout variants of ComponentManager's
// operations when the bounded wait expires before the underlying Start or
// Stop call finishes, mirroring the core package's own timeout taxonomy for
// Queue, Pool and Scheduler.
var ErrTimeout = errors.New("lifecycle: timeout")

// Component is the interface that wraps the basic Start and Stop methods.
type Component interface {
	// Id is the unique identifier for the component.
	Id() string
	// OnChange registers f to be called whenever the component's state
	// transitions.
	OnChange(f func(prevState, newState ComponentState))
	// Start will starting the LifeCycle.
	Start() error
	// Stop will stop the LifeCycle.
	Stop() error
	// State will return the current state of the LifeCycle.
	State() ComponentState
}

// ComponentManager is the interface that manages multiple components,
// including the ordering dependencies between them and bounded-wait
// variants of Start/Stop for callers that cannot block indefinitely.
type ComponentManager interface {
	// AddDependency records that id depends on dependsOn: starting id
	// also starts dependsOn first, and stopping id also stops dependsOn
	// first, whether or not other components still depend on it.
	AddDependency(id, dependsOn string) error
	// GetState will return the current state of the LifeCycle for the component with the given id.
	GetState(id string) ComponentState
	//List will return a list of all the Components.
	List() []Component
	// OnChange registers f against the component identified by id.
	OnChange(id string, f func(prevState, newState ComponentState))
	// Register will register a new Components.
	Register(component Component) Component
	// StartAll will start all the Components, aggregating every failure
	// into a single error.
	StartAll() error
	// StartAllWithTimeout is StartAll bounded by timeout; it returns
	// ErrTimeout if not every component has started by then.
	StartAllWithTimeout(timeout time.Duration) error
	//StartAndWait will start all the Components and wait for them to finish.
	StartAndWait()
	// Start will start the LifeCycle for the component with the given id.
	// It returns an error if the component was not found or if the component failed to start.
	Start(id string) error
	// StartWithTimeout is Start bounded by timeout; it returns ErrTimeout
	// if the component has not started by then.
	StartWithTimeout(id string, timeout time.Duration) error
	// StopAll will stop all the Components, aggregating every failure
	// into a single error.
	StopAll() error
	// StopAllWithTimeout is StopAll bounded by timeout; it returns
	// ErrTimeout if not every component has stopped by then.
	StopAllWithTimeout(timeout time.Duration) error
	// Stop will stop the LifeCycle for the component with the given id. It returns if the component was stopped.
	Stop(id string) error
	// StopWithTimeout is Stop bounded by timeout; it returns ErrTimeout if
	// the component has not stopped by then.
	StopWithTimeout(id string, timeout time.Duration) error
	// Unregister will unregister a Component.
	Unregister(id string)
	// Wait will wait for all the Components to finish.
	Wait()
}
