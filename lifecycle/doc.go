// Package lifecycle provides component lifecycle management for Go
// applications, and wraps the core toolkit's own long-lived objects --
// task.Scheduler and workerpool.Pool, via NewSchedulerComponent and
// NewPoolComponent in adapters.go -- as Components a ComponentManager can
// bring up and tear down alongside the rest of an application.
//
// SimpleComponentManager additionally tracks a dependency graph between
// registered components (AddDependency) so that starting or stopping one
// component also brings its dependencies along, and offers bounded-wait
// variants of Start/Stop/StartAll/StopAll for callers that cannot block
// indefinitely on a component's StartFunc or StopFunc.
package lifecycle
