// Package nifty is a toolkit of reusable concurrency building blocks for
// multithreaded Go applications.
//
// It is built around four cooperating subsystems: a reference-counted,
// handle-based object runtime with lightweight single-inheritance and RTTI
// (core), a bounded blocking queue with shutdown semantics (queue), a
// dynamically-sized worker pool built on top of the queue (workerpool), and
// a single-goroutine min-heap task scheduler with cancellation by handle
// (task). Supporting packages (collections, config, errutils, l3,
// lifecycle, managers) round out the toolkit with the generic data
// structures, configuration loading, error aggregation, structured
// logging, component lifecycle management, and named-item registries that
// the core subsystems are built from.
//
// Registry, in this package, is the glue between them: it wraps every Pool
// and Scheduler an application creates as a lifecycle.Component tracked
// under a name, and a config.Configuration-driven PoolOptions so an
// application can size its pools from a properties file or environment
// variables instead of hard-coded constants.
//
// Each sub-package is independently importable:
//
//	import "github.com/seanpburke/nifty/core"       // object runtime: handles, refcounts, RTTI
//	import "github.com/seanpburke/nifty/queue"       // bounded blocking queue
//	import "github.com/seanpburke/nifty/workerpool"  // elastic worker pool
//	import "github.com/seanpburke/nifty/task"        // min-heap task scheduler
//	import "github.com/seanpburke/nifty/l3"          // structured logging
//	import "github.com/seanpburke/nifty/lifecycle"   // component start/stop orchestration
//	import "github.com/seanpburke/nifty/config"      // properties/environment-backed configuration
package nifty
