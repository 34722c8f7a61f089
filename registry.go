package nifty

import (
	"time"

	"github.com/seanpburke/nifty/config"
	"github.com/seanpburke/nifty/core"
	"github.com/seanpburke/nifty/lifecycle"
	"github.com/seanpburke/nifty/managers"
	"github.com/seanpburke/nifty/task"
	"github.com/seanpburke/nifty/workerpool"
)

// PoolOptions collects the tunable knobs NewPool accepts so they can be
// sourced from a config.Configuration instead of hard-coded at the call
// site, matching the source runtime's treatment of backlog/max_threads/
// stack_size as constructor arguments an embedding application typically
// wants to pull from its own config file or environment.
type PoolOptions struct {
	MinThreads  int
	MaxThreads  int
	QueueLimit  int
	IdleTimeout time.Duration
}

// LoadPoolOptions reads a PoolOptions out of cfg, using keyPrefix plus a
// fixed suffix ("min_threads", "max_threads", "queue_limit",
// "idle_timeout_ms") as each property's key, and def's corresponding field
// wherever cfg has no value or the stored value doesn't parse. The
// config.Configuration accessors return defaultVal only for an absent key and
// an error for a malformed value; LoadPoolOptions keeps def's field on that error.
func LoadPoolOptions(cfg config.Configuration, keyPrefix string, def PoolOptions) PoolOptions {
	opts := def

	if v, err := cfg.GetAsInt(keyPrefix+".min_threads", def.MinThreads); err == nil {
		opts.MinThreads = v
	}
	if v, err := cfg.GetAsInt(keyPrefix+".max_threads", def.MaxThreads); err == nil {
		opts.MaxThreads = v
	}
	if v, err := cfg.GetAsInt(keyPrefix+".queue_limit", def.QueueLimit); err == nil {
		opts.QueueLimit = v
	}
	if v, err := cfg.GetAsInt64(keyPrefix+".idle_timeout_ms", int64(def.IdleTimeout/time.Millisecond)); err == nil {
		opts.IdleTimeout = time.Duration(v) * time.Millisecond
	}

	return opts
}

// Registry is a named front door onto the handles a running application
// hands out. Every Pool or Scheduler registered through it gets a
// lifecycle.Component -- so a single StopAll drains and tears down
// everything the application started, in dependency order -- and a
// name -> core.Handle entry a caller can look up later without threading
// the original typed pointer through the rest of the program.
type Registry struct {
	components lifecycle.ComponentManager
	handles    managers.ItemManager[core.Handle]
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		components: lifecycle.NewSimpleComponentManager(),
		handles:    managers.NewItemManager[core.Handle](),
	}
}

// RegisterPool wraps pool as a lifecycle.Component under name, shutting it
// down with shutdownTimeout when the Registry's components are stopped, and
// records its handle for later lookup via Handle. It is a free function
// rather than a *Registry method because Go methods cannot introduce their
// own type parameters.
func RegisterPool[T any](r *Registry, name string, pool *workerpool.Pool[T], shutdownTimeout time.Duration) {
	r.components.Register(lifecycle.NewPoolComponent(name, pool, shutdownTimeout))
	r.handles.Register(name, pool.Handle())
}

// RegisterScheduler wraps scheduler as a lifecycle.Component under name and
// records its handle for later lookup via Handle.
func (r *Registry) RegisterScheduler(name string, scheduler *task.Scheduler) {
	r.components.Register(lifecycle.NewSchedulerComponent(name, scheduler))
	r.handles.Register(name, scheduler.Handle())
}

// Handle returns the handle registered under name, and whether one exists.
// A caller that also knows the concrete type behind name can turn this into
// a live reference with core.Lookup.
func (r *Registry) Handle(name string) (h core.Handle, ok bool) {
	h = r.handles.Get(name)
	return h, h != 0
}

// Components exposes the underlying ComponentManager for callers that need
// dependency wiring (AddDependency) or per-component start/stop control
// beyond the bulk operations below.
func (r *Registry) Components() lifecycle.ComponentManager {
	return r.components
}

// StartAll brings every registered component up. See
// lifecycle.ComponentManager.StartAll.
func (r *Registry) StartAll() error {
	return r.components.StartAll()
}

// StopAll tears every registered component down -- in reverse registration
// order, modulo any AddDependency edges -- aggregating every component's
// shutdown error into one. See lifecycle.ComponentManager.StopAll.
func (r *Registry) StopAll() error {
	return r.components.StopAll()
}

// StopAllWithTimeout is StopAll bounded by timeout.
func (r *Registry) StopAllWithTimeout(timeout time.Duration) error {
	return r.components.StopAllWithTimeout(timeout)
}
