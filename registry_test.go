package nifty

import (
	"testing"
	"time"

	"github.com/seanpburke/nifty/config"
	"github.com/seanpburke/nifty/task"
	"github.com/seanpburke/nifty/workerpool"
)

func TestLoadPoolOptions(t *testing.T) {
	props := config.NewProperties()
	props.PutInt("ingest.max_threads", 8)
	props.PutInt("ingest.queue_limit", 200)

	def := PoolOptions{MinThreads: 1, MaxThreads: 2, QueueLimit: 16, IdleTimeout: time.Second}
	got := LoadPoolOptions(props, "ingest", def)

	if got.MaxThreads != 8 {
		t.Errorf("MaxThreads = %d, want 8", got.MaxThreads)
	}
	if got.QueueLimit != 200 {
		t.Errorf("QueueLimit = %d, want 200", got.QueueLimit)
	}
	// min_threads and idle_timeout_ms were never set, so they fall back to def.
	if got.MinThreads != def.MinThreads {
		t.Errorf("MinThreads = %d, want default %d", got.MinThreads, def.MinThreads)
	}
	if got.IdleTimeout != def.IdleTimeout {
		t.Errorf("IdleTimeout = %v, want default %v", got.IdleTimeout, def.IdleTimeout)
	}
}

func TestRegistryHandleLookup(t *testing.T) {
	r := NewRegistry()

	pool := workerpool.NewPool[int](func(int) {}, 1, 2, 8, time.Second)
	RegisterPool(r, "ingest-pool", pool, time.Second)

	sched := task.NewScheduler()
	r.RegisterScheduler("ingest-scheduler", sched)

	if _, ok := r.Handle("does-not-exist"); ok {
		t.Error("Handle() found a handle for a name that was never registered")
	}

	h, ok := r.Handle("ingest-pool")
	if !ok {
		t.Fatal("Handle() did not find the registered pool")
	}
	if h != pool.Handle() {
		t.Errorf("Handle() = %v, want %v", h, pool.Handle())
	}

	if _, ok := r.Handle("ingest-scheduler"); !ok {
		t.Error("Handle() did not find the registered scheduler")
	}

	if err := r.StopAllWithTimeout(2 * time.Second); err != nil {
		t.Fatalf("StopAllWithTimeout() error = %v", err)
	}
}
