package queue

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/seanpburke/nifty/core"
)

func TestEnqueueDequeueFIFO(t *testing.T) {
	q := New[int](0)
	defer q.Discard()

	for i := 0; i < 5; i++ {
		if err := q.Enqueue(i, -1); err != nil {
			t.Fatalf("Enqueue(%d) error = %v", i, err)
		}
	}
	for i := 0; i < 5; i++ {
		got, err := q.Dequeue(-1)
		if err != nil {
			t.Fatalf("Dequeue() error = %v", err)
		}
		if got != i {
			t.Fatalf("Dequeue() = %d, want %d", got, i)
		}
	}
}

func TestEnqueueBlocksWhenFull(t *testing.T) {
	q := New[int](1)
	defer q.Discard()

	if err := q.Enqueue(1, -1); err != nil {
		t.Fatalf("Enqueue(1) error = %v", err)
	}

	if err := q.Enqueue(2, 0); !errors.Is(err, core.ErrTimeout) {
		t.Fatalf("Enqueue(2, poll) on full queue = %v, want ErrTimeout", err)
	}

	done := make(chan error, 1)
	go func() { done <- q.Enqueue(2, -1) }()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("Enqueue returned before space freed up")
	default:
	}

	if _, err := q.Dequeue(-1); err != nil {
		t.Fatalf("Dequeue() error = %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("blocked Enqueue error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked Enqueue never unblocked")
	}
}

func TestDequeueTimesOutWhenEmpty(t *testing.T) {
	q := New[int](0)
	defer q.Discard()

	_, err := q.Dequeue(10 * time.Millisecond)
	if !errors.Is(err, core.ErrTimeout) {
		t.Fatalf("Dequeue() on empty queue = %v, want ErrTimeout", err)
	}
}

func TestShutdownDrainsPendingItems(t *testing.T) {
	q := New[int](0)
	defer q.Discard()

	for i := 0; i < 3; i++ {
		if err := q.Enqueue(i, -1); err != nil {
			t.Fatalf("Enqueue(%d) error = %v", i, err)
		}
	}

	shutdownDone := make(chan error, 1)
	go func() { shutdownDone <- q.Shutdown(time.Second) }()

	for i := 0; i < 3; i++ {
		got, err := q.Dequeue(time.Second)
		if err != nil {
			t.Fatalf("Dequeue() during drain error = %v", err)
		}
		if got != i {
			t.Fatalf("Dequeue() during drain = %d, want %d", got, i)
		}
	}

	if err := <-shutdownDone; err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if _, err := q.Dequeue(0); !errors.Is(err, core.ErrShutdown) {
		t.Fatalf("Dequeue() after drain = %v, want ErrShutdown", err)
	}
	if err := q.Enqueue(9, 0); !errors.Is(err, core.ErrShutdown) {
		t.Fatalf("Enqueue() after shutdown = %v, want ErrShutdown", err)
	}
}

func TestShutdownOnEmptyQueueIsImmediate(t *testing.T) {
	q := New[int](0)
	defer q.Discard()

	if err := q.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown() on empty queue error = %v", err)
	}
	if err := q.Shutdown(0); !errors.Is(err, core.ErrShutdown) {
		t.Fatalf("second Shutdown() = %v, want ErrShutdown", err)
	}
}

func TestConcurrentProducersConsumers(t *testing.T) {
	q := New[int](4)
	defer q.Discard()

	const n = 200
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			if err := q.Enqueue(i, -1); err != nil {
				t.Errorf("Enqueue(%d) error = %v", i, err)
			}
		}
	}()

	sum := 0
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			got, err := q.Dequeue(-1)
			if err != nil {
				t.Errorf("Dequeue() error = %v", err)
				return
			}
			sum += got
		}
	}()

	wg.Wait()
	want := n * (n - 1) / 2
	if sum != want {
		t.Fatalf("sum of dequeued items = %d, want %d", sum, want)
	}
}
