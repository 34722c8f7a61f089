package task

import "container/heap"

// taskHeap is a min-heap of *Task ordered by (abstime, insertion sequence),
// satisfying invariant T2: ties at the same abstime fire in the order they
// were scheduled. It tracks each Task's heapIndex as Swap/Push/Pop move
// things around so Scheduler.Cancel can remove an arbitrary task in
// O(log n) via heap.Remove instead of a linear scan.
type taskHeap []*Task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].abstime.Equal(h[j].abstime) {
		return h[i].seq < h[j].seq
	}
	return h[i].abstime.Before(h[j].abstime)
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *taskHeap) Push(x any) {
	t := x.(*Task)
	t.heapIndex = len(*h)
	*h = append(*h, t)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.heapIndex = -1
	*h = old[:n-1]
	return t
}

// peek returns the earliest-firing task without removing it, or nil if the
// heap is empty.
func (h taskHeap) peek() *Task {
	if len(h) == 0 {
		return nil
	}
	return h[0]
}

var _ heap.Interface = (*taskHeap)(nil)
