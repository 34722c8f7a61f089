package core

import (
	"sync"
	"sync/atomic"
)

// handleTable is the process-wide handle -> object map: one mutex, short
// critical sections, and an interface-typed value per entry so any
// subclass can share the table.
type handleTable struct {
	mu      sync.Mutex
	next    uint64
	objects map[Handle]any
}

var table = &handleTable{
	next:    1,
	objects: make(map[Handle]any),
}

// alloc inserts self under a freshly minted handle and returns it. The
// source runtime recycles handle slots behind a generation counter to
// bound memory growth; this port instead hands out a monotonically
// increasing counter that is never reused. That trivially satisfies the
// spec's "stable for the object's lifetime" and "does not alias a
// recycled handle" invariants, at the cost of the counter being
// unbounded rather than wrapping -- an acceptable trade in a managed
// runtime where 2^64 allocations is not a practical concern.
func (t *handleTable) alloc(self any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := Handle(t.next)
	t.next++
	t.objects[h] = self
	return h
}

// lookup finds the object behind h, verifies its class matches prefix at
// a colon boundary, and if so increments its refcount before returning
// it. The refcount bump happens while still holding the table lock so a
// concurrent Discard can't free the object between the class check and
// the increment; it uses the same atomic op Retain/Discard use on
// h.refCount, since a Retain or Discard on this object's other live
// references can run concurrently with this lookup without taking
// t.mu at all.
func (t *handleTable) lookup(h Handle, prefix string) (any, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	self, ok := t.objects[h]
	if !ok {
		return nil, false
	}
	hdr := self.(hasHeader).header()
	if !classMatches(hdr.class, prefix) {
		return nil, false
	}
	atomic.AddInt32(&hdr.refCount, 1)
	return self, true
}

func (t *handleTable) remove(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.objects, h)
}

// apply calls fn once for every live object whose class starts with
// prefix at a colon boundary, holding the table lock for the whole
// iteration as the design calls for. fn must not call back into the
// table (Lookup, Discard, Apply) or it will deadlock.
func (t *handleTable) apply(prefix string, fn func(self any)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, self := range t.objects {
		hdr := self.(hasHeader).header()
		if classMatches(hdr.class, prefix) {
			fn(self)
		}
	}
}

// Lookup resolves h to a *T, verifying along the way that the live
// object's class path starts with classPrefix at a colon boundary. A
// successful Lookup hands back a new live reference; the caller must
// release it with a Discard once done, exactly as with a directly held
// reference.
//
// Lookup returns ErrInvalidHandle both when the handle is unknown (dead
// or never issued) and when it resolves to an object of some other
// type -- the source API treats both as "not found", never as a fault.
func Lookup[T any](h Handle, classPrefix string) (*T, error) {
	self, ok := table.lookup(h, classPrefix)
	if !ok {
		return nil, ErrInvalidHandle
	}
	t, ok := self.(*T)
	if !ok {
		self.(hasHeader).header().Discard()
		return nil, ErrInvalidHandle
	}
	return t, nil
}

// Cast checks whether obj's class path starts with classPrefix at a
// colon boundary and, if so, asserts it to *T. Unlike Lookup this works
// directly off an in-hand reference and does not touch the handle
// table or the refcount -- it is the direct analogue of the source
// API's cast(obj, class_prefix).
func Cast[T any](obj any, classPrefix string) (*T, bool) {
	hh, ok := obj.(hasHeader)
	if !ok || !classMatches(hh.header().class, classPrefix) {
		return nil, false
	}
	t, ok := obj.(*T)
	return t, ok
}

// Apply calls fn once for every live object whose class path starts
// with classPrefix at a colon boundary. It does not take out a
// reference on the objects it visits; fn must not retain self past the
// call without its own Lookup.
func Apply(classPrefix string, fn func(self any)) {
	table.apply(classPrefix, fn)
}
