package core

import (
	"errors"
	"testing"
)

type widget struct {
	Header
	destroyed bool
	name      string
}

func newWidget(class, name string) *widget {
	w := &widget{name: name}
	w.Header.Register(w, class, func() { w.destroyed = true })
	return w
}

func TestRegisterLookupDiscard(t *testing.T) {
	w := newWidget("core:x", "alpha")
	h := w.Handle()

	got, err := Lookup[widget](h, "core:x")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != w {
		t.Fatalf("Lookup() = %p, want %p", got, w)
	}

	// refcount is now 2 (constructor ref + lookup ref); two discards
	// should bring it to zero and run the destructor.
	w.Discard()
	if w.destroyed {
		t.Fatal("destroyed after first Discard, want still alive")
	}
	w.Discard()
	if !w.destroyed {
		t.Fatal("not destroyed after refcount reached zero")
	}

	if _, err := Lookup[widget](h, "core:x"); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("Lookup() after discard = %v, want ErrInvalidHandle", err)
	}
}

func TestDiscardUnderflowPanics(t *testing.T) {
	w := newWidget("core:x", "beta")
	w.Discard()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on refcount underflow")
		}
	}()
	w.Discard()
}

func TestCastColonBoundary(t *testing.T) {
	w := newWidget("core:queue:pool", "gamma")
	defer w.Discard()

	if _, ok := Cast[widget](w, "core:queue"); !ok {
		t.Fatal("Cast(core:queue) should succeed on core:queue:pool")
	}
	if _, ok := Cast[widget](w, "core:queuex"); ok {
		t.Fatal("Cast(core:queuex) should not match core:queue:pool")
	}
	if _, ok := Cast[widget](w, "core:queue:poolx"); ok {
		t.Fatal("Cast(core:queue:poolx) should not match core:queue:pool")
	}
}

func TestLookupWrongClassFails(t *testing.T) {
	w := newWidget("core:x", "delta")
	defer w.Discard()

	if _, err := Lookup[widget](w.Handle(), "core:y"); !errors.Is(err, ErrInvalidHandle) {
		t.Fatalf("Lookup() with mismatched prefix = %v, want ErrInvalidHandle", err)
	}
}

func TestApplyVisitsLivePrefixMatches(t *testing.T) {
	a := newWidget("core:x:a", "a")
	b := newWidget("core:x:b", "b")
	c := newWidget("core:y", "c")
	defer a.Discard()
	defer b.Discard()
	defer c.Discard()

	seen := map[string]bool{}
	Apply("core:x", func(self any) {
		seen[self.(*widget).name] = true
	})
	if !seen["a"] || !seen["b"] || seen["c"] {
		t.Fatalf("Apply visited %v, want exactly a and b", seen)
	}
}

func TestJoinClass(t *testing.T) {
	if got := JoinClass("core:queue", "pool"); got != "core:queue:pool" {
		t.Fatalf("JoinClass() = %q, want core:queue:pool", got)
	}
}
