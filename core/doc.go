// Package core is the object runtime underneath the rest of the toolkit.
//
// Every long-lived object in Nifty (queues, pools, scheduled tasks) embeds
// a Header as its first field. The Header stamps the object with a
// colon-delimited, ancestor-first class path (e.g. "core:queue:pool"),
// assigns it a process-wide Handle, and tracks a reference count. Handles
// are looked up through a single process-wide table guarded by one mutex;
// a successful lookup hands back another live reference that the caller
// must release with Discard. Casting between class levels is a prefix
// match on the class path, anchored on colon boundaries so "core:queue"
// does not accidentally match "core:queuex".
//
// This mirrors, in idiomatic Go, the single-inheritance-plus-RTTI-string
// scheme of the C runtime the toolkit's API is modeled on: embedding
// replaces the manual vtable-of-destructors chain, and generics replace
// the cast-by-class-prefix helpers that would otherwise need to be
// hand-written per subclass.
package core
