package core

import "strings"

// JoinClass builds a colon-delimited, ancestor-first class path out of a
// parent path and the subclass segment it is extending, e.g.
// JoinClass("core:queue", "pool") == "core:queue:pool". Prefer a const
// string concatenation ("core:queue" + ":pool") when both sides are
// already compile-time constants; JoinClass exists for the rarer case
// where a class path is assembled at runtime.
func JoinClass(parent, segment string) string {
	return parent + ":" + segment
}

// classMatches reports whether class starts with prefix at a colon
// boundary: either class == prefix, or class continues immediately after
// prefix with ":". This is what keeps "core:queue" from falsely matching
// a cast against "core:queuex".
func classMatches(class, prefix string) bool {
	if !strings.HasPrefix(class, prefix) {
		return false
	}
	if len(class) == len(prefix) {
		return true
	}
	return class[len(prefix)] == ':'
}
