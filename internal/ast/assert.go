package ast

import "fmt"

// DebugAssertions reports whether this build panics on internal errors.
// Enable with the frond_debug build tag.
const DebugAssertions = debugAssertions

// Assert flags an internal invariant violation. With assertions enabled it
// panics; otherwise it returns and the caller falls back to a safe
// default (empty result, no mutation).
func Assert(cond bool, format string, args ...any) {
	if cond || !debugAssertions {
		return
	}
	panic(fmt.Sprintf("ast: internal error: "+format, args...))
}
