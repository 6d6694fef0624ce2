// Package diag is the library's single ambient observability hook: a
// trace function the core packages never call directly (the scanner,
// parser, and serializer stay silent), but that the CLI adapter wires to
// log.Printf under -v.
package diag

import "sync/atomic"

var hook atomic.Value // func(string, ...any)

func init() {
	hook.Store(noop)
}

func noop(string, ...any) {}

// Tracef forwards to whatever hook SetHook installed, or does nothing.
func Tracef(format string, args ...any) {
	hook.Load().(func(string, ...any))(format, args...)
}

// SetHook installs fn as the trace sink. Passing nil restores the no-op.
func SetHook(fn func(format string, args ...any)) {
	if fn == nil {
		fn = noop
	}
	hook.Store(fn)
}
