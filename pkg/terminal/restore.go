// ABOUTME: Panic handlers that put the tty back into its saved mode before reporting the panic.
// ABOUTME: RestoreOnPanic ends the process; RecoverGoroutine lets main decide how to shut down.

package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
)

// RestoreOnPanic is deferred by the goroutine that owns t. On panic the
// saved mode is reinstalled before the panic and its stack go to stderr,
// then the process exits 1.
func RestoreOnPanic(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	_ = t.ExitRawMode()

	fmt.Fprintf(os.Stderr, "\npanic: %v\n\n%s\n", r, debug.Stack())
	os.Exit(1)
}

// RecoverGoroutine is deferred by the key loop goroutine. It restores t and
// reports the panic, then returns normally so main still closes the sink.
func RecoverGoroutine(t Terminal) {
	r := recover()
	if r == nil {
		return
	}

	_ = t.ExitRawMode()

	fmt.Fprintf(os.Stderr, "\nkey loop panic: %v\n\n%s\n", r, debug.Stack())
}
