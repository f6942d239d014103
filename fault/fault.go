// Package fault is the process-wide trap for failed consistency checks.
//
// A failed assertion is always fatal: the location is optionally written to a
// diagnostic channel and execution then halts for good.
package fault

import (
	"io"
	"strconv"

	"omibyte.io/stackguard/trap"
)

// Location identifies the source of a failed check.
type Location struct {
	File string
	Line int
}

func (l Location) String() string {
	return l.File + ":" + strconv.Itoa(l.Line)
}

// Handler reports a failed assertion and halts.
type Handler struct {
	// Channel receives the diagnostic line. May be nil.
	Channel io.Writer
	// Halter is entered after reporting. Defaults to trap.Spin.
	Halter trap.Halter
}

// Fail reports loc on the diagnostic channel, if any, and halts. It never
// returns. A nil handler halts with trap.Spin.
func (h *Handler) Fail(loc Location) {
	var halter trap.Halter
	if h != nil {
		h.report(loc)
		halter = h.Halter
	}
	trap.Forever(halter)
}

func (h *Handler) report(loc Location) {
	if h.Channel == nil {
		return
	}

	// The channel is instrumentation only. Whatever it does, the halt
	// still has to happen.
	defer func() {
		_ = recover()
	}()
	_, _ = h.Channel.Write(Message(loc))
}

// Message is the diagnostic line written for loc.
func Message(loc Location) []byte {
	return []byte("assertion failed: " + loc.String() + "\n")
}

var installed *Handler

// Install makes h the process-wide handler and returns the previous one.
func Install(h *Handler) *Handler {
	prev := installed
	installed = h
	return prev
}

// Installed returns the current process-wide handler.
func Installed() *Handler {
	return installed
}

// Fail routes loc to the installed handler. It never returns.
func Fail(loc Location) {
	installed.Fail(loc)
}

// Assert halts through Fail unless cond holds.
func Assert(cond bool, loc Location) {
	if !cond {
		Fail(loc)
	}
}
