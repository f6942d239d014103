// Package boot runs the fixed startup sequence: paint the stack guard, hand the
// guard base to the application entry routine, run the application loop and
// halt forever if that loop ever returns.
package boot

import (
	"omibyte.io/stackguard/fault"
	"omibyte.io/stackguard/trap"
)

// Painter paints the stack guard and returns its base address.
type Painter interface {
	Paint() uintptr
}

// Sequencer owns the boot sequence of the device.
type Sequencer struct {
	// Painter is run before anything else.
	Painter Painter
	// Entry receives the guard base. It is expected to return.
	Entry func(guardBase uintptr)
	// Loop is the application run loop. It is expected never to return.
	Loop func()
	// Faults becomes the process-wide fault handler once the guard is
	// painted. If nil, the handler already installed stays in place.
	Faults *fault.Handler
	// Halter is entered if Loop returns. Defaults to trap.Spin.
	Halter trap.Halter
	// Observe, if set, is called on every state transition.
	Observe func(from, to State)

	state State
}

// State returns the current state of the sequence.
func (s *Sequencer) State() State {
	return s.state
}

func (s *Sequencer) enter(next State) {
	prev := s.state
	s.state = next
	if s.Observe != nil {
		s.Observe(prev, next)
	}
}

// Assertion sites in Run. Each Line is the source line of the fault.Assert
// call that reports it.
var (
	assertNotStarted  = fault.Location{File: "boot/sequencer.go", Line: 60}
	assertApplication = fault.Location{File: "boot/sequencer.go", Line: 68}
)

// Run executes the boot sequence. It never returns.
//
// Nothing may run ahead of the painter, so Run must be the first call made on
// the reset path, before interrupts are enabled.
func (s *Sequencer) Run() {
	fault.Assert(s.state == NotStarted && s.Painter != nil, assertNotStarted)

	base := s.Painter.Paint()
	s.enter(GuardPainted)

	if s.Faults != nil {
		fault.Install(s.Faults)
	}
	fault.Assert(s.Entry != nil && s.Loop != nil, assertApplication)

	s.enter(EntryRunning)
	s.Entry(base)

	s.enter(LoopRunning)
	s.Loop()

	// The loop is never supposed to come back. There is no valid state after
	// it, so stop here rather than fall off the end of the reset handler.
	s.enter(Halted)
	trap.Forever(s.Halter)
}
