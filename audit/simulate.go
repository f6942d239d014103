package audit

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"omibyte.io/stackguard/boot"
	"omibyte.io/stackguard/fault"
	"omibyte.io/stackguard/guard"
	"omibyte.io/stackguard/sim"
	"omibyte.io/stackguard/trap"
)

const (
	// simulatedRAM is where the simulated stack region is placed.
	simulatedRAM = 0x2000_0000
	// spareWords of neighbouring static data sit below the reserved stack.
	spareWords = 16
	// neighbourPattern marks the static data below the stack.
	neighbourPattern = 0x0BADF00D
)

// Simulation describes one simulated boot.
type Simulation struct {
	Config guard.Config
	// Usage is the number of words the entry routine pushes below the
	// guard base.
	Usage int
	// Fail, if set, makes the entry routine raise an assertion failure at
	// this location instead of returning.
	Fail *fault.Location
	// Hang makes the run loop block forever, as a healthy application's
	// loop does. The simulation then ends with ErrNoHalt.
	Hang bool
	// Diagnostics receives fault output.
	Diagnostics io.Writer
}

func checkConfig(cfg guard.Config) error {
	if cfg.SafetyMargin < 0 {
		return guard.ErrNegativeMargin
	}
	if cfg.BudgetWords <= 0 || cfg.WordCount() <= 0 {
		return guard.ErrEmptyRegion
	}
	return nil
}

// Result is the outcome of a simulated boot.
type Result struct {
	Region      guard.Region
	Report      guard.Report
	Transitions []Transition
	Final       boot.State
	// LoopCalls counts run loop invocations.
	LoopCalls int
	// NeighbourCorrupted is set when stack growth reached past the reserved
	// stack into the static data below it.
	NeighbourCorrupted bool
}

// Simulate runs a complete boot sequence against simulated RAM laid out as a
// reserved stack of Config.BudgetWords words with static data below it. The
// stack pointer at paint time sits SafetyMargin words below the top, as it
// would after the reset handler's own frame.
func Simulate(ctx context.Context, s Simulation) (Result, error) {
	cfg := s.Config
	if err := checkConfig(cfg); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if s.Usage > cfg.BudgetWords-cfg.SafetyMargin+spareWords {
		return Result{}, ErrUsageTooLarge
	}

	mem := sim.New(simulatedRAM, spareWords+cfg.BudgetWords)
	mem.Fill(neighbourPattern)
	top := mem.High()
	sp := top - uintptr(cfg.SafetyMargin)*guard.WordSize

	painter := &guard.Painter{
		Config:       cfg,
		Memory:       mem,
		StackPointer: func() uintptr { return sp },
	}

	var result Result
	recorder := &Recorder{}
	halt := trap.HalterFunc(runtime.Goexit)

	seq := &boot.Sequencer{
		Painter: painter,
		Entry: func(base uintptr) {
			result.Region = painter.Region(base)
			mem.Grow(base, s.Usage, 0)
			if s.Fail != nil {
				fault.Fail(*s.Fail)
			}
		},
		Loop: func() {
			result.LoopCalls++
			if s.Hang {
				select {}
			}
		},
		Faults: &fault.Handler{Channel: s.Diagnostics, Halter: halt},
		Halter: halt,
	}

	looping := make(chan struct{})
	seq.Observe = func(from, to boot.State) {
		recorder.Observe(from, to)
		if to == boot.LoopRunning {
			close(looping)
		}
	}

	// The sequencer installs its own fault handler. The previous one is put
	// back by the sequencer goroutine itself once it halts, so a sequence
	// that never halts keeps the handler it installed.
	prev := fault.Installed()
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer fault.Install(prev)
		seq.Run()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// Orders the sequencer's handler installation before our return
		// once the application loop has been reached.
		select {
		case <-looping:
		default:
		}
		return Result{}, ErrNoHalt
	}

	result.Transitions = recorder.Transitions
	result.Final = recorder.Last()
	result.Report = result.Region.Scan(mem)

	bottom := top - uintptr(cfg.BudgetWords)*guard.WordSize
	for addr := mem.Low(); addr < bottom; addr += guard.WordSize {
		if mem.LoadWord(addr) != neighbourPattern {
			result.NeighbourCorrupted = true
			break
		}
	}

	if err := DefaultPlan().Check(result.Transitions); err != nil {
		return result, err
	}
	return result, nil
}
