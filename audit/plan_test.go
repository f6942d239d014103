package audit

import (
	"errors"
	"testing"

	"omibyte.io/stackguard/boot"
)

func TestDefaultPlanRanks(t *testing.T) {
	plan := DefaultPlan()
	for i, s := range boot.States() {
		rank, ok := plan.Rank(s)
		if !ok {
			t.Fatalf("state %v missing from plan", s)
		}
		if rank != i {
			t.Errorf("%v: expected rank %d, got %d", s, i, rank)
		}
	}
}

func TestPlanCheck(t *testing.T) {
	tr := func(from, to boot.State) Transition {
		return Transition{From: from, To: to}
	}

	tests := []struct {
		name  string
		trace []Transition
		err   error
	}{
		{"empty", nil, nil},
		{"full", []Transition{
			tr(boot.NotStarted, boot.GuardPainted),
			tr(boot.GuardPainted, boot.EntryRunning),
			tr(boot.EntryRunning, boot.LoopRunning),
			tr(boot.LoopRunning, boot.Halted),
		}, nil},
		{"entry before paint", []Transition{
			tr(boot.NotStarted, boot.EntryRunning),
		}, ErrOutOfOrder},
		{"skipped loop", []Transition{
			tr(boot.NotStarted, boot.GuardPainted),
			tr(boot.GuardPainted, boot.EntryRunning),
			tr(boot.EntryRunning, boot.Halted),
		}, ErrOutOfOrder},
		{"leaves halt", []Transition{
			tr(boot.NotStarted, boot.GuardPainted),
			tr(boot.GuardPainted, boot.EntryRunning),
			tr(boot.EntryRunning, boot.LoopRunning),
			tr(boot.LoopRunning, boot.Halted),
			tr(boot.Halted, boot.LoopRunning),
		}, ErrBackward},
		{"gap", []Transition{
			tr(boot.NotStarted, boot.GuardPainted),
			tr(boot.EntryRunning, boot.LoopRunning),
		}, ErrDiscontinuous},
	}

	plan := DefaultPlan()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := plan.Check(tc.trace); !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestNewPlanRejectsCycles(t *testing.T) {
	_, err := NewPlan([]Transition{
		{From: boot.GuardPainted, To: boot.EntryRunning},
		{From: boot.EntryRunning, To: boot.GuardPainted},
	})
	if !errors.Is(err, ErrCycle) {
		t.Errorf("expected %v, got %v", ErrCycle, err)
	}
}
