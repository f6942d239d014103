package guard

import (
	"testing"

	"omibyte.io/stackguard/sim"
)

const background = 0x5A5A5A5A

// newStack returns simulated RAM with a few live words above the returned
// stack pointer and room below it for the whole budget plus a spare word.
func newStack(cfg Config) (*sim.Memory, uintptr) {
	m := sim.New(0x2000_0000, cfg.BudgetWords+8)
	m.Fill(background)
	return m, m.High() - 4*WordSize
}

func TestPaintDefaultLayout(t *testing.T) {
	m, sp := newStack(DefaultConfig)
	p := &Painter{
		Config:       DefaultConfig,
		Memory:       m,
		StackPointer: func() uintptr { return sp },
	}

	base := p.Paint()
	if base != sp {
		t.Fatalf("expected guard base %#x, got %#x", sp, base)
	}

	if n := DefaultConfig.WordCount(); n != 187 {
		t.Fatalf("expected 187 words, got %d", n)
	}

	painted := 0
	for addr := base - WordSize; addr >= m.Low(); addr -= WordSize {
		if m.LoadWord(addr) != 0xDEADBEEF {
			break
		}
		painted++
	}
	if painted != 187 {
		t.Errorf("expected 187 sentinel words below the base, got %d", painted)
	}

	if v := m.LoadWord(base); v != background {
		t.Errorf("word at guard base was modified: %#x", v)
	}
	if v := m.LoadWord(base - 188*WordSize); v != background {
		t.Errorf("word below the region was modified: %#x", v)
	}
}

func TestPaintStaysInsideRegion(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"default", DefaultConfig},
		{"no margin", Config{BudgetWords: 16, SafetyMargin: 0, Sentinel: 0xCAFEF00D}},
		{"single word", Config{BudgetWords: 6, SafetyMargin: 5, Sentinel: 1}},
		{"empty", Config{BudgetWords: 5, SafetyMargin: 5, Sentinel: 1}},
		{"margin exceeds budget", Config{BudgetWords: 2, SafetyMargin: 5, Sentinel: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, sp := newStack(tc.cfg)
			p := &Painter{
				Config:       tc.cfg,
				Memory:       m,
				StackPointer: func() uintptr { return sp },
			}

			base := p.Paint()
			region := p.Region(base)

			writes := m.Writes()
			if len(writes) != region.Words {
				t.Errorf("expected %d writes, got %d", region.Words, len(writes))
			}
			for _, addr := range writes {
				if addr >= base {
					t.Errorf("write at %#x is at or above the guard base %#x", addr, base)
				}
				if !region.Contains(addr) {
					t.Errorf("write at %#x is outside the region", addr)
				}
			}

			for addr := region.Bottom(); addr < region.Base; addr += WordSize {
				if v := m.LoadWord(addr); v != tc.cfg.Sentinel {
					t.Errorf("word at %#x is %#x, expected sentinel", addr, v)
				}
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		reserved uintptr
		err      error
	}{
		{"default", DefaultConfig, DefaultStackSize, nil},
		{"budget larger than reservation", DefaultConfig, DefaultStackSize - WordSize, ErrBudgetMismatch},
		{"budget smaller than reservation", DefaultConfig, 2 * DefaultStackSize, ErrBudgetMismatch},
		{"margin consumes budget", Config{BudgetWords: 4, SafetyMargin: 4}, 16, ErrEmptyRegion},
		{"negative margin", Config{BudgetWords: 4, SafetyMargin: -1}, 16, ErrNegativeMargin},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(tc.reserved); err != tc.err {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}
