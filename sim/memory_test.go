package sim

import (
	"errors"
	"testing"
)

func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Errorf("expected panic with %v, got %v", target, r)
		}
	}()
	fn()
}

func TestMemoryBounds(t *testing.T) {
	m := New(0x2000_0000, 4)

	if m.High() != 0x2000_0010 {
		t.Fatalf("unexpected high address %#x", m.High())
	}

	m.StoreWord(0x2000_000C, 7)
	if v := m.LoadWord(0x2000_000C); v != 7 {
		t.Errorf("expected 7, got %d", v)
	}

	expectPanic(t, ErrOutOfRange, func() { m.StoreWord(0x2000_0010, 1) })
	expectPanic(t, ErrOutOfRange, func() { m.LoadWord(0x1FFF_FFFC) })
	expectPanic(t, ErrUnaligned, func() { m.LoadWord(0x2000_0002) })
}

func TestGrowLogsPushes(t *testing.T) {
	m := New(0x1000, 8)
	sp := m.Grow(m.High(), 3, 0xAA)

	if sp != m.High()-12 {
		t.Errorf("unexpected stack pointer %#x", sp)
	}

	writes := m.Writes()
	expected := []uintptr{0x101C, 0x1018, 0x1014}
	if len(writes) != len(expected) {
		t.Fatalf("expected %d writes, got %d", len(expected), len(writes))
	}
	for i := range expected {
		if writes[i] != expected[i] {
			t.Errorf("write %d: expected %#x, got %#x", i, expected[i], writes[i])
		}
	}

	m.ResetWrites()
	m.Fill(0)
	if len(m.Writes()) != 0 {
		t.Error("Fill must not log writes")
	}
}
