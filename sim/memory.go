// Package sim simulates target RAM on the host so boot code can be run and
// inspected without a device.
package sim

import (
	"errors"
	"fmt"
)

const wordSize = 4

var (
	ErrOutOfRange = errors.New("address outside simulated memory")
	ErrUnaligned  = errors.New("unaligned word access")
)

// Memory is a block of 32-bit words covering [Low, High). Every store is
// logged. Accesses outside the block or off word alignment panic, which is
// the host stand-in for silently corrupting a neighbour on the device.
type Memory struct {
	low    uintptr
	words  []uint32
	writes []uintptr
}

// New returns zeroed memory of n words starting at low.
func New(low uintptr, n int) *Memory {
	return &Memory{
		low:   low,
		words: make([]uint32, n),
	}
}

func (m *Memory) Low() uintptr {
	return m.low
}

func (m *Memory) High() uintptr {
	return m.low + uintptr(len(m.words))*wordSize
}

func (m *Memory) index(addr uintptr) int {
	if addr%wordSize != 0 {
		panic(fmt.Errorf("%w: %#x", ErrUnaligned, addr))
	}
	if addr < m.low || addr >= m.High() {
		panic(fmt.Errorf("%w: %#x not in [%#x, %#x)", ErrOutOfRange, addr, m.low, m.High()))
	}
	return int((addr - m.low) / wordSize)
}

func (m *Memory) LoadWord(addr uintptr) uint32 {
	return m.words[m.index(addr)]
}

func (m *Memory) StoreWord(addr uintptr, value uint32) {
	m.words[m.index(addr)] = value
	m.writes = append(m.writes, addr)
}

// Writes returns the addresses stored to, in order.
func (m *Memory) Writes() []uintptr {
	return append([]uintptr(nil), m.writes...)
}

// ResetWrites clears the write log.
func (m *Memory) ResetWrites() {
	m.writes = m.writes[:0]
}

// Fill sets every word to value without logging.
func (m *Memory) Fill(value uint32) {
	for i := range m.words {
		m.words[i] = value
	}
}

// Grow emulates n words of stack pushed below sp and returns the new stack
// pointer.
func (m *Memory) Grow(sp uintptr, n int, value uint32) uintptr {
	for ; n > 0; n-- {
		sp -= wordSize
		m.StoreWord(sp, value)
	}
	return sp
}
