package guard

// Memory is word-addressable memory. Addresses are byte addresses aligned to
// WordSize.
type Memory interface {
	LoadWord(addr uintptr) uint32
	StoreWord(addr uintptr, value uint32)
}

// StackPointer returns the current stack pointer.
type StackPointer func() uintptr

// Painter fills the unused stack below the stack pointer with the sentinel.
type Painter struct {
	Config       Config
	Memory       Memory
	StackPointer StackPointer
}

// Paint captures the stack pointer and writes Config.WordCount() sentinel
// words directly below it, walking toward lower addresses. Nothing at or
// above the captured stack pointer is written. The stack pointer is returned
// as the guard base.
//
// Paint must run before interrupts are enabled and before any other code has
// pushed state onto the stack.
func (p *Painter) Paint() uintptr {
	base := p.StackPointer()
	sentinel := p.Config.Sentinel
	addr := base
	for n := p.Config.WordCount(); n > 0; n-- {
		addr -= WordSize
		p.Memory.StoreWord(addr, sentinel)
	}
	return base
}

// Region returns the region Paint covered for the given guard base.
func (p *Painter) Region(base uintptr) Region {
	words := p.Config.WordCount()
	if words < 0 {
		words = 0
	}
	return Region{
		Base:     base,
		Words:    words,
		Sentinel: p.Config.Sentinel,
	}
}
