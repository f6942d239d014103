package trap

// Halter stops all forward progress. Implementations must not return; if
// one does, Forever calls it again.
type Halter interface {
	Halt()
}

// HalterFunc adapts a plain function to the Halter interface.
type HalterFunc func()

func (f HalterFunc) Halt() {
	f()
}

// Spin is the bare-metal halt: a busy-wait with no side effects.
var Spin Halter = HalterFunc(spin)

func spin() {
	for {
	}
}

// Forever enters the terminal halt. It never returns. A nil halter spins
// without touching any package state, so Forever is safe to call before
// .data and .bss are initialized.
func Forever(h Halter) {
	if h == nil {
		spin()
	}
	for {
		h.Halt()
	}
}
