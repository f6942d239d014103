//go:build cortexm

package guard

import (
	"unsafe"

	"omibyte.io/stackguard/fault"
)

//sigo:extern __stack_top __stack_top
//sigo:extern __stack_bottom __stack_bottom

var (
	__stack_top    unsafe.Pointer
	__stack_bottom unsafe.Pointer
)

//go:linkname currentStack runtime.currentStack
func currentStack() unsafe.Pointer

type physical struct{}

func (physical) LoadWord(addr uintptr) uint32 {
	return *(*uint32)(unsafe.Pointer(addr))
}

func (physical) StoreWord(addr uintptr, value uint32) {
	*(*uint32)(unsafe.Pointer(addr)) = value
}

// Live is the memory of the running device.
var Live Memory = physical{}

// Stack returns the bounds of the main stack reserved by the linker script.
func Stack() (bottom, top uintptr) {
	return uintptr(unsafe.Pointer(&__stack_bottom)), uintptr(unsafe.Pointer(&__stack_top))
}

// Reserved returns the number of bytes the linker script reserved for the
// main stack.
func Reserved() uintptr {
	bottom, top := Stack()
	return top - bottom
}

// Layout failures are reported through a nil handler: Physical runs on the
// reset path before .bss is cleared, so the installed handler cannot be read.
var (
	assertLayout = fault.Location{File: "guard/physical_cortexm.go", Line: 63}
	assertStack  = fault.Location{File: "guard/physical_cortexm.go", Line: 79}
)

// Physical returns a painter over the main stack. It has to be called from the
// reset handler, on the main stack and before interrupts are enabled. A config
// that does not match the linked stack reservation, or a stack pointer that
// is not on the main stack when painting, is a fatal fault, since painting
// would then overwrite memory outside the stack.
//
//go:nosplit
func Physical(cfg Config) *Painter {
	if cfg.Validate(Reserved()) != nil {
		(*fault.Handler)(nil).Fail(assertLayout)
	}
	return &Painter{
		Config:       cfg,
		Memory:       physical{},
		StackPointer: checkedStackPointer(cfg),
	}
}

// checkedStackPointer returns the stack pointer of the caller after checking
// that the configured region fits below it on the main stack.
func checkedStackPointer(cfg Config) StackPointer {
	return func() uintptr {
		sp := uintptr(currentStack())
		bottom, top := Stack()
		if CheckStack(cfg, sp, bottom, top) != nil {
			(*fault.Handler)(nil).Fail(assertStack)
		}
		return sp
	}
}
