package guard

// WordSize is the width in bytes of a painted word.
const WordSize = 4

// The default layout. DefaultStackSize must equal the stack reserved by the
// default linker script (__stack_top - __stack_bottom).
const (
	DefaultStackSize           = 0x300
	DefaultBudgetWords         = 192
	DefaultSafetyMargin        = 5
	DefaultSentinel     uint32 = 0xDEADBEEF
)

// Each expression overflows uint unless the budget covers exactly the
// reserved stack, which stops the build on a mismatch.
const (
	_ uint = DefaultBudgetWords*WordSize - DefaultStackSize
	_ uint = DefaultStackSize - DefaultBudgetWords*WordSize
)

// Config describes the guard region painted at boot.
//
// BudgetWords must be kept in lock-step with the linker-reserved stack.
// Painting more words than are reserved silently overwrites whatever the
// linker placed below the stack. Painting fewer only weakens detection.
type Config struct {
	// BudgetWords is the reserved stack size in words.
	BudgetWords int
	// SafetyMargin is the number of words just below the stack pointer left
	// unpainted so the painter never writes over its own frame.
	SafetyMargin int
	// Sentinel is the pattern written to every word of the region.
	Sentinel uint32
}

var DefaultConfig = Config{
	BudgetWords:  DefaultBudgetWords,
	SafetyMargin: DefaultSafetyMargin,
	Sentinel:     DefaultSentinel,
}

// WordCount returns the number of words Paint writes.
func (c Config) WordCount() int {
	return c.BudgetWords - c.SafetyMargin
}

// Validate checks the configuration against the number of bytes the linker
// reserved for the stack.
func (c Config) Validate(reservedBytes uintptr) error {
	if c.SafetyMargin < 0 {
		return ErrNegativeMargin
	}
	if c.WordCount() <= 0 {
		return ErrEmptyRegion
	}
	if uintptr(c.BudgetWords)*WordSize != reservedBytes {
		return ErrBudgetMismatch
	}
	return nil
}
