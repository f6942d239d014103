package guard

// CheckStack verifies that a region painted from sp stays inside the reserved
// stack [bottom, top). It catches a painter running on some other stack, such
// as a goroutine task stack, and a stack pointer already too deep for the
// configured word count.
func CheckStack(cfg Config, sp, bottom, top uintptr) error {
	if sp <= bottom || sp > top {
		return ErrOutsideStack
	}
	words := cfg.WordCount()
	if words > 0 && uintptr(words)*WordSize > sp-bottom {
		return ErrRegionBelowStack
	}
	return nil
}
