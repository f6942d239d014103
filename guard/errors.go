package guard

import "errors"

var (
	ErrBudgetMismatch = errors.New("stack budget does not match the reserved stack size")
	ErrEmptyRegion    = errors.New("safety margin leaves no words to paint")
	ErrNegativeMargin = errors.New("safety margin is negative")
)

var (
	ErrOutsideStack     = errors.New("stack pointer is outside the reserved stack")
	ErrRegionBelowStack = errors.New("guard region extends below the reserved stack")
)
