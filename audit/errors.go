package audit

import "errors"

var (
	ErrCycle          = errors.New("boot plan contains a cycle")
	ErrBackward       = errors.New("boot sequence moved backward")
	ErrOutOfOrder     = errors.New("boot sequence skipped or reordered a stage")
	ErrDiscontinuous  = errors.New("boot trace is not continuous")
	ErrNoHalt         = errors.New("boot sequence did not halt")
	ErrUsageTooLarge  = errors.New("simulated stack usage exceeds the simulated memory")
	ErrInvalidTargets = errors.New("target table is invalid")
	ErrInvalidConfig  = errors.New("guard config cannot be simulated")
)
