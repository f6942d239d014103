package audit

import (
	"errors"
	"fmt"

	"omibyte.io/stackguard/targets"
)

// Targets validates the guard layout of every entry in the table.
func Targets(table targets.Targets) error {
	var errs []error
	for _, target := range table {
		if err := target.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", target.Series, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTargets, errors.Join(errs...))
	}
	return nil
}
