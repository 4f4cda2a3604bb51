package chipflow

import "errors"

var (
	ErrInvalidWidth   = errors.New("chipflow: available width must be finite and non-negative")
	ErrInvalidSpacing = errors.New("chipflow: spacing must be finite and non-negative")
	ErrInvalidSize    = errors.New("chipflow: measured size must be finite and non-negative")

	// ErrUnsettled is returned by Settle when measurements are still changing
	// after the pass limit, typically because an item's measured width depends
	// on the width it was just given.
	ErrUnsettled = errors.New("chipflow: layout did not settle")
)
