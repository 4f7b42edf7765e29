package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every input rejection.
// Shells check it with errors.Is to tell user mistakes from internal failures.
var ErrValidation = errors.New("validation failed")

var (
	ErrEmptyTitle      = fmt.Errorf("%w: title is required", ErrValidation)
	ErrEmptyURL        = fmt.Errorf("%w: url is required", ErrValidation)
	ErrUnknownCategory = fmt.Errorf("%w: unknown category", ErrValidation)
	ErrCategoryIndex   = fmt.Errorf("%w: category index out of range", ErrValidation)
)

// IsValidation reports whether err is an input rejection.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
