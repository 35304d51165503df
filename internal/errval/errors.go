package errval

import (
	"errors"
	"fmt"
)

var (
	ErrInternal   = errors.New("internal server error")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// Validation failures, all matching ErrValidation via errors.Is
var (
	ErrIdenticalRecords = fmt.Errorf("%w: current and baseline record must differ", ErrValidation)
	ErrInvalidPage      = fmt.Errorf("%w: page must be a positive integer", ErrValidation)
	ErrInvalidPageSize  = fmt.Errorf("%w: page size must be a positive integer", ErrValidation)
	ErrPageSizeTooLarge = fmt.Errorf("%w: page size exceeds the allowed maximum", ErrValidation)
)
