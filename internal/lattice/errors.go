package lattice

import (
	"errors"
	"fmt"
)

// Domain errors for lattice construction and mutation.
var (
	// ErrInvalidParameter is the base error for all construction failures;
	// errors.Is(err, ErrInvalidParameter) matches every error below.
	ErrInvalidParameter = errors.New("lattice: invalid parameter")

	// ErrInvalidSize indicates a non-positive or mismatched side length.
	ErrInvalidSize = fmt.Errorf("%w: invalid size", ErrInvalidParameter)

	// ErrInvalidTemperature indicates a temperature <= 0, which would make
	// the Metropolis acceptance probability undefined.
	ErrInvalidTemperature = fmt.Errorf("%w: temperature must be positive", ErrInvalidParameter)

	// ErrInvalidSpin indicates a cell value outside {+1, -1}.
	ErrInvalidSpin = fmt.Errorf("%w: spin must be +1 or -1", ErrInvalidParameter)
)
