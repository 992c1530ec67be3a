package basen

import "errors"

var (
	// ErrMalformed is returned when input contains characters outside the
	// alphabet or has a length that cannot be decoded.
	ErrMalformed = errors.New("malformed base-n input")
)
