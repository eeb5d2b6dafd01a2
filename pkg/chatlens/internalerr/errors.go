package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrLoad             = errors.New("load failed")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInsufficientData = errors.New("insufficient data")
)
