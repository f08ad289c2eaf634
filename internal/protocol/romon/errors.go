package romon

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated     = errors.New("romon: truncated data")
	ErrInvalidLength = errors.New("romon: invalid length")
)

// DecodeError reports the read that stopped decoding of a frame.
type DecodeError struct {
	Field  string
	Offset int
	Need   int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: field=%s offset=%d need=%d", e.Err, e.Field, e.Offset, e.Need)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsInvalid reports whether err stopped a frame because it was truncated or
// its internal lengths did not add up.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrTruncated) || errors.Is(err, ErrInvalidLength)
}
