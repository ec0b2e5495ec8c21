package record

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAnObject is returned when an element of the input sequence is not an object.
	ErrNotAnObject = errors.New("record is not an object")

	// ErrNotASequence is returned when the input is not a list of records.
	ErrNotASequence = errors.New("input is not a sequence of records")

	// ErrUnknownFormat is returned for file formats without a decoder.
	ErrUnknownFormat = errors.New("unknown record format")

	// ErrDecodeFailed wraps syntax errors from the underlying parser.
	ErrDecodeFailed = errors.New("failed to decode records")
)

// DecodeError points at the element of the input sequence that could not be decoded.
type DecodeError struct {
	Index int
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
