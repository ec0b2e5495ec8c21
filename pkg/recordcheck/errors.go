package recordcheck

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is reported when a required field is absent from a record.
	ErrMissingField = errors.New("missing")

	// ErrInvalidValue is reported when a present field holds a value outside its allowed set.
	ErrInvalidValue = errors.New("value not allowed")
)

// Violation identifies the first record and field that failed validation.
type Violation struct {
	Index  int    // zero-based position of the offending record
	Field  string // field the failing predicate is bound to
	Reason string // human-readable cause, e.g. "missing"
	Err    error  // cause, wraps ErrMissingField or ErrInvalidValue
}

func (v *Violation) Error() string {
	return fmt.Sprintf("record %d: field %q: %s", v.Index, v.Field, v.Reason)
}

func (v *Violation) Unwrap() error {
	return v.Err
}

// IsMissingField reports whether err is, or wraps, a missing field violation.
func IsMissingField(err error) bool {
	return errors.Is(err, ErrMissingField)
}

// IsInvalidValue reports whether err is, or wraps, an invalid value violation.
func IsInvalidValue(err error) bool {
	return errors.Is(err, ErrInvalidValue)
}

// AsViolation extracts the violation from err, if any.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
