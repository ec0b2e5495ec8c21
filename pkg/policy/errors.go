package policy

import "errors"

var (
	// ErrUnknownPolicy is returned when a registry has no policy with the requested name.
	ErrUnknownPolicy = errors.New("unknown policy")

	// ErrDuplicatePolicy is returned when registering a name twice.
	ErrDuplicatePolicy = errors.New("policy already registered")

	// ErrInvalidPolicy is returned for documents without a name.
	ErrInvalidPolicy = errors.New("invalid policy")

	// ErrInvalidRule is returned for rules without a field or without any constraint.
	ErrInvalidRule = errors.New("invalid policy rule")

	// ErrReadPolicy wraps I/O and syntax errors while loading a policy document.
	ErrReadPolicy = errors.New("failed to read policy")
)
