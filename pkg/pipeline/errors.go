package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidJob     = errors.New("invalid pipeline job")
	ErrLoadFailed     = errors.New("failed to load records")
	ErrRejected       = errors.New("records rejected by policy")
	ErrDeliveryFailed = errors.New("failed to deliver records")
	ErrCacheMiss      = errors.New("verdict not cached")
)

// TransitionError is returned when a stage change is not allowed.
type TransitionError struct {
	From Stage
	To   Stage
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("no transition from stage %q to %q", e.From, e.To)
}

// IsTransitionError reports whether err is, or wraps, a *TransitionError.
func IsTransitionError(err error) bool {
	var e *TransitionError
	return errors.As(err, &e)
}
