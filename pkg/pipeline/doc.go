// Package pipeline runs a record batch through load, normalise, validate and
// deliver.
//
// A Runner executes one Job at a time and tracks the run with a small stage
// machine:
//
//	pending -> loaded -> validated -> delivered
//	                  \-> rejected  \-> failed
//
// Any other move is refused with a *TransitionError. A failed validation is an
// outcome, not an error: Run returns a Report whose Result carries the first
// violation and whose Stage is StageRejected. Set Job.FailOnInvalid to also get
// ErrRejected back.
//
// Verdicts can be cached through VerdictCache. Validation is deterministic, so
// the key only needs the policy name and the normalised records.
package pipeline
