package recordcheck

// Result is the verdict of a validation run. The zero value is valid.
type Result struct {
	violation *Violation
}

// Invalid builds a failing result for the record at index.
// The reason is taken from err's message.
func Invalid(index int, field string, err error) Result {
	if err == nil {
		err = ErrInvalidValue
	}
	return Result{violation: &Violation{
		Index:  index,
		Field:  field,
		Reason: err.Error(),
		Err:    err,
	}}
}

// Valid reports whether every record satisfied every predicate.
func (r Result) Valid() bool {
	return r.violation == nil
}

// Violation returns the first failure, or nil for a valid result.
func (r Result) Violation() *Violation {
	return r.violation
}

// Err returns the violation as an error, or nil for a valid result.
func (r Result) Err() error {
	if r.violation == nil {
		return nil
	}
	return r.violation
}

func (r Result) String() string {
	if r.violation == nil {
		return "valid"
	}
	return "invalid: " + r.violation.Error()
}
