package recordcheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type resultJSON struct {
	Valid  bool   `json:"valid"`
	Index  *int   `json:"index,omitempty"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// MarshalJSON encodes the result as {"valid":true} or
// {"valid":false,"index":0,"field":"...","reason":"..."}.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.violation == nil {
		return json.Marshal(resultJSON{Valid: true})
	}
	idx := r.violation.Index
	return json.Marshal(resultJSON{
		Index:  &idx,
		Field:  r.violation.Field,
		Reason: r.violation.Reason,
	})
}

// UnmarshalJSON restores a result encoded by MarshalJSON. The violation cause
// is rebuilt from the reason so errors.Is keeps working after a round trip.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Valid {
		*r = Result{}
		return nil
	}
	if raw.Index == nil {
		return errors.New("recordcheck: invalid result without index")
	}
	*r = Invalid(*raw.Index, raw.Field, reasonErr(raw.Reason))
	return nil
}

func reasonErr(reason string) error {
	switch {
	case reason == ErrMissingField.Error():
		return ErrMissingField
	case reason == ErrInvalidValue.Error():
		return ErrInvalidValue
	case strings.HasPrefix(reason, ErrInvalidValue.Error()):
		return fmt.Errorf("%w%s", ErrInvalidValue, strings.TrimPrefix(reason, ErrInvalidValue.Error()))
	case strings.HasPrefix(reason, ErrMissingField.Error()):
		return fmt.Errorf("%w%s", ErrMissingField, strings.TrimPrefix(reason, ErrMissingField.Error()))
	default:
		return errors.New(reason)
	}
}
