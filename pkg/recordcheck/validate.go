package recordcheck

import "github.com/dmitrymomot/recordkit/pkg/record"

// Validate applies predicates to every record in order and stops at the first
// failure. Empty records or empty predicates produce a valid result.
// Nil predicates are skipped.
func Validate(records []record.Record, predicates []Predicate) Result {
	for i, rec := range records {
		if v := check(rec, predicates); v != nil {
			return Invalid(i, v.field, v.err)
		}
	}
	return Result{}
}

// ValidateRecord checks a single record and returns its violation with index 0.
func ValidateRecord(rec record.Record, predicates []Predicate) Result {
	return Validate([]record.Record{rec}, predicates)
}

type failure struct {
	field string
	err   error
}

func check(rec record.Record, predicates []Predicate) *failure {
	for _, p := range predicates {
		if p == nil {
			continue
		}
		if err := p.Check(rec); err != nil {
			return &failure{field: p.Field(), err: err}
		}
	}
	return nil
}
