// Package recordcheck validates sequences of records against an ordered list
// of field predicates and reports the first violation it finds.
//
// Validation is a single pass: records are visited in input order and, for each
// record, predicates in declaration order. The scan stops at the first failing
// (record, predicate) pair, so a Result carries at most one Violation. Nothing is
// logged, retried or mutated; calling Validate twice with the same input yields
// the same Result.
//
// # Predicates
//
//   - RequireField(name)               – the field must be present.
//   - RequireValueIn(name, allowed...) – the value must be one of allowed.
//   - RequireValueNotIn(name, vals...) – the value must not be one of vals.
//   - RequireNumberAtMost(name, limit) – a present value must be a number <= limit.
//
// Field names are resolved with record.Record.Lookup, so "context.budget" reaches
// into nested objects. Membership predicates report an absent field as missing,
// which means presence is always established before membership is checked.
//
// # Usage
//
//	res := recordcheck.Validate(records, []recordcheck.Predicate{
//	    recordcheck.RequireField("ethics_approve"),
//	    recordcheck.RequireValueIn("ethics_approve", "safe", "reviewed"),
//	})
//	if !res.Valid() {
//	    v := res.Violation()
//	    log.Printf("record %d field %s: %s", v.Index, v.Field, v.Reason)
//	}
//
// # Error Handling
//
// Result.Err returns nil or a *Violation. The violation unwraps to
// ErrMissingField or ErrInvalidValue, so errors.Is and the IsMissingField /
// IsInvalidValue helpers work on it and on anything that wraps it.
package recordcheck
