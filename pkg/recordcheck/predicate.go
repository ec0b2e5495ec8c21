package recordcheck

import (
	"fmt"
	"math"
	"strings"

	"github.com/dmitrymomot/recordkit/pkg/record"
)

// Predicate is a declarative rule bound to one field of a record.
// Check returns nil when the record satisfies the rule.
type Predicate interface {
	Name() string
	Field() string
	Check(rec record.Record) error
}

type requireField struct {
	field string
}

// RequireField requires the field to be present. A null value counts as present.
func RequireField(field string) Predicate {
	return requireField{field: field}
}

func (p requireField) Name() string  { return "require_field" }
func (p requireField) Field() string { return p.field }

func (p requireField) Check(rec record.Record) error {
	if _, ok := rec.Lookup(p.field); !ok {
		return ErrMissingField
	}
	return nil
}

type requireValueIn struct {
	field   string
	allowed []any
}

// RequireValueIn requires the field's value to equal one of allowed.
// Numbers compare by value regardless of their Go type; an absent field is
// reported as missing.
func RequireValueIn(field string, allowed ...any) Predicate {
	return requireValueIn{field: field, allowed: allowed}
}

// RequireOneOf is the typed form of RequireValueIn.
func RequireOneOf[T comparable](field string, allowed ...T) Predicate {
	return RequireValueIn(field, toAny(allowed)...)
}

func (p requireValueIn) Name() string  { return "require_value_in" }
func (p requireValueIn) Field() string { return p.field }

func (p requireValueIn) Check(rec record.Record) error {
	v, ok := rec.Lookup(p.field)
	if !ok {
		return ErrMissingField
	}
	if !contains(p.allowed, v) {
		return ErrInvalidValue
	}
	return nil
}

func (p requireValueIn) String() string {
	return fmt.Sprintf("%s in [%s]", p.field, joinValues(p.allowed))
}

type requireValueNotIn struct {
	field     string
	forbidden []any
}

// RequireValueNotIn rejects the listed values. An absent field is reported as missing.
func RequireValueNotIn(field string, forbidden ...any) Predicate {
	return requireValueNotIn{field: field, forbidden: forbidden}
}

func (p requireValueNotIn) Name() string  { return "require_value_not_in" }
func (p requireValueNotIn) Field() string { return p.field }

func (p requireValueNotIn) Check(rec record.Record) error {
	v, ok := rec.Lookup(p.field)
	if !ok {
		return ErrMissingField
	}
	if contains(p.forbidden, v) {
		return fmt.Errorf("%w: %v is forbidden", ErrInvalidValue, v)
	}
	return nil
}

type requireNumberAtMost struct {
	field string
	limit float64
}

// RequireNumberAtMost bounds a numeric field from above. An absent field passes,
// pair it with RequireField when the field is mandatory.
func RequireNumberAtMost(field string, limit float64) Predicate {
	return requireNumberAtMost{field: field, limit: limit}
}

func (p requireNumberAtMost) Name() string  { return "require_number_at_most" }
func (p requireNumberAtMost) Field() string { return p.field }

func (p requireNumberAtMost) Check(rec record.Record) error {
	v, ok := rec.Lookup(p.field)
	if !ok {
		return nil
	}
	n, ok := toFloat(v)
	if !ok || math.IsNaN(n) {
		return fmt.Errorf("%w: not a number", ErrInvalidValue)
	}
	if n > p.limit {
		return fmt.Errorf("%w: exceeds %v", ErrInvalidValue, p.limit)
	}
	return nil
}

func toAny[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func joinValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
