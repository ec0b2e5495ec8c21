package policy

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/recordkit/pkg/record"
	"github.com/dmitrymomot/recordkit/pkg/recordcheck"
)

// Policy is a named, ordered list of predicates plus the normalisers to run
// before validation.
type Policy struct {
	Name        string
	Description string
	Normalize   []string
	Predicates  []recordcheck.Predicate
}

// Validate runs the policy's predicates over records.
func (p Policy) Validate(records []record.Record) recordcheck.Result {
	return recordcheck.Validate(records, p.Predicates)
}

// Document is the on-disk form of a policy.
type Document struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Normalize   []string `yaml:"normalize,omitempty" json:"normalize,omitempty"`
	Rules       []Rule   `yaml:"rules" json:"rules"`
}

// Rule groups the constraints on one field.
type Rule struct {
	Field     string   `yaml:"field" json:"field"`
	Required  bool     `yaml:"required,omitempty" json:"required,omitempty"`
	Allowed   []any    `yaml:"allowed,omitempty" json:"allowed,omitempty"`
	Forbidden []any    `yaml:"forbidden,omitempty" json:"forbidden,omitempty"`
	Max       *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

// Parse reads a YAML or JSON policy document and compiles it.
func Parse(r io.Reader) (Policy, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return Policy{}, errors.Join(ErrReadPolicy, err)
	}
	return Compile(doc)
}

// Compile converts a document into a policy.
func Compile(doc Document) (Policy, error) {
	if doc.Name == "" {
		return Policy{}, fmt.Errorf("%w: name is required", ErrInvalidPolicy)
	}

	predicates := make([]recordcheck.Predicate, 0, len(doc.Rules))
	for i, rule := range doc.Rules {
		compiled, err := rule.compile()
		if err != nil {
			return Policy{}, fmt.Errorf("%w: rule %d: %v", ErrInvalidRule, i, err)
		}
		predicates = append(predicates, compiled...)
	}

	return Policy{
		Name:        doc.Name,
		Description: doc.Description,
		Normalize:   doc.Normalize,
		Predicates:  predicates,
	}, nil
}

func (r Rule) compile() ([]recordcheck.Predicate, error) {
	if r.Field == "" {
		return nil, errors.New("field is required")
	}

	var out []recordcheck.Predicate
	if r.Required {
		out = append(out, recordcheck.RequireField(r.Field))
	}
	if len(r.Allowed) > 0 {
		out = append(out, recordcheck.RequireValueIn(r.Field, r.Allowed...))
	}
	if len(r.Forbidden) > 0 {
		out = append(out, recordcheck.RequireValueNotIn(r.Field, r.Forbidden...))
	}
	if r.Max != nil {
		out = append(out, recordcheck.RequireNumberAtMost(r.Field, *r.Max))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("field %q has no constraint", r.Field)
	}
	return out, nil
}
