package normalize

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/dmitrymomot/recordkit/pkg/record"
)

// ErrUnknownNormalizer is returned for names missing from the table.
var ErrUnknownNormalizer = errors.New("unknown normalizer")

// Func transforms a single string value.
type Func func(string) string

var table = map[string]Func{
	"trim": strings.TrimSpace,
	// cases.Caser is stateful, build one per call.
	"lower": func(s string) string { return cases.Lower(language.Und).String(s) },
	"fold":  func(s string) string { return cases.Fold().String(s) },
	"nfc":   norm.NFC.String,
}

// Lookup returns the normaliser registered under name.
func Lookup(name string) (Func, error) {
	fn, ok := table[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNormalizer, name)
	}
	return fn, nil
}

// Names lists the available normalisers.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain builds a record transform applying the named normalisers in order.
// With no names it returns the identity transform.
func Chain(names ...string) (func(record.Record) record.Record, error) {
	fns := make([]func(string) string, 0, len(names))
	for _, name := range names {
		fn, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}

	str := Compose(fns...)
	return func(rec record.Record) record.Record {
		return rec.Map(func(_ string, v any) any {
			return walk(v, str)
		})
	}, nil
}

// Records applies fn to every record and returns the new slice.
func Records(records []record.Record, fn func(record.Record) record.Record) []record.Record {
	out := make([]record.Record, len(records))
	for i, rec := range records {
		out[i] = fn(rec)
	}
	return out
}

func walk(v any, fn func(string) string) any {
	switch val := v.(type) {
	case string:
		return fn(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = walk(item, fn)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = walk(item, fn)
		}
		return out
	case record.Record:
		return val.Map(func(_ string, item any) any { return walk(item, fn) })
	default:
		return v
	}
}
