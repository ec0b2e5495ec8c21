package record

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Field is a single name/value pair used to build a Record.
type Field struct {
	Name  string
	Value any
}

// Record is an ordered, read-only mapping from field name to value.
// The zero value is an empty record.
type Record struct {
	fields *orderedmap.OrderedMap[string, any]
}

// New builds a record from fields in the given order.
// A repeated name keeps its first position and takes the last value.
func New(fields ...Field) Record {
	m := orderedmap.New[string, any]()
	for _, f := range fields {
		m.Set(f.Name, f.Value)
	}
	return Record{fields: m}
}

// FromMap builds a record from a plain map. Keys are sorted because Go maps
// carry no order.
func FromMap(values map[string]any) Record {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	m := orderedmap.New[string, any]()
	for _, k := range keys {
		m.Set(k, values[k])
	}
	return Record{fields: m}
}

// Len returns the number of top-level fields.
func (r Record) Len() int {
	if r.fields == nil {
		return 0
	}
	return r.fields.Len()
}

// Keys returns top-level field names in insertion order.
func (r Record) Keys() []string {
	keys := make([]string, 0, r.Len())
	if r.fields == nil {
		return keys
	}
	for p := r.fields.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Get returns the value stored under a top-level field name.
func (r Record) Get(name string) (any, bool) {
	if r.fields == nil {
		return nil, false
	}
	return r.fields.Get(name)
}

// Has reports whether the record contains the top-level field, even when its value is null.
func (r Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Lookup resolves a field path. An exact top-level key wins; otherwise the
// path is split on "." and followed through nested objects.
func (r Record) Lookup(path string) (any, bool) {
	if v, ok := r.Get(path); ok {
		return v, true
	}
	if !strings.Contains(path, ".") {
		return nil, false
	}

	parts := strings.Split(path, ".")
	cur, ok := r.Get(parts[0])
	if !ok {
		return nil, false
	}
	for _, part := range parts[1:] {
		switch node := cur.(type) {
		case map[string]any:
			cur, ok = node[part]
		case Record:
			cur, ok = node.Get(part)
		default:
			return nil, false
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// With returns a copy of the record with the field set to value.
func (r Record) With(name string, value any) Record {
	out := r.clone()
	out.fields.Set(name, value)
	return out
}

// Map returns a copy of the record with fn applied to every top-level value.
func (r Record) Map(fn func(name string, value any) any) Record {
	out := orderedmap.New[string, any]()
	if r.fields != nil {
		for p := r.fields.Oldest(); p != nil; p = p.Next() {
			out.Set(p.Key, fn(p.Key, p.Value))
		}
	}
	return Record{fields: out}
}

// ToMap returns the top-level fields as a plain map.
func (r Record) ToMap() map[string]any {
	out := make(map[string]any, r.Len())
	if r.fields == nil {
		return out
	}
	for p := r.fields.Oldest(); p != nil; p = p.Next() {
		out[p.Key] = p.Value
	}
	return out
}

func (r Record) clone() Record {
	return r.Map(func(_ string, v any) any { return v })
}

// MarshalJSON encodes the record as a JSON object in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.fields == nil {
		return []byte("{}"), nil
	}
	return r.fields.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, keeping key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrNotAnObject
	}
	m := orderedmap.New[string, any]()
	if err := m.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	r.fields = m
	return nil
}

// MarshalYAML encodes the record as a YAML mapping in field order.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if r.fields == nil {
		return node, nil
	}
	for p := r.fields.Oldest(); p != nil; p = p.Next() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key}
		val := &yaml.Node{}
		if err := val.Encode(p.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

// UnmarshalYAML decodes a YAML mapping, keeping key order.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return ErrNotAnObject
	}

	m := orderedmap.New[string, any]()
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return err
		}
		m.Set(node.Content[i].Value, value)
	}
	r.fields = m
	return nil
}

// String renders the record as compact JSON.
func (r Record) String() string {
	b, err := json.Marshal(r)
	if err != nil {
		return "{}"
	}
	return string(b)
}
