package record

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a structured text encoding of a record sequence.
type Format string

const (
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".ndjson", ".jsonl":
		return FormatNDJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", ErrUnknownFormat
	}
}

// Decode reads a record sequence in the given format.
func Decode(format Format, r io.Reader) ([]Record, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(r)
	case FormatNDJSON:
		return DecodeNDJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	default:
		return nil, ErrUnknownFormat
	}
}

// DecodeJSON reads a JSON array of objects. Empty input yields no records.
func DecodeJSON(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrDecodeFailed, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Record{}, nil
	}
	if bytes.Equal(data, []byte("null")) {
		return nil, ErrNotASequence
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrNotASequence
		}
		return nil, errors.Join(ErrDecodeFailed, err)
	}

	records := make([]Record, 0, len(raw))
	for i, item := range raw {
		var rec Record
		if err := rec.UnmarshalJSON(item); err != nil {
			return nil, &DecodeError{Index: i, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecodeNDJSON reads one JSON object per line. Blank lines are skipped and do
// not count towards record indexes.
func DecodeNDJSON(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	records := []Record{}
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := rec.UnmarshalJSON(line); err != nil {
			return nil, &DecodeError{Index: len(records), Err: err}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Join(ErrDecodeFailed, err)
	}
	return records, nil
}

// DecodeYAML reads a YAML sequence of mappings. Empty input yields no records.
func DecodeYAML(r io.Reader) ([]Record, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []Record{}, nil
		}
		return nil, errors.Join(ErrDecodeFailed, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return []Record{}, nil
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, ErrNotASequence
	}

	records := make([]Record, 0, len(root.Content))
	for i, item := range root.Content {
		var rec Record
		if err := rec.UnmarshalYAML(item); err != nil {
			return nil, &DecodeError{Index: i, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}
