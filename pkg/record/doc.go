// Package record defines the read-only, order-preserving Record type that flows
// through validation, and decoders that turn structured text into record
// sequences.
//
// A Record is an ordered mapping from field name to value. Values are whatever
// the decoder produced: strings, float64 (JSON) or int/float64 (YAML) numbers,
// booleans, nil, nested map[string]any objects and []any arrays. Key order is
// preserved using github.com/wk8/go-ordered-map/v2 so records round-trip in the
// shape they were written.
//
// Records have no exported mutators. With and Map return modified copies, which
// keeps validation free of side effects on its input.
//
// # Usage
//
//	f, _ := os.Open("approvals.json")
//	defer f.Close()
//
//	records, err := record.DecodeJSON(f)
//	if err != nil {
//	    var derr *record.DecodeError
//	    if errors.As(err, &derr) {
//	        // derr.Index points at the offending element
//	    }
//	}
//
//	budget, ok := records[0].Lookup("context.visibility_budget_ms")
//
// # Formats
//
// DecodeJSON expects a JSON array of objects, DecodeNDJSON one object per line
// and DecodeYAML a YAML sequence of mappings. Decode dispatches on a Format,
// and FormatFromPath picks the format from a file extension.
package record
