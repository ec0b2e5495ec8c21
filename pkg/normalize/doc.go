// Package normalize rewrites string values of records before validation.
//
// Normalisers are looked up by name from a fixed table:
//
//   - trim  – strip leading and trailing white space
//   - lower – lower-case (language neutral)
//   - fold  – Unicode case folding, for case-insensitive comparisons
//   - nfc   – Unicode NFC composition
//
// Chain builds one record transform from a list of names; it is applied to
// every string value, including those nested in objects and arrays. Field names
// are never touched. Input records are not modified: the transform returns new
// records.
//
//	fn, err := normalize.Chain("trim", "lower")
//	if err != nil {
//	    return err // normalize.ErrUnknownNormalizer
//	}
//	clean := normalize.Records(records, fn)
//
// Apply and Compose are the generic building blocks and work on any type.
package normalize
