// Package source opens record files from local disk or S3-compatible object
// storage and decodes them into record sequences.
//
// Both backends implement Source. Load picks the decoder from the path's
// extension (.json, .ndjson/.jsonl, .yaml/.yml) and returns the records:
//
//	src, err := source.NewLocal("./data")
//	records, err := source.Load(ctx, src, "approvals.json")
//
//	s3src, err := source.NewS3(ctx, source.S3Config{Bucket: "game-maps", Region: "eu-west-1"})
//	records, err := source.Load(ctx, s3src, "grids/map_grid_config.json")
//
// Local confines every path to its base directory. S3 talks to the bucket
// through the narrow S3Client interface, so tests can substitute a mock with
// WithS3Client.
//
// Errors are classified into the sentinels in errors.go (ErrNotFound,
// ErrAccessDenied, ErrInvalidPath, ...) and can be matched with errors.Is.
package source
