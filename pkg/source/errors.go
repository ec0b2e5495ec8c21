package source

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid source configuration")
	ErrInvalidPath   = errors.New("invalid path")
	ErrNotFound      = errors.New("record file not found")
	ErrIsDirectory   = errors.New("path is a directory")

	ErrFailedToOpen       = errors.New("failed to open record file")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")

	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrOperationCanceled  = errors.New("operation canceled")
)
