package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Local reads record files below a base directory.
type Local struct {
	baseDir string
}

// NewLocal returns a source rooted at baseDir. The directory must exist.
func NewLocal(baseDir string) (*Local, error) {
	if baseDir == "" {
		return nil, ErrInvalidConfig
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidConfig, baseDir)
	}
	return &Local{baseDir: abs}, nil
}

// Open opens path relative to the base directory. Paths escaping it are rejected.
func (l *Local) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOperationCanceled, err)
	}

	full, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpen, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpen, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	return f, nil
}

func (l *Local) resolve(path string) (string, error) {
	if path == "" {
		return "", ErrInvalidPath
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(l.baseDir, clean)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
		}
		clean = rel
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	return filepath.Join(l.baseDir, clean), nil
}
