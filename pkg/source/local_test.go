package source_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recordkit/pkg/record"
	"github.com/dmitrymomot/recordkit/pkg/source"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	full := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestNewLocal(t *testing.T) {
	t.Parallel()

	_, err := source.NewLocal("")
	assert.ErrorIs(t, err, source.ErrInvalidConfig)

	_, err = source.NewLocal(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, source.ErrInvalidConfig)

	dir := t.TempDir()
	writeFile(t, dir, "file.json", "[]")
	_, err = source.NewLocal(filepath.Join(dir, "file.json"))
	assert.ErrorIs(t, err, source.ErrInvalidConfig)
}

func TestLocal_Open(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "approvals.json", `[{"ethics_approve":"safe"}]`)
	writeFile(t, dir, "nested/items.yaml", "- a: 1\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.json"), 0o755))

	src, err := source.NewLocal(dir)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()
		rc, err := src.Open(ctx, "approvals.json")
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, `[{"ethics_approve":"safe"}]`, string(data))
	})

	t.Run("absolute path inside base", func(t *testing.T) {
		t.Parallel()
		rc, err := src.Open(ctx, filepath.Join(dir, "nested", "items.yaml"))
		require.NoError(t, err)
		_ = rc.Close()
	})

	t.Run("path traversal", func(t *testing.T) {
		t.Parallel()
		for _, p := range []string{"../etc/passwd", "nested/../../x.json", "", "/etc/passwd"} {
			_, err := src.Open(ctx, p)
			assert.ErrorIs(t, err, source.ErrInvalidPath, p)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := src.Open(ctx, "nope.json")
		assert.ErrorIs(t, err, source.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, err := src.Open(ctx, "folder.json")
		assert.ErrorIs(t, err, source.ErrIsDirectory)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.Open(cctx, "approvals.json")
		assert.ErrorIs(t, err, source.ErrOperationCanceled)
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `[{"ethics_approve":"safe"},{"ethics_approve":"reviewed"}]`)
	writeFile(t, dir, "b.yml", "- asset_id: tree\n")
	writeFile(t, dir, "c.ndjson", "{\"x\":1}\n{\"x\":2}\n{\"x\":3}\n")
	writeFile(t, dir, "d.csv", "a,b\n")
	writeFile(t, dir, "e.json", `{"not":"a list"}`)

	src, err := source.NewLocal(dir)
	require.NoError(t, err)
	ctx := context.Background()

	records, err := source.Load(ctx, src, "a.json")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = source.Load(ctx, src, "b.yml")
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = source.Load(ctx, src, "c.ndjson")
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = source.Load(ctx, src, "d.csv")
	assert.ErrorIs(t, err, record.ErrUnknownFormat)

	_, err = source.Load(ctx, src, "e.json")
	assert.ErrorIs(t, err, record.ErrNotASequence)

	_, err = source.Load(ctx, src, "missing.json")
	assert.ErrorIs(t, err, source.ErrNotFound)
}
