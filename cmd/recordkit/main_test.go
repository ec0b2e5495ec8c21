package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("RECORDKIT_ENV", "test")
	t.Setenv("RECORDKIT_LOG_LEVEL", "error")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	safe := writeFile(t, dir, "safe.json", `[{"ethics_approve": "safe"}, {"ethics_approve": "safe"}]`)
	missing := writeFile(t, dir, "missing.json", `[{"ethics_approve": "safe"}, {}]`)
	unsafe := writeFile(t, dir, "unsafe.ndjson", "{\"ethics_approve\": \"unsafe\"}\n")
	messy := writeFile(t, dir, "messy.yaml", "- ethics_approve: \" Reviewed \"\n")

	t.Run("all records pass", func(t *testing.T) {
		code, out, _ := execute(t, "validate", safe)
		assert.Equal(t, exitOK, code)
		assert.Contains(t, out, "OK: "+safe)
		assert.Contains(t, out, "2 records")
	})

	t.Run("missing field", func(t *testing.T) {
		code, out, _ := execute(t, "validate", missing)
		assert.Equal(t, exitRejected, code)
		assert.Contains(t, out, `INVALID: `+missing+`: record 1: field "ethics_approve": missing`)
	})

	t.Run("value not allowed", func(t *testing.T) {
		code, out, _ := execute(t, "validate", unsafe)
		assert.Equal(t, exitRejected, code)
		assert.Contains(t, out, `record 0: field "ethics_approve": value not allowed`)
	})

	t.Run("several files", func(t *testing.T) {
		code, out, _ := execute(t, "validate", safe, missing)
		assert.Equal(t, exitRejected, code)
		assert.Contains(t, out, "OK: "+safe)
		assert.Contains(t, out, "INVALID: "+missing)
	})

	t.Run("normalisers", func(t *testing.T) {
		code, _, _ := execute(t, "validate", messy)
		assert.Equal(t, exitRejected, code)

		code, out, _ := execute(t, "validate", "--normalize", "trim,lower", messy)
		assert.Equal(t, exitOK, code, out)
	})

	t.Run("json reports", func(t *testing.T) {
		code, out, _ := execute(t, "validate", "--json", missing)
		assert.Equal(t, exitRejected, code)

		var reports []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &reports))
		require.Len(t, reports, 1)
		assert.Equal(t, "rejected", reports[0]["stage"])
		assert.Equal(t, "ethics_approve", reports[0]["result"].(map[string]any)["field"])
	})

	t.Run("placement policy", func(t *testing.T) {
		place := writeFile(t, dir, "place.json", `[
			{"asset_id": "a", "world_coordinate": [1, 2, 3], "seed": 7, "context": {"visibility_budget_ms": 300}}
		]`)
		code, out, _ := execute(t, "validate", "--policy", "place_v1", place)
		assert.Equal(t, exitRejected, code)
		assert.Contains(t, out, `field "context.visibility_budget_ms"`)
	})

	t.Run("policy from file", func(t *testing.T) {
		doc := writeFile(t, dir, "colour.yaml", `
name: colour
rules:
  - field: colour
    required: true
    allowed: [red, green]
`)
		data := writeFile(t, dir, "colours.json", `[{"colour": "red"}, {"colour": "blue"}]`)
		code, out, _ := execute(t, "validate", "--policy-file", doc, "--policy", "colour", data)
		assert.Equal(t, exitRejected, code)
		assert.Contains(t, out, `record 1: field "colour"`)
	})

	t.Run("policy from environment", func(t *testing.T) {
		t.Setenv("RECORDKIT_POLICY", "place_v1")
		code, out, _ := execute(t, "validate", safe)
		assert.Equal(t, exitRejected, code)
		assert.Contains(t, out, `field "asset_id": missing`)
	})

	t.Run("errors", func(t *testing.T) {
		code, _, errOut := execute(t, "validate", "--policy", "nope", safe)
		assert.Equal(t, exitError, code)
		assert.Contains(t, errOut, "unknown policy")

		code, _, errOut = execute(t, "validate", filepath.Join(dir, "absent.json"))
		assert.Equal(t, exitError, code)
		assert.Contains(t, errOut, "not found")

		code, _, _ = execute(t, "validate")
		assert.Equal(t, exitError, code)

		code, _, errOut = execute(t, "validate", "--source", "ftp", safe)
		assert.Equal(t, exitError, code)
		assert.Contains(t, errOut, "unknown source")
	})
}

func TestPoliciesCommand(t *testing.T) {
	code, out, _ := execute(t, "policies")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "ethics_approval")
	assert.Contains(t, out, "place_v1")
	assert.Contains(t, out, "normalisers: [fold lower nfc trim]")
}

func TestPushCommand_UnknownSink(t *testing.T) {
	dir := t.TempDir()
	safe := writeFile(t, dir, "safe.json", `[{"ethics_approve": "safe"}]`)

	code, _, errOut := execute(t, "push", "--sink", "ftp", "--target", "x", safe)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "unknown sink")
}
