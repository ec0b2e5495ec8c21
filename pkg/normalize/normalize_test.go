package normalize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recordkit/pkg/normalize"
	"github.com/dmitrymomot/recordkit/pkg/record"
)

func TestApplyAndCompose(t *testing.T) {
	t.Parallel()
	double := func(n int) int { return n * 2 }
	inc := func(n int) int { return n + 1 }

	assert.Equal(t, 3, normalize.Apply(1, double, inc))
	assert.Equal(t, 4, normalize.Apply(1, inc, double))
	assert.Equal(t, 7, normalize.Apply(7))

	fn := normalize.Compose(strings.TrimSpace, strings.ToUpper)
	assert.Equal(t, "SAFE", fn("  safe "))
}

func TestLookup(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"fold", "lower", "nfc", "trim"}, normalize.Names())

	for _, name := range normalize.Names() {
		fn, err := normalize.Lookup(name)
		require.NoError(t, err, name)
		require.NotNil(t, fn, name)
	}

	_, err := normalize.Lookup("upper")
	assert.ErrorIs(t, err, normalize.ErrUnknownNormalizer)
}

func TestNormalizers(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name, in, want string
	}{
		{"trim", " \treviewed\n", "reviewed"},
		{"lower", "ReViewed", "reviewed"},
		{"fold", "STRASSE", "strasse"},
		{"nfc", "e\u0301", "\u00e9"},
	}
	for _, tc := range cases {
		fn, err := normalize.Lookup(tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.want, fn(tc.in), tc.name)
	}
}

func TestChain(t *testing.T) {
	t.Parallel()

	t.Run("applies to nested strings only", func(t *testing.T) {
		t.Parallel()
		fn, err := normalize.Chain("trim", "lower")
		require.NoError(t, err)

		rec := record.New(
			record.Field{Name: "Ethics_Approve", Value: "  SAFE "},
			record.Field{Name: "seed", Value: 7},
			record.Field{Name: "context", Value: map[string]any{"zone": " North "}},
			record.Field{Name: "tags", Value: []any{" A ", 1}},
		)

		out := fn(rec)

		assert.Equal(t, []string{"Ethics_Approve", "seed", "context", "tags"}, out.Keys())
		v, _ := out.Get("Ethics_Approve")
		assert.Equal(t, "safe", v)
		v, _ = out.Get("seed")
		assert.Equal(t, 7, v)
		v, _ = out.Lookup("context.zone")
		assert.Equal(t, "north", v)
		v, _ = out.Get("tags")
		assert.Equal(t, []any{"a", 1}, v)

		orig, _ := rec.Get("Ethics_Approve")
		assert.Equal(t, "  SAFE ", orig, "input record is untouched")
	})

	t.Run("no names is identity", func(t *testing.T) {
		t.Parallel()
		fn, err := normalize.Chain()
		require.NoError(t, err)
		rec := record.New(record.Field{Name: "a", Value: " x "})
		v, _ := fn(rec).Get("a")
		assert.Equal(t, " x ", v)
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		_, err := normalize.Chain("trim", "shout")
		assert.ErrorIs(t, err, normalize.ErrUnknownNormalizer)
	})

	t.Run("records helper", func(t *testing.T) {
		t.Parallel()
		fn, err := normalize.Chain("trim")
		require.NoError(t, err)
		out := normalize.Records([]record.Record{
			record.New(record.Field{Name: "a", Value: " 1 "}),
			record.New(record.Field{Name: "a", Value: "2 "}),
		}, fn)
		require.Len(t, out, 2)
		v, _ := out[1].Get("a")
		assert.Equal(t, "2", v)
	})
}
