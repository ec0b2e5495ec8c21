package recordcheck_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recordkit/pkg/record"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func decodeRecords(t *testing.T, input string) []record.Record {
	t.Helper()
	records, err := record.DecodeJSON(stringsReader(input))
	require.NoError(t, err)
	return records
}
