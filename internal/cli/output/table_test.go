package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable().Add("region", "us-east-1").Add("bucket", "my-bucket")

	err := PrintTable(&buf, kv)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "region")
	assert.Contains(t, buf.String(), "us-east-1")
}

func TestKeyValueTableHeadersAndRows(t *testing.T) {
	kv := NewKeyValueTable().Add("a", "1")
	assert.Equal(t, []string{"Field", "Value"}, kv.Headers())
	assert.Equal(t, [][]string{{"a", "1"}}, kv.Rows())
}
