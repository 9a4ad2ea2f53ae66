package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	m := NewMetadata("Role: Designer", "https://example.com/job")

	assert.Equal(t, "https://example.com/job", m.URL)
	assert.Len(t, m.Hash, 64)
	_, err := time.Parse(time.RFC3339, m.Timestamp)
	assert.NoError(t, err)
}

func TestComputeHash(t *testing.T) {
	assert.Equal(t, computeHash("a"), computeHash("a"))
	assert.NotEqual(t, computeHash("a"), computeHash("b"))
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", computeHash(""))
}

func TestMetadata_JSONOmitsEmpty(t *testing.T) {
	data, err := json.Marshal(NewMetadata("x", ""))
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "url")
	assert.NotContains(t, fields, "rendered")
	assert.Contains(t, fields, "hash")
}
