package postgres

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalMapEmptyIsJSONObject(t *testing.T) {
	// The findings column is NOT NULL jsonb; a nil parameter would be sent
	// as SQL NULL and bypass the column default, so absent findings must
	// encode as an empty object.
	assert.Equal(t, []byte("{}"), marshalMap(nil))
	assert.Equal(t, []byte("{}"), marshalMap(map[string]string{}))
}

func TestMarshalMapRoundTrip(t *testing.T) {
	payload := marshalMap(map[string]string{"pressure_valve": "worn seal"})
	require.NotEmpty(t, payload)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "worn seal", decoded["pressure_valve"])
}
