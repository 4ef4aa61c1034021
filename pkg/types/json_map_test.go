package types

import (
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Struct fields hold JSONMap by value, so the value type itself must satisfy
// driver.Valuer for the sql package to serialize it.
var _ driver.Valuer = JSONMap{}

func TestJSONMapValueRoundTrip(t *testing.T) {
	original := JSONMap{"source": "refund", "attempt": float64(2)}

	raw, err := original.Value()
	require.NoError(t, err)

	var decoded JSONMap
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, original, decoded)
}

func TestJSONMapEmptyValuesAreNull(t *testing.T) {
	for _, m := range []JSONMap{nil, {}} {
		raw, err := m.Value()
		require.NoError(t, err)
		assert.Nil(t, raw)
	}
}

func TestJSONMapScanRejectsGarbage(t *testing.T) {
	var m JSONMap
	require.Error(t, m.Scan([]byte("{not json")))
	require.Error(t, m.Scan(42))

	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)
}
