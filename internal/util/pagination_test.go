package util

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_Roundtrip(t *testing.T) {
	id := uuid.New()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	encoded, err := EncodeCursor(at, id)
	require.NoError(t, err)

	decoded, err := DecodeCursor(encoded)
	require.NoError(t, err)
	assert.Equal(t, id, decoded.ID)
	assert.True(t, decoded.CreatedAt.Equal(at))
}

func TestDecodeCursor_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"not base64": "!!definitely-not",
		"not json":   "bm90LWpzb24",
		"nil id":     mustEncode(t, time.Now(), uuid.Nil),
		"zero time":  mustEncode(t, time.Time{}, uuid.New()),
	}
	for name, cursor := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCursor(cursor)
			assert.Error(t, err)
		})
	}
}

func mustEncode(t *testing.T, at time.Time, id uuid.UUID) string {
	t.Helper()
	encoded, err := EncodeCursor(at, id)
	require.NoError(t, err)
	return encoded
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultPageSize, ClampLimit(0))
	assert.Equal(t, DefaultPageSize, ClampLimit(-5))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxPageSize, ClampLimit(MaxPageSize+1))
}

func TestCalculate(t *testing.T) {
	from, limit := Calculate(1, 10)
	assert.Equal(t, 0, from)
	assert.Equal(t, 10, limit)

	from, limit = Calculate(3, 10)
	assert.Equal(t, 20, from)
	assert.Equal(t, 10, limit)

	from, limit = Calculate(0, 0)
	assert.Equal(t, 0, from)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestParseIntDefault(t *testing.T) {
	assert.Equal(t, 3, ParseIntDefault("3", 1))
	assert.Equal(t, 1, ParseIntDefault("", 1))
	assert.Equal(t, 1, ParseIntDefault("abc", 1))
}
