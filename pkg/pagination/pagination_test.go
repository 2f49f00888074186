package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5))
	assert.Equal(t, 1, NormalizeLimit(1))
	assert.Equal(t, 42, NormalizeLimit(42))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+1))
	assert.Equal(t, MaxLimit, NormalizeLimit(5000))
}

func TestLimitWithBuffer(t *testing.T) {
	assert.Equal(t, DefaultLimit+1, LimitWithBuffer(0))
	assert.Equal(t, 11, LimitWithBuffer(10))
	assert.Equal(t, MaxLimit+1, LimitWithBuffer(999))
}

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{
		FechaCompra:  "2025-01-15T10:30:00Z",
		CodigoCompra: "COM-1736937000-A1B2C3D4",
	}

	encoded := EncodeCursor(original)
	require.NotEmpty(t, encoded)

	parsed, err := ParseCursor(encoded)
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, original, *parsed)
}

func TestParseCursorBlankMeansFirstPage(t *testing.T) {
	for _, value := range []string{"", "   "} {
		parsed, err := ParseCursor(value)
		require.NoError(t, err)
		assert.Nil(t, parsed)
	}
}

func TestParseCursorRejectsMalformedValues(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"no separator", "Zm9vYmFy"},                 // "foobar"
		{"empty fecha", "fENPTS0xLUFBQUE="},          // "|COM-1-AAAA"
		{"empty codigo", "MjAyNS0wMS0xNVQxMDowMHw="}, // "2025-01-15T10:00|"
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := ParseCursor(tc.value)
			assert.Error(t, err)
			assert.Nil(t, parsed)
		})
	}
}
