package validators

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/farmacia-cloud/compras-backend/pkg/errors"
)

func TestParseQueryInt(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{"absent uses default", "", 20, false},
		{"blank uses default", "limit=", 20, false},
		{"in range", "limit=42", 42, false},
		{"zero falls back to default", "limit=0", 20, false},
		{"negative falls back to default", "limit=-7", 20, false},
		{"above max clamps", "limit=500", 100, false},
		{"non numeric rejected", "limit=abc", 0, true},
		{"float rejected", "limit=2.5", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/?"+tc.query, nil)
			got, err := ParseQueryInt(req, "limit", 20, 1, 100)
			if tc.wantErr {
				require.Error(t, err)
				typed := pkgerrors.As(err)
				require.NotNil(t, typed)
				assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
