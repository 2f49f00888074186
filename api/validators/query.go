package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/farmacia-cloud/compras-backend/pkg/errors"
)

// ParseQueryInt reads an optional integer query parameter. Absent, zero and
// negative values all fall back to defaultVal; values above max clamp to max.
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "parámetros inválidos").
			WithDetails("el parámetro "+key+" debe ser numérico")
	}
	if value < min {
		return defaultVal, nil
	}
	if value > max {
		return max, nil
	}
	return value, nil
}
