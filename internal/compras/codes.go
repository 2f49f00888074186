package compras

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerarCodigoCompra builds the purchase code: creation timestamp plus a
// random suffix. Unique per tenant in practice, not cryptographically
// guaranteed; the composite primary key is the backstop.
func GenerarCodigoCompra(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("COM-%d-%s", now.Unix(), suffix)
}

// FormatFecha renders the purchase timestamp. RFC3339 in UTC is fixed-width
// and zero-padded, which keeps string ordering equal to time ordering; both
// the date filters and the stats min/max rely on that.
func FormatFecha(now time.Time) string {
	return now.UTC().Format(time.RFC3339)
}
