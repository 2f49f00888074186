package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/farmacia-cloud/compras-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns every request a correlation id: an inbound X-Request-Id
// is honored so purchases can be traced across the storefront gateway, a
// fresh UUID is minted otherwise. The id is echoed on the response and
// stamped on every log line for the request.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
