package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/farmacia-cloud/compras-backend/api/responses"
	pkgAuth "github.com/farmacia-cloud/compras-backend/pkg/auth"
	"github.com/farmacia-cloud/compras-backend/pkg/config"
	pkgerrors "github.com/farmacia-cloud/compras-backend/pkg/errors"
	"github.com/farmacia-cloud/compras-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// principal. The three failure modes are distinguishable to the caller:
// missing/malformed header, expired token, invalid token. All are 401 and
// none reaches a handler, so no persistence call happens on failure.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" || !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token requerido"))
				return
			}

			token := strings.TrimSpace(raw[7:])
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token requerido"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				msg := "token inválido"
				if errors.Is(err, pkgAuth.ErrTokenExpired) {
					msg = "token expirado"
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, msg))
				return
			}

			principal := claims.Principal()
			ctx := WithPrincipal(r.Context(), principal)

			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"tenant_id":  principal.TenantID,
					"user_email": principal.Email,
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
