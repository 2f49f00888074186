package compras

import (
	"net/http"

	"github.com/farmacia-cloud/compras-backend/api/middleware"
	"github.com/farmacia-cloud/compras-backend/api/responses"
	internalcompras "github.com/farmacia-cloud/compras-backend/internal/compras"
	pkgerrors "github.com/farmacia-cloud/compras-backend/pkg/errors"
	"github.com/farmacia-cloud/compras-backend/pkg/logger"
)

// Estadisticas handles GET /api/v1/compras/estadisticas. The statistics
// fields go on the wire inline, without an envelope.
func Estadisticas(svc internalcompras.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := middleware.PrincipalFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token requerido"))
			return
		}

		stats, err := svc.Estadisticas(r.Context(), principal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
