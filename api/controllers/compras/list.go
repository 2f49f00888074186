package compras

import (
	"net/http"
	"strings"

	"github.com/farmacia-cloud/compras-backend/api/middleware"
	"github.com/farmacia-cloud/compras-backend/api/responses"
	"github.com/farmacia-cloud/compras-backend/api/validators"
	internalcompras "github.com/farmacia-cloud/compras-backend/internal/compras"
	pkgerrors "github.com/farmacia-cloud/compras-backend/pkg/errors"
	"github.com/farmacia-cloud/compras-backend/pkg/logger"
	"github.com/farmacia-cloud/compras-backend/pkg/pagination"
)

type listarResponse struct {
	Compras []internalcompras.CompraDTO `json:"compras"`
	Count   int                         `json:"count"`
	HasMore bool                        `json:"hasMore"`
	NextKey string                      `json:"nextKey,omitempty"`
}

// Listar handles GET /api/v1/compras.
func Listar(svc internalcompras.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := middleware.PrincipalFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token requerido"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params := internalcompras.ListarParams{
			Limit:      limit,
			Cursor:     strings.TrimSpace(r.URL.Query().Get("lastKey")),
			FechaDesde: strings.TrimSpace(r.URL.Query().Get("fecha_desde")),
			FechaHasta: strings.TrimSpace(r.URL.Query().Get("fecha_hasta")),
		}

		listado, err := svc.Listar(r.Context(), principal, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listarResponse{
			Compras: listado.Compras,
			Count:   listado.Count,
			HasMore: listado.HasMore,
			NextKey: listado.NextKey,
		})
	}
}
