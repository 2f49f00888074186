package compras

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/farmacia-cloud/compras-backend/api/middleware"
	"github.com/farmacia-cloud/compras-backend/api/responses"
	internalcompras "github.com/farmacia-cloud/compras-backend/internal/compras"
	pkgerrors "github.com/farmacia-cloud/compras-backend/pkg/errors"
	"github.com/farmacia-cloud/compras-backend/pkg/logger"
)

type buscarResponse struct {
	Compra *internalcompras.CompraDTO `json:"compra"`
}

// Buscar handles GET /api/v1/compras/{codigo}. The path parameter is the
// single canonical channel for the purchase code; the router owns populating it.
func Buscar(svc internalcompras.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := middleware.PrincipalFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token requerido"))
			return
		}

		codigo := strings.TrimSpace(chi.URLParam(r, "codigo"))
		if codigo == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "código de compra requerido"))
			return
		}

		compra, err := svc.Buscar(r.Context(), principal, codigo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, buscarResponse{Compra: compra})
	}
}
