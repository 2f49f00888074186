package compras

import (
	"net/http"

	"github.com/farmacia-cloud/compras-backend/api/middleware"
	"github.com/farmacia-cloud/compras-backend/api/responses"
	"github.com/farmacia-cloud/compras-backend/api/validators"
	internalcompras "github.com/farmacia-cloud/compras-backend/internal/compras"
	pkgerrors "github.com/farmacia-cloud/compras-backend/pkg/errors"
	"github.com/farmacia-cloud/compras-backend/pkg/logger"
)

type registrarResponse struct {
	Message string                     `json:"message"`
	Compra  *internalcompras.CompraDTO `json:"compra"`
}

// Registrar handles POST /api/v1/compras.
func Registrar(svc internalcompras.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, ok := middleware.PrincipalFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token requerido"))
			return
		}

		var input internalcompras.RegistrarInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		compra, err := svc.Registrar(r.Context(), principal, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, registrarResponse{
			Message: "compra registrada exitosamente",
			Compra:  compra,
		})
	}
}
