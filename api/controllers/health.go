package controllers

import (
	"net/http"

	"github.com/farmacia-cloud/compras-backend/api/responses"
	"github.com/farmacia-cloud/compras-backend/pkg/config"
	"github.com/farmacia-cloud/compras-backend/pkg/db"
	pkgerrors "github.com/farmacia-cloud/compras-backend/pkg/errors"
	"github.com/farmacia-cloud/compras-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Compras-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Compras-Env", cfg.App.Env)

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
