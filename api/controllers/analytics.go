package controllers

import (
	"net/http"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/responses"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/analytics"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/logger"
)

// AnalyticsDashboard returns the caller's merchant dashboard rollup.
func AnalyticsDashboard(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := requesterID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dashboard, err := svc.Dashboard(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}
