package controllers

import (
	"net/http"
	"time"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/responses"
)

// Health reports liveness with a timestamp.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}
}
