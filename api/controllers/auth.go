package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/middleware"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/responses"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/validators"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/users"
	pkgauth "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/auth"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/config"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/logger"
)

type connectRequest struct {
	WalletAddress string  `json:"walletAddress"`
	Email         *string `json:"email,omitempty"`
}

type connectResponse struct {
	User    *users.UserDTO `json:"user"`
	Token   string         `json:"token"`
	Message string         `json:"message"`
}

// AuthConnect upserts the wallet identity and issues a bearer token.
func AuthConnect(svc users.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		var req connectRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if strings.TrimSpace(req.WalletAddress) == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Wallet address required"))
			return
		}

		user, err := svc.ResolveOrCreate(r.Context(), req.WalletAddress, req.Email)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := pkgauth.MintAccessToken(jwtCfg, time.Now(), pkgauth.AccessTokenPayload{
			UserID:        user.ID,
			WalletAddress: user.WalletAddress,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token"))
			return
		}

		responses.WriteSuccess(w, connectResponse{
			User:    user,
			Token:   token,
			Message: "Wallet connected successfully",
		})
	}
}

// AuthDisconnect acknowledges a wallet disconnect. Tokens are stateless, so
// nothing is revoked server side.
func AuthDisconnect(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteMessage(w, "Disconnected successfully")
	}
}

// requesterID resolves the authenticated user id seeded by the auth
// middleware.
func requesterID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "No token provided")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Invalid token")
	}
	return id, nil
}
