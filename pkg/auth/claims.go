package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID        uuid.UUID
	WalletAddress string
}

// AccessTokenClaims represents the typed JWT issued to clients after a
// wallet connect. The claim names are part of the wire contract.
type AccessTokenClaims struct {
	UserID        uuid.UUID `json:"userId"`
	WalletAddress string    `json:"walletAddress"`
	jwt.RegisteredClaims
}
