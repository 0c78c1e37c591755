package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/config"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:          "secret",
		Issuer:          "cryptocart",
		ExpirationHours: 168,
	}
	now := time.Now().UTC()
	userID := uuid.New()
	wallet := "0x1234567890abcdef1234567890abcdef12345678"

	token, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID:        userID,
		WalletAddress: wallet,
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != userID {
		t.Fatalf("expected userId %s, got %s", userID, claims.UserID)
	}
	if claims.WalletAddress != wallet {
		t.Fatalf("expected walletAddress %s, got %s", wallet, claims.WalletAddress)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(cfg.TokenTTL())
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:          "secret",
		Issuer:          "cryptocart",
		ExpirationHours: 1,
	}
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		UserID:        uuid.New(),
		WalletAddress: "0xabc",
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:          "secret",
		Issuer:          "cryptocart",
		ExpirationHours: 1,
	}
	now := time.Now().Add(-2 * time.Hour)
	token, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID:        uuid.New(),
		WalletAddress: "0xabc",
	})
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	_, err = ParseAccessToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMintAccessTokenMissingWallet(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:          "secret",
		Issuer:          "cryptocart",
		ExpirationHours: 1,
	}
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: uuid.New()}); err == nil {
		t.Fatal("expected missing wallet error")
	}
}
