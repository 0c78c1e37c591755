package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/middleware"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/users"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
)

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.WithUserID(req.Context(), uuid.NewString())
	return req.WithContext(ctx)
}

func TestUserMeReturnsProfile(t *testing.T) {
	user := &users.UserDTO{ID: uuid.New(), WalletAddress: "0xabc"}
	handler := UserMe(&stubUserService{user: user}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/users/me", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var got users.UserDTO
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("unexpected user id: %s", got.ID)
	}
}

func TestUserMeRequiresAuth(t *testing.T) {
	handler := UserMe(&stubUserService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	assertErrorMessage(t, resp, "No token provided")
}

func TestUserMeNotFound(t *testing.T) {
	svc := &stubUserService{err: pkgerrors.New(pkgerrors.CodeNotFound, "User not found")}
	handler := UserMe(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/users/me", ""))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	assertErrorMessage(t, resp, "User not found")
}

func TestUserUpdateProfile(t *testing.T) {
	user := &users.UserDTO{ID: uuid.New()}
	handler := UserUpdateProfile(&stubUserService{user: user}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPut, "/api/users/profile", `{"username":"maria"}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestUserUpdateKYCRequiresStatus(t *testing.T) {
	handler := UserUpdateKYC(&stubUserService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPut, "/api/users/kyc", `{}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUserStats(t *testing.T) {
	stats := &users.UserStatsDTO{StoreCount: 2, OrderCount: 5, TotalRevenue: 120}
	handler := UserStats(&stubUserService{stats: stats}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/users/stats", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var got users.UserStatsDTO
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.TotalRevenue != 120 || got.StoreCount != 2 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}
