package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type stubLimiterStore struct {
	counts map[string]int64
}

func (s *stubLimiterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[key]++
	return s.counts[key], nil
}

func connectRequest(wallet string) *http.Request {
	body := strings.NewReader(`{"walletAddress":"` + wallet + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/connect", body)
	req.RemoteAddr = "10.0.0.1:55000"
	return req
}

func TestConnectRateLimitBlocksIPOverLimit(t *testing.T) {
	store := &stubLimiterStore{}
	policy := NewConnectRateLimitPolicy(time.Minute, 2, 0)
	handler := ConnectRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, connectRequest("0xabc"))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d must pass, got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, connectRequest("0xabc"))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over the limit, got %d", w.Code)
	}
}

func TestConnectRateLimitBlocksWalletAcrossIPs(t *testing.T) {
	store := &stubLimiterStore{}
	policy := NewConnectRateLimitPolicy(time.Minute, 0, 1)
	handler := ConnectRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	first := connectRequest("0xSameWallet")
	first.RemoteAddr = "10.0.0.1:55000"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, first)
	if w.Code != http.StatusOK {
		t.Fatalf("first connect must pass, got %d", w.Code)
	}

	second := connectRequest("0xSameWallet")
	second.RemoteAddr = "10.0.0.2:55000"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, second)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("wallet limit is IP independent, got %d", w.Code)
	}
}

func TestConnectRateLimitPreservesBodyForHandler(t *testing.T) {
	store := &stubLimiterStore{}
	policy := NewConnectRateLimitPolicy(time.Minute, 0, 5)

	var seen string
	handler := ConnectRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = extractWallet(readAll(t, r))
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, connectRequest("0xabc"))
	if seen != "0xabc" {
		t.Fatalf("downstream handler must still read the body, got %q", seen)
	}
}

func TestConnectRateLimitDisabledWithoutStore(t *testing.T) {
	policy := NewConnectRateLimitPolicy(time.Minute, 1, 1)
	var ran int
	handler := ConnectRateLimit(policy, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran++
	}))

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, connectRequest("0xabc"))
		if w.Code != http.StatusOK {
			t.Fatalf("limiter without a store is a no-op, got %d", w.Code)
		}
	}
	if ran != 5 {
		t.Fatalf("expected 5 passthroughs, got %d", ran)
	}
}

func readAll(t *testing.T, r *http.Request) []byte {
	t.Helper()
	buf, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return buf
}
