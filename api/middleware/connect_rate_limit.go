package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/responses"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// ConnectRateLimitPolicy defines the throttling parameters for the wallet
// connect surface.
type ConnectRateLimitPolicy struct {
	window      time.Duration
	ipLimit     int
	walletLimit int
}

// NewConnectRateLimitPolicy builds a policy with the supplied window and limits.
func NewConnectRateLimitPolicy(window time.Duration, ipLimit, walletLimit int) ConnectRateLimitPolicy {
	return ConnectRateLimitPolicy{
		window:      window,
		ipLimit:     ipLimit,
		walletLimit: walletLimit,
	}
}

func (p ConnectRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.walletLimit > 0)
}

func (p ConnectRateLimitPolicy) ipKey(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("rl:ip:connect:%s", ip)
}

func (p ConnectRateLimitPolicy) walletKey(hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf("rl:wallet:connect:%s", hash)
}

// ConnectRateLimit enforces per-IP and per-wallet counters on the connect
// endpoint. It is a no-op when the policy is disabled or no store is wired.
func ConnectRateLimit(policy ConnectRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			if policy.ipLimit > 0 {
				if key := policy.ipKey(ip); key != "" {
					allowed, count, err := allow(ctx, store, key, policy.window, int64(policy.ipLimit))
					if err != nil {
						responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					}
					if !allowed {
						respondRateLimited(ctx, logg, w, policy, "ip", ip, "", count, policy.ipLimit)
						return
					}
				}
			}

			if policy.walletLimit > 0 {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				wallet := strings.TrimSpace(extractWallet(body))
				if wallet != "" {
					hash := hashValue(strings.ToLower(wallet))
					if key := policy.walletKey(hash); key != "" {
						allowed, count, err := allow(ctx, store, key, policy.window, int64(policy.walletLimit))
						if err != nil {
							responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
							return
						}
						if !allowed {
							respondRateLimited(ctx, logg, w, policy, "wallet", "", hash, count, policy.walletLimit)
							return
						}
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func allow(ctx context.Context, store rateLimiterStore, key string, window time.Duration, limit int64) (bool, int64, error) {
	count, err := store.IncrWithTTL(ctx, key, window)
	if err != nil {
		return false, 0, err
	}
	return count <= limit, count, nil
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy ConnectRateLimitPolicy, scope, ip, walletHash string, count int64, limit int) {
	if logg != nil {
		fields := map[string]any{
			"scope":          scope,
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(policy.window.Seconds()),
		}
		if ip != "" {
			fields["ip"] = ip
		}
		if walletHash != "" {
			fields["wallet_hash"] = walletHash
		}
		logCtx := logg.WithFields(ctx, fields)
		logg.Warn(logCtx, "connect.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "Too many connection attempts"))
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractWallet(payload []byte) string {
	var body struct {
		WalletAddress string `json:"walletAddress"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.WalletAddress
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
