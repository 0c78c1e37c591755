package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/controllers"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/middleware"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/api/responses"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/analytics"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/orders"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/payments"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/products"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/stores"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/internal/users"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/config"
	pkgerrors "github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/errors"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/logger"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/metrics"
	"github.com/iBuild-ts/Crypto-Powered-E-Commerce-platform/pkg/redis"
)

// NewRouter assembles the HTTP surface. The rate limiter on wallet connect is
// active only when a Redis client is supplied.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	redisClient *redis.Client,
	userService users.Service,
	storeService stores.Service,
	productService products.Service,
	orderService orders.Service,
	paymentService payments.Service,
	analyticsService analytics.Service,
) http.Handler {
	responses.SetStrictErrors(cfg.Features.StrictErrors)

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg, httpMetrics),
	)

	authed := middleware.Auth(cfg.JWT, logg)
	optional := middleware.OptionalAuth(cfg.JWT, logg)

	r.Get("/health", controllers.Health())
	r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if redisClient != nil {
				policy := middleware.NewConnectRateLimitPolicy(
					cfg.ConnectRate.Window,
					cfg.ConnectRate.IPLimit,
					cfg.ConnectRate.WalletLimit,
				)
				r.Use(middleware.ConnectRateLimit(policy, redisClient, logg))
			}
			r.Post("/connect", controllers.AuthConnect(userService, cfg.JWT, logg))
		})
		r.With(authed).Post("/disconnect", controllers.AuthDisconnect(logg))
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(authed)
		r.Get("/me", controllers.UserMe(userService, logg))
		r.Put("/profile", controllers.UserUpdateProfile(userService, logg))
		r.Put("/kyc", controllers.UserUpdateKYC(userService, logg))
		r.Get("/stats", controllers.UserStats(userService, logg))
	})

	r.Route("/api/stores", func(r chi.Router) {
		r.With(authed).Post("/", controllers.StoreCreate(storeService, logg))
		r.With(authed).Get("/", controllers.StoreList(storeService, logg))
		r.Get("/slug/{slug}", controllers.StoreGetBySlug(storeService, logg))

		r.Route("/{storeRef}", func(r chi.Router) {
			r.Get("/", controllers.StoreGet(storeService, logg))
			r.With(authed).Put("/", controllers.StoreUpdate(storeService, logg))
			r.With(authed).Delete("/", controllers.StoreDelete(storeService, logg))
			r.Get("/stats", controllers.StoreStats(storeService, logg))
			r.With(authed).Post("/publish", controllers.StorePublish(storeService, logg))
			r.Get("/public", controllers.StorePublic(storeService, logg))

			r.Get("/design", controllers.StoreDesignGet(storeService, logg))
			r.With(authed).Put("/design", controllers.StoreDesignSave(storeService, logg))
			r.With(authed).Get("/settings", controllers.StoreSettingsGet(storeService, logg))
			r.With(authed).Put("/settings", controllers.StoreSettingsSave(storeService, logg))
			r.With(authed).Get("/product-display", controllers.StoreProductDisplayGet(storeService, logg))
			r.With(authed).Put("/product-display", controllers.StoreProductDisplaySave(storeService, logg))
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.With(authed).Post("/", controllers.ProductCreate(productService, logg))
		r.With(optional).Get("/", controllers.ProductList(productService, logg))

		r.Route("/{productID}", func(r chi.Router) {
			r.Get("/", controllers.ProductGet(productService, logg))
			r.With(authed).Put("/", controllers.ProductUpdate(productService, logg))
			r.With(authed).Delete("/", controllers.ProductDelete(productService, logg))
		})
	})

	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authed)
		r.Post("/", controllers.OrderCreate(orderService, logg))
		r.Get("/", controllers.OrderList(orderService, logg))
		r.Get("/stats", controllers.OrderStats(orderService, logg))

		r.Route("/{orderID}", func(r chi.Router) {
			r.Get("/", controllers.OrderGet(orderService, logg))
			r.Put("/status", controllers.OrderUpdateStatus(orderService, logg))
			r.Post("/payment", controllers.OrderLinkPayment(orderService, logg))
		})
	})

	r.Route("/api/payments", func(r chi.Router) {
		r.With(authed).Post("/", controllers.PaymentCreate(paymentService, logg))
		r.With(authed).Get("/", controllers.PaymentList(paymentService, logg))
		r.With(authed).Get("/stats", controllers.PaymentStats(paymentService, logg))

		r.Route("/{paymentID}", func(r chi.Router) {
			r.Get("/", controllers.PaymentGet(paymentService, logg))
			r.Post("/confirm", controllers.PaymentConfirm(paymentService, logg))
			r.With(authed).Post("/refund", controllers.PaymentRefund(paymentService, logg))
			r.With(authed).Post("/escrow", controllers.PaymentEscrow(paymentService, logg))
			r.With(authed).Post("/escrow/release", controllers.PaymentEscrowRelease(paymentService, logg))
		})
	})

	r.With(authed).Get("/api/analytics/dashboard", controllers.AnalyticsDashboard(analyticsService, logg))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Not found"))
	})

	return r
}
