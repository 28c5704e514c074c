package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/storefront/storefront/internal/metrics"
	"github.com/storefront/storefront/internal/middleware"
	"github.com/storefront/storefront/internal/service"
)

// RouterConfig carries everything the router needs.
type RouterConfig struct {
	Users    *service.UserService
	Products *service.ProductService
	Orders   *service.OrderService

	// DB and Cache back /readyz. Cache may be nil.
	DB    HealthChecker
	Cache HealthChecker

	Metrics  metrics.Recorder
	Snapshot metrics.Snapshotter
	Logger   *slog.Logger

	Security       middleware.SecurityConfig
	CORS           middleware.CORSConfig
	MaxRequestBody int64
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := New()
	health := NewHealthHandler(cfg.DB, cfg.Cache)
	metricsHandler := NewMetricsHandler(cfg.Snapshot)
	users := NewUserHandler(cfg.Users, logger)
	products := NewProductHandler(cfg.Products, logger)
	orders := NewOrderHandler(cfg.Orders, logger)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger, cfg.Metrics))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(cfg.Security))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBody))

	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)
	r.Get("/", h.Index)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", users.List)
		r.Post("/", users.Create)
		r.Get("/{id}", users.Get)
		r.Put("/{id}", users.Update)
		r.Delete("/{id}", users.Delete)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", products.List)
		r.Post("/", products.Create)
		r.Get("/{id}", products.Get)
		r.Put("/{id}", products.Update)
		r.Delete("/{id}", products.Delete)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", orders.List)
		r.Post("/", orders.Create)
		r.Get("/user/{user_id}", orders.ListForUser)
		r.Get("/{order_id}", orders.Get)
		r.Put("/{order_id}", orders.Update)
		r.Delete("/{order_id}", orders.Delete)
		r.Get("/{order_id}/products", orders.ListProducts)
		r.Put("/{order_id}/add_product/{product_id}", orders.AddProduct)
		r.Delete("/{order_id}/remove_product/{product_id}", orders.RemoveProduct)
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
