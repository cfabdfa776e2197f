package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mvs/product-catalog/docs"
	"github.com/mvs/product-catalog/internal/api/handler"
	"github.com/mvs/product-catalog/internal/api/middleware"
	"github.com/mvs/product-catalog/internal/core/domain"
	"github.com/mvs/product-catalog/internal/core/ports"
)

// Deps carries everything the router needs. Services and stores are
// interfaces so tests can wire in-memory implementations; Mongo and Redis are
// only used by the readiness probe and may be nil in tests.
type Deps struct {
	AuthService     ports.AuthService
	ProductService  ports.ProductService
	TokenCodec      ports.TokenCodec
	CredentialStore ports.CredentialStore
	Mongo           *mongo.Database
	Redis           *redis.Client
	Logger          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("catalog"))
	// The authentication gate runs on every request; it attaches an identity
	// when the bearer token verifies and otherwise lets the request through
	// for the route guards to reject.
	e.Use(middleware.Auth(deps.TokenCodec, deps.CredentialStore, deps.Logger))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Logger)
	productHandler := handler.NewProductHandler(deps.ProductService)

	// --- Auth ---
	e.POST("/authenticate", authHandler.Authenticate)

	// --- Products ---
	anyRole := middleware.RequireRoles(domain.RoleUser, domain.RoleAdmin)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	products := e.Group("/api/v1/products")
	products.GET("", productHandler.List, anyRole)
	products.GET("/:id", productHandler.Get, anyRole)
	products.POST("", productHandler.Create, adminOnly)
	products.PUT("/:id", productHandler.Update, adminOnly)
	products.DELETE("/:id", productHandler.Delete, adminOnly)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	e.GET("/health", handler.NewHealthHandler().Liveness)
	if deps.Mongo != nil && deps.Redis != nil {
		e.GET("/health/ready", handler.NewReadinessHandler(deps.Mongo, deps.Redis).Readiness)
	}

	return e
}
