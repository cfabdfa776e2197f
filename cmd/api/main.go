package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mvs/product-catalog/internal/api"
	"github.com/mvs/product-catalog/internal/core/domain"
	"github.com/mvs/product-catalog/internal/core/service"
	mongodb "github.com/mvs/product-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/mvs/product-catalog/internal/infrastructure/db/redis"
	"github.com/mvs/product-catalog/internal/infrastructure/queue"
	"github.com/mvs/product-catalog/internal/pkg/config"
	"github.com/mvs/product-catalog/pkg/logger"
)

// fixturePassword seeds the two demo accounts. Replace the seeding step with
// an externally managed users collection for anything beyond demos.
const fixturePassword = "pwd"

// @title        Product Catalog API
// @version      1.0
// @description  CRUD REST API for a product catalog protected by stateless bearer-token authentication.
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure user indexes")
	}
	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure product indexes")
	}
	if err := seedFixtureUsers(ctx, userRepo); err != nil {
		log.Fatal().Err(err).Msg("failed to seed fixture accounts")
	}

	codec := service.NewTokenCodec(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, codec, log)

	auditService := service.NewAuditService(auditRepo, log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	cache := redisdb.NewProductCache(rdb)
	productService := service.NewProductService(productRepo, cache, dispatcher, log)

	e := api.NewRouter(api.Deps{
		AuthService:     authService,
		ProductService:  productService,
		TokenCodec:      codec,
		CredentialStore: userRepo,
		Mongo:           db,
		Redis:           rdb,
		Logger:          log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// seedFixtureUsers installs the two demo accounts ("user" and "admin", both
// with the fixture password). Hashes are generated once here, not per login.
func seedFixtureUsers(ctx context.Context, repo *mongodb.UserRepository) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(fixturePassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return repo.Seed(ctx, []*domain.User{
		{Username: "user", PasswordHash: string(hash), Role: domain.RoleUser},
		{Username: "admin", PasswordHash: string(hash), Role: domain.RoleAdmin},
	})
}
