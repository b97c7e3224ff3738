package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"adoptnest/internal/assetstore"
	"adoptnest/internal/config"
	"adoptnest/internal/database"
	custommiddleware "adoptnest/internal/middleware"
	"adoptnest/internal/repository"
	"adoptnest/internal/service"
	"adoptnest/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

// NewServer wires repositories, services and handlers over the given
// database and asset store. redisClient may be nil, which disables rate
// limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, assets assetstore.Store, redisClient *redis.Client) *Server {
	router := NewRouter(cfg, logger, db, assets, redisClient)

	return &Server{
		Server: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:           otelhttp.NewHandler(router, "adoptnest-api"),
			IdleTimeout:       time.Minute,
			ReadHeaderTimeout: 10 * time.Second,
			// multipart submissions carry up to five images
			ReadTimeout:  2 * time.Minute,
			WriteTimeout: 2 * time.Minute,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}
}

// NewRouter builds the chi router with the full route table.
func NewRouter(cfg *config.Config, logger *zap.Logger, db database.Service, assets assetstore.Store, redisClient *redis.Client) chi.Router {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsDevelopment()))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := db.Health()
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, health)
	})

	// Initialize repositories
	sqlDB := db.DB()
	userRepo := repository.NewUserRepository(sqlDB)
	refreshTokenRepo := repository.NewRefreshTokenRepository(sqlDB)
	petRepo := repository.NewPetRepository(sqlDB)
	categoryRepo := repository.NewCategoryRepository(sqlDB)
	bannerRepo := repository.NewBannerRepository(sqlDB)
	favouriteRepo := repository.NewFavouriteRepository(sqlDB)

	// Initialize services
	userService := service.NewUserService(userRepo, refreshTokenRepo, cfg.JWT)
	petService := service.NewPetService(petRepo, categoryRepo, userRepo, assets, logger)
	categoryService := service.NewCategoryService(categoryRepo, assets, logger)
	bannerService := service.NewBannerService(bannerRepo, assets, logger)
	favouriteService := service.NewFavouriteService(favouriteRepo, petRepo)

	guards := transport.Guards{
		Auth:         custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger),
		OptionalAuth: custommiddleware.OptionalAuthMiddleware(cfg.JWT.Secret, logger),
		Admin:        custommiddleware.RequireAdmin(logger),
	}
	if redisClient != nil {
		guards.SubmitLimit = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "ratelimit:submit",
		}, logger)
		guards.AuthLimit = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "ratelimit:auth",
		}, logger)
	}

	// Register routes
	transport.NewUserHandler(userService, favouriteService, logger).RegisterRoutes(router, guards)
	transport.NewPetHandler(petService, userService, cfg.Server.UploadDir, logger).RegisterRoutes(router, guards)
	transport.NewUIHandler(petService, categoryService, bannerService, userService, logger).RegisterRoutes(router, guards)
	transport.NewAdminHandler(bannerService, categoryService, userService, cfg.Server.UploadDir, logger).RegisterRoutes(router, guards)

	return router
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
