package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"carpool-service/cmd/api/infrastructure"
	"carpool-service/internal/adapter/cache"
	"carpool-service/internal/adapter/db/postgres"
	ginhandler "carpool-service/internal/adapter/gin/handler"
	"carpool-service/internal/adapter/repository/cached"
	"carpool-service/internal/config"
	"carpool-service/internal/usecase/auth"
	"carpool-service/internal/usecase/request"
	"carpool-service/internal/usecase/ride"
	redisclient "carpool-service/pkg/redis"
	"carpool-service/pkg/security"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client

	AuthUC    auth.Usecase
	Verifier  auth.TokenVerifier
	RideUC    ride.Usecase
	RequestUC request.Usecase

	AuthHandler    *ginhandler.AuthHandler
	RideHandler    *ginhandler.RideHandler
	RequestHandler *ginhandler.RequestHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	userCache := cache.NewRedisUserCache(
		rdb.Client,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		l,
	)

	// The signing secret is injected here once; the auth service and the
	// verifier share the same manager rather than reading a global.
	tokens, err := security.NewTokenManager(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLSeconds)*time.Second,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token manager: %w", err)
	}

	userRepo := cached.NewCachedUserRepository(postgres.NewUserRepoPG(db, l), userCache, l)
	rideRepo := postgres.NewRideRepoPG(db, l)
	requestRepo := postgres.NewRequestRepoPG(db, l)

	authUC := auth.New(userRepo, tokens, l)
	verifier := auth.NewVerifier(userRepo, tokens, l)
	rideUC := ride.NewCatalog(rideRepo, l)
	requestUC := request.NewLedger(requestRepo, rideRepo, l)

	return &Container{
		Config:         cfg,
		Logger:         l,
		DB:             db,
		RedisClient:    rdb,
		AuthUC:         authUC,
		Verifier:       verifier,
		RideUC:         rideUC,
		RequestUC:      requestUC,
		AuthHandler:    ginhandler.NewAuthHandler(authUC, l),
		RideHandler:    ginhandler.NewRideHandler(rideUC, l),
		RequestHandler: ginhandler.NewRequestHandler(requestUC, l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
