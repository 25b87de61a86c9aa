package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"carpool-service/cmd/api/di"
	"carpool-service/internal/adapter/gin/middleware"
	ginrouter "carpool-service/internal/adapter/gin/router"
	"carpool-service/internal/config"
)

// Server holds the HTTP server and its dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance wired from the DI container
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	router := ginrouter.SetupRouter(
		c.AuthHandler,
		c.RideHandler,
		c.RequestHandler,
		c.Verifier,
		c.RedisClient,
		ginrouter.Config{
			RequestTimeout: time.Duration(cfg.App.RequestTimeoutSeconds) * time.Second,
			RateLimit: middleware.RateLimiterConfig{
				Enabled:           cfg.RateLimit.Enabled,
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
			},
		},
		l,
	)

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              ":" + cfg.App.HTTPPort,
			Handler:           router,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	if err := s.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
