package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carpool-service/internal/adapter/gin/handler"
	"carpool-service/internal/adapter/gin/middleware"
	"carpool-service/internal/usecase/auth"
	redisclient "carpool-service/pkg/redis"
)

// Config holds router-level settings.
type Config struct {
	RequestTimeout time.Duration
	RateLimit      middleware.RateLimiterConfig
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	authHandler *handler.AuthHandler,
	rideHandler *handler.RideHandler,
	requestHandler *handler.RequestHandler,
	verifier auth.TokenVerifier,
	redisClient *redisclient.Client,
	cfg Config,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS())
	router.Use(middleware.Timeout(cfg.RequestTimeout))
	if redisClient != nil {
		router.Use(middleware.RateLimiter(redisClient.Client, cfg.RateLimit, log))
	}

	authRequired := middleware.Auth(verifier, log)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "carpool-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		users := v1.Group("/users")
		{
			users.GET("/me", authRequired, authHandler.Dashboard)
			users.GET("/:uid", authHandler.GetUser)
		}

		rides := v1.Group("/rides")
		{
			rides.POST("", rideHandler.Publish)
			rides.GET("", rideHandler.ListAll)
			rides.GET("/search", rideHandler.Search)
			rides.GET("/publisher/:uid", rideHandler.ByPublisher)

			rides.POST("/:id/requests", authRequired, requestHandler.Submit)
			rides.GET("/:id/requests", requestHandler.ListByRide)
			rides.DELETE("/:id/requests/:uid", authRequired, requestHandler.Remove)
		}
	}

	return router
}
