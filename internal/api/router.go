package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/perfhub/performance-system/docs"
	"github.com/perfhub/performance-system/internal/api/handler"
	"github.com/perfhub/performance-system/internal/api/middleware"
	"github.com/perfhub/performance-system/internal/core/domain"
	"github.com/perfhub/performance-system/internal/core/ports"
	"github.com/perfhub/performance-system/internal/core/service"
	"github.com/perfhub/performance-system/internal/infrastructure/config"
	mongodb "github.com/perfhub/performance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/perfhub/performance-system/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered. It also
// returns the stats service so the caller can run the background refresher.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, ports.StatsService) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("perfgoals"))

	// --- Repositories ---
	goalRepo := mongodb.NewGoalRepository(db)
	ratingRepo := mongodb.NewRatingRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)
	snapshotCache := redisdb.NewSnapshotCache(rdb, time.Duration(cfg.Stats.CacheTTLSeconds)*time.Second)

	// --- Services ---
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	goalService := service.NewGoalService(goalRepo, userRepo, ratingRepo, log)
	ratingService := service.NewRatingService(ratingRepo, goalRepo, log)
	statsService := service.NewStatsService(goalRepo, snapshotCache, log)
	userService := service.NewUserService(userRepo, log)
	settingsService := service.NewSettingsService(settingsRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	goalHandler := handler.NewGoalHandler(goalService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	statsHandler := handler.NewStatsHandler(statsService)
	userHandler := handler.NewUserHandler(userService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", middleware.Auth(cfg.JWTSecret))

	v1.GET("/goals/stats", statsHandler.Dashboard)
	v1.POST("/goals", goalHandler.Create)
	v1.GET("/goals", goalHandler.List)
	v1.GET("/goals/:id", goalHandler.Get)
	v1.PUT("/goals/:id", goalHandler.Update)
	v1.DELETE("/goals/:id", goalHandler.Delete)
	v1.PUT("/goals/:id/submit", goalHandler.Submit)
	v1.PUT("/goals/:id/approve", goalHandler.Approve)
	v1.PUT("/goals/:id/reject", goalHandler.Reject)
	v1.PUT("/goals/:id/request-changes", goalHandler.RequestChanges)
	v1.PUT("/goals/:id/complete", goalHandler.Complete)

	v1.POST("/goals/:id/self-rating", ratingHandler.SubmitSelf)
	v1.POST("/goals/:id/manager-rating", ratingHandler.SubmitManager)
	v1.GET("/goals/:id/ratings", ratingHandler.List)

	v1.GET("/employees", userHandler.Employees)
	v1.GET("/employees/assigned", userHandler.Assigned)

	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Deactivate)
	admin.GET("/settings", settingsHandler.Get)
	admin.PUT("/settings", settingsHandler.Save)

	return e, statsService
}
