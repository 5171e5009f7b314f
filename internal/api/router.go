package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/toolhub/dashboard-api/docs"
	"github.com/toolhub/dashboard-api/internal/api/handler"
	"github.com/toolhub/dashboard-api/internal/api/middleware"
	"github.com/toolhub/dashboard-api/internal/core/service"
	"github.com/toolhub/dashboard-api/internal/infrastructure/config"
	"github.com/toolhub/dashboard-api/internal/infrastructure/db/postgres"
	"github.com/toolhub/dashboard-api/internal/infrastructure/db/redis"
	"github.com/toolhub/dashboard-api/internal/infrastructure/http/handlers"
	"github.com/toolhub/dashboard-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *goredis.Client, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dashboard"))

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	usageRepo := postgres.NewUsageRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	revocationList := redis.NewRevocationList(rdb)

	// --- Services ---
	log := logger.Get()
	authService := service.NewAuthService(userRepo, revocationList, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, assignmentRepo, log)
	itemService := service.NewItemService(itemRepo, assignmentRepo, log)
	dashboardService := service.NewDashboardService(itemRepo)
	usageService := service.NewUsageService(usageRepo, assignmentRepo, log)
	analyticsService := service.NewAnalyticsService(analyticsRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	usageHandler := handler.NewUsageHandler(usageService)
	adminUserHandler := handler.NewAdminUserHandler(userService)
	adminItemHandler := handler.NewAdminItemHandler(itemService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	authMiddleware := middleware.Auth(cfg.JWTSecret, revocationList)

	// --- Public routes ---
	e.POST("/v1/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/auth/logout", authHandler.Logout)
	v1.PUT("/auth/password", authHandler.ChangePassword)
	v1.GET("/auth/me", authHandler.Me)

	v1.GET("/items", dashboardHandler.List)
	v1.GET("/items/:id", dashboardHandler.Get)

	v1.POST("/usage/start", usageHandler.Start)
	v1.POST("/usage/end", usageHandler.End)

	// --- Admin routes ---
	admin := v1.Group("/admin", middleware.AdminOnly())
	admin.GET("/users", adminUserHandler.List)
	admin.POST("/users", adminUserHandler.Create)
	admin.PUT("/users/:id", adminUserHandler.Update)
	admin.DELETE("/users/:id", adminUserHandler.Delete)
	admin.GET("/users/:id/items", adminUserHandler.Assignments)
	admin.PUT("/users/:id/items", adminUserHandler.ReplaceAssignments)

	admin.GET("/items", adminItemHandler.List)
	admin.POST("/items", adminItemHandler.Create)
	admin.PUT("/items/:id", adminItemHandler.Update)
	admin.DELETE("/items/:id", adminItemHandler.Delete)
	admin.GET("/items/:id/users", adminItemHandler.AssignedUsers)

	admin.GET("/analytics/summary", analyticsHandler.Summary)
	admin.GET("/analytics/top-tools", analyticsHandler.TopTools)
	admin.GET("/analytics/activity", analyticsHandler.UserActivity)
	admin.GET("/analytics/recent", analyticsHandler.Recent)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
