package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/quicknotes/notes-api/docs"
	"github.com/quicknotes/notes-api/internal/api/handler"
	"github.com/quicknotes/notes-api/internal/api/middleware"
	"github.com/quicknotes/notes-api/internal/core/ports"
	"github.com/quicknotes/notes-api/internal/core/service"
	"github.com/quicknotes/notes-api/internal/infrastructure/config"
	mongodb "github.com/quicknotes/notes-api/internal/infrastructure/db/mongo"
	redisdb "github.com/quicknotes/notes-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, hasher ports.PasswordHasher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("notes"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, echo.HeaderAccept, echo.HeaderOrigin, echo.HeaderXRequestedWith},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE, echo.OPTIONS},
	}))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)
	userCache := redisdb.NewUserCache(rdb, cfg.Redis.UserCacheTTL)

	authService := service.NewAuthService(userRepo, hasher, userCache, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, noteRepo, hasher, userCache, log)
	noteService := service.NewNoteService(noteRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	noteHandler := handler.NewNoteHandler(noteService)
	debugHandler := handler.NewDebugHandler()

	requireAuth := middleware.Auth(authService)

	v1 := e.Group("/api/v1")

	// --- Auth routes (public) ---
	v1.POST("/auth", authHandler.Signup)
	v1.GET("/auth", authHandler.Root)
	v1.POST("/auth/signin", authHandler.Signin)

	// --- Notes (owner-scoped, auth required) ---
	notes := v1.Group("/notes", requireAuth)
	notes.POST("", noteHandler.Create)
	notes.GET("", noteHandler.List)
	notes.GET("/:id", noteHandler.Get)
	notes.PUT("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)

	// --- Users (auth required on every route) ---
	users := v1.Group("/users", requireAuth)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/me", userHandler.UpdateProfile)
	users.PUT("/me/password", userHandler.ChangePassword)
	users.DELETE("/me", userHandler.Delete)

	// --- Debug ---
	v1.GET("/debug/ping", debugHandler.Ping)
	v1.GET("/debug/routes", debugHandler.Routes)
	v1.GET("/debug/whoami", debugHandler.Whoami, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Static client bundle fallback for non-API paths ---
	e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Root:  cfg.StaticDir,
		HTML5: true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return strings.HasPrefix(p, "/api/") ||
				strings.HasPrefix(p, "/health") ||
				strings.HasPrefix(p, "/metrics") ||
				strings.HasPrefix(p, "/swagger")
		},
	}))

	return e
}
