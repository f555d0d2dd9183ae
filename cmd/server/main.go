package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cluster-dashboard-backend/internal/config"
	"cluster-dashboard-backend/internal/handler"
	"cluster-dashboard-backend/internal/middleware"
	"cluster-dashboard-backend/internal/model"
	"cluster-dashboard-backend/internal/pkg/events"
	"cluster-dashboard-backend/internal/pkg/logger"
	"cluster-dashboard-backend/internal/pkg/password"
	"cluster-dashboard-backend/internal/pkg/token"
	"cluster-dashboard-backend/internal/repository"
	"cluster-dashboard-backend/internal/resolver"
	"cluster-dashboard-backend/internal/router"
	"cluster-dashboard-backend/internal/schema"
	"cluster-dashboard-backend/internal/service"
	"cluster-dashboard-backend/pkg/utils"
)

func main() {
	// Load configuration
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to read .env: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	// Initialize auth primitives
	hasher, err := password.NewHasher(cfg.Auth.PasswordHash, cfg.Auth.PasswordPepper, cfg.Auth.PBKDF2Iterations)
	if err != nil {
		appLogger.Fatal("Invalid password hash configuration", zap.Error(err))
	}
	tokens, err := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		appLogger.Fatal("Invalid token configuration", zap.Error(err))
	}

	// Initialize repositories and services
	users := repository.NewMemoryUserRepository()
	nodes := repository.NewMemoryNodeRepository()
	authService := service.NewAuthService(users, hasher, tokens, appLogger)

	if err := seed(context.Background(), cfg.Seed, authService, nodes, appLogger); err != nil {
		appLogger.Fatal("Failed to seed data", zap.Error(err))
	}

	hub := events.NewHub()
	ops := resolver.New(authService, nodes, hub, appLogger)
	limiter := middleware.NewRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateBurst)
	ops.Limit(limiter, resolver.OpLogin, resolver.OpRegister)
	gqlSchema, err := schema.New(ops)
	if err != nil {
		appLogger.Fatal("Failed to build GraphQL schema", zap.Error(err))
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(ops)
	nodeHandler := handler.NewNodeHandler(ops)
	graphqlHandler := handler.NewGraphQLHandler(gqlSchema)
	eventHandler := handler.NewEventHandler(hub, authService, cfg.Server.AllowedOrigins, appLogger)

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Create router
	r := gin.New()

	// Middleware
	r.Use(middleware.RequestLogger(appLogger))
	r.Use(gin.Recovery())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(middleware.Client())
	r.Use(middleware.Identity(authService))

	// Register routes
	router.RegisterRoutes(r, authHandler, nodeHandler, graphqlHandler, eventHandler)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("Server starting", zap.String("addr", addr), zap.String("graphql", "/graphql"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
}

// seed loads the demo dataset when enabled and bootstraps an admin account
// from the environment when one is configured.
func seed(ctx context.Context, cfg config.SeedConfig, auth *service.AuthService, nodes *repository.MemoryNodeRepository, appLogger *logger.Logger) error {
	if cfg.DemoData {
		for _, acct := range repository.DemoAccounts() {
			if err := auth.SeedAccount(ctx, acct); err != nil {
				return fmt.Errorf("seed account %s: %w", acct.Username, err)
			}
		}
		nodes.Seed(repository.DemoNodes())
		appLogger.Warn("Demo data loaded; demo accounts use well-known passwords")
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}
	if err := utils.ValidatePassword(cfg.AdminPassword); err != nil {
		return fmt.Errorf("admin password: %w", err)
	}
	email := cfg.AdminEmail
	if email == "" {
		email = cfg.AdminUsername + "@localhost.localdomain"
	}
	if err := auth.SeedAccount(ctx, repository.DemoAccount{
		Username: cfg.AdminUsername,
		Email:    email,
		Password: cfg.AdminPassword,
		Role:     model.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	appLogger.Info("Admin account ready", zap.String("username", cfg.AdminUsername))
	return nil
}
