package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-service/cache"
	"blog-service/config"
	"blog-service/helper"
	"blog-service/middleware"
	"blog-service/models"
	"blog-service/repositories"
	"blog-service/routes"
	"blog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := helper.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := config.InitDB(cfg.Database, cfg.Log.Level, logger, &models.Post{}, &models.Tag{})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Listing cache, Redis when configured
	var listingCache cache.ListingCache = cache.NopListingCache{}
	if rc := cache.NewRedisClient(cfg.Redis); rc != nil {
		defer rc.Close()
		listingCache = cache.NewRedisListingCache(rc, cfg.Redis.TTL)
		logger.Info("listing cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// Initialize repositories
	postRepo := repositories.NewPostRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	txManager := repositories.NewTxManager(db)

	validator, err := helper.NewValidator()
	if err != nil {
		logger.Fatal("failed to initialize validator", zap.Error(err))
	}
	sanitizer := helper.NewSanitizer()

	// Initialize services
	authService := services.NewAuthService(cfg.AuthService, &http.Client{Timeout: cfg.AuthService.Timeout}, logger)
	postService := services.NewPostService(postRepo, tagRepo, txManager, listingCache, validator, sanitizer, cfg.AuthService.AdminRole, logger)
	tagService := services.NewTagService(tagRepo, txManager, listingCache, validator, sanitizer, logger)

	// Setup router
	gin.SetMode(cfg.GinMode)
	router := routes.SetupRouter(routes.Dependencies{
		AuthService:    authService,
		PostService:    postService,
		TagService:     tagService,
		Helper:         helper.NewHTTPHelper(validator),
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		AdminRole:      cfg.AuthService.AdminRole,
		LoginLimiter:   middleware.NewIPRateLimiter(cfg.RateLimitPerMinute),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
