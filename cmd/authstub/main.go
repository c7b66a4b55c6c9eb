// Command authstub runs an in-memory identity service for local development.
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

	"blog-service/authstub"
	"blog-service/config"
	"blog-service/helper"
	"blog-service/models"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const defaultUsers = "admin:admin:ROLE_ADMIN|ROLE_USER,user:user:ROLE_USER"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger, err := helper.NewLogger(config.LogConfig{Level: os.Getenv("LOG_LEVEL")})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	raw := os.Getenv("AUTHSTUB_USERS")
	if raw == "" {
		raw = defaultUsers
	}
	seed, err := authstub.ParseUsers(raw)
	if err != nil {
		logger.Fatal("invalid AUTHSTUB_USERS", zap.Error(err))
	}
	store, err := authstub.NewStore(seed)
	if err != nil {
		logger.Fatal("failed to seed users", zap.Error(err))
	}

	adminRole := os.Getenv("AUTH_ADMIN_ROLE")
	if adminRole == "" {
		adminRole = models.RoleAdmin
	}

	port := os.Getenv("AUTHSTUB_PORT")
	if port == "" {
		port = "8081"
	}

	gin.SetMode(gin.ReleaseMode)
	server := authstub.NewServer(store, config.LoadJWTSettings(), adminRole, logger)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("auth stub starting", zap.String("port", port), zap.Int("users", len(seed)))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("auth stub failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("auth stub forced to shutdown", zap.Error(err))
	}
}
