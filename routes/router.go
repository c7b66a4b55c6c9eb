package routes

import (
	"net/http"
	"time"

	"blog-service/handlers"
	"blog-service/helper"
	"blog-service/middleware"
	"blog-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies is everything the router needs to build its handlers.
type Dependencies struct {
	AuthService services.AuthService
	PostService services.PostService
	TagService  services.TagService
	Helper      *helper.HTTPHelper
	Logger      *zap.Logger

	AllowedOrigins []string
	AdminRole      string
	LoginLimiter   *middleware.IPRateLimiter
}

func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(deps.Logger, deps.Helper),
		middleware.Logger(deps.Logger),
		middleware.Metrics(),
		cors.New(corsConfig(deps.AllowedOrigins)),
	)

	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Helper, deps.Logger)
	postHandler := handlers.NewPostHandler(deps.PostService, deps.Helper)
	tagHandler := handlers.NewTagHandler(deps.TagService, deps.Helper)

	authRequired := middleware.AuthRequired(deps.AuthService, deps.Helper, deps.Logger)
	loginLimiter := deps.LoginLimiter
	if loginLimiter == nil {
		loginLimiter = middleware.NewIPRateLimiter(0)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/login", middleware.RateLimit(loginLimiter, deps.Helper), authHandler.Login)

	posts := router.Group("/posts")
	{
		// Public
		posts.GET("", postHandler.GetPosts)
		posts.GET("/:id", postHandler.GetPost)

		protected := posts.Group("", authRequired)
		{
			protected.POST("", postHandler.CreatePost)
			protected.PATCH("/:id", postHandler.UpdatePost)
			protected.DELETE("/:id", postHandler.DeletePost)
			protected.POST("/:id/tags", postHandler.AddTag)
			protected.DELETE("/:id/tags", postHandler.RemoveTag)
		}

		admin := posts.Group("/admin", authRequired, middleware.RequireRole(deps.AdminRole, deps.Helper))
		{
			admin.GET("/users", authHandler.GetUsers)
			admin.DELETE("/users", authHandler.DeleteUser)
		}
	}

	tags := router.Group("/tags")
	{
		tags.GET("", tagHandler.GetTags)
		tags.POST("/create-tag", authRequired, tagHandler.CreateTag)
		tags.DELETE("", authRequired, tagHandler.DeleteTag)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
