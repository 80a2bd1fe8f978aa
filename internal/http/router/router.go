package router

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"churchthreads.app/api/common/metrics"
	"churchthreads.app/api/core/config"
	"churchthreads.app/api/internal/http/handler"
	"churchthreads.app/api/internal/http/handler/webhook"
	"churchthreads.app/api/internal/http/middleware"
	"churchthreads.app/api/internal/service"
)

type RouterConfig struct {
	AppURL       string
	IsProduction bool
	CORSOrigins  []string
	RateLimit    config.RateLimitConfig
	// Files serves stored uploads under /files. Nil disables the route.
	Files http.FileSystem
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) error {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	if cfg.Files != nil {
		files := router.Group("/files", middleware.FileHeaders())
		files.StaticFS("/", cfg.Files)
	}

	authService := services.Auth()
	requireAuth := middleware.RequireAuth(authService)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)

	authHandler := handler.NewAuthHandler(authService, services.Organizations(), cfg.AppURL, cfg.IsProduction)
	AuthRouter(router.Group("/auth"), authHandler)

	emailEvents, err := services.EmailEvents()
	if err != nil {
		return fmt.Errorf("creating email event service: %w", err)
	}
	WebhookRouter(router.Group("/webhooks"), webhook.NewEmailWebhookHandler(emailEvents))

	uploadHandler := handler.NewUploadHandler(services.Uploads())
	uploadCORS := newCORS(cfg.CORSOrigins)
	router.OPTIONS("/upload", uploadCORS)
	router.POST("/upload", uploadCORS, limiter.Middleware(), requireAuth, uploadHandler.Upload)

	v1 := router.Group("/api/v1")
	{
		userHandler := handler.NewUserHandler(services.Users())
		pushHandler := handler.NewPushHandler(services.Push())
		UserRouter(v1, requireAuth, userHandler, pushHandler)

		OrganizationRouter(v1.Group("/orgs"), requireAuth, limiter.Middleware(), OrgHandlers{
			Organizations: handler.NewOrganizationHandler(services.Organizations()),
			Feeds:         handler.NewFeedHandler(services.Feeds()),
			Threads:       handler.NewThreadHandler(services.Threads()),
			Invitations:   handler.NewInvitationHandler(services.Invitations()),
			Registration:  handler.NewRegistrationHandler(services.Registration()),
			Notifications: handler.NewNotificationHandler(services.Notifications()),
		})
	}

	return nil
}

// newCORS allows the upload widget on org subdomains to post files with the
// session cookie.
func newCORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
