package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"churchthreads.app/api/common/id"
	"churchthreads.app/api/common/logger"
	"churchthreads.app/api/common/metrics"
	"churchthreads.app/api/common/otel"
	"churchthreads.app/api/core/config"
	"churchthreads.app/api/core/db"
	"churchthreads.app/api/internal/http/middleware"
	httprouter "churchthreads.app/api/internal/http/router"
	"churchthreads.app/api/internal/mail"
	"churchthreads.app/api/internal/notify"
	"churchthreads.app/api/internal/queue"
	"churchthreads.app/api/internal/service"
	"churchthreads.app/api/internal/service/identity"
	"churchthreads.app/api/internal/storage"
	"churchthreads.app/api/internal/store"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "churchthreads api starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Pipeline.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Pipeline.RedisStream)

	producer := queue.NewRedisProducer(redisClient, cfg.Pipeline.RedisStream, nil)
	defer producer.Close()

	renderer, err := mail.NewRenderer()
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse email templates", "error", err)
		os.Exit(1)
	}

	blobs := storage.New(storage.Config{
		RootDir:       cfg.Storage.RootDir,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if cfg.Storage.RootDir == "" {
		slog.WarnContext(ctx, "no storage root configured, uploads are kept in memory")
	}

	services := service.NewServices(
		store.NewStores(database.Queries()),
		service.NewTxRunner(database),
		service.Deps{
			Identity:  identity.NewWorkOSProvider(cfg.WorkOS),
			Scheduler: notify.NewRedisScheduler(redisClient, notify.SchedulerConfig{}),
			Producer:  producer,
			Mailer:    newMailer(cfg.Email),
			Renderer:  renderer,
			Blobs:     blobs,
		},
		cfg,
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := setupRouter(cfg, services, blobs)
	if err != nil {
		slog.ErrorContext(ctx, "failed to set up routes", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, blobs storage.BlobStore) (*gin.Engine, error) {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(metrics.Middleware())

	err := httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		AppURL:       cfg.AppURL,
		IsProduction: cfg.IsProduction(),
		CORSOrigins:  cfg.CORSOrigins,
		RateLimit:    cfg.RateLimit,
		Files:        blobs.HTTPFileSystem(),
	})
	return router, err
}

func newMailer(cfg config.EmailConfig) *mail.SMTPSender {
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		User:        cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
	})
}

const banner = `
  ____ _                     _     _____ _                        _
 / ___| |__  _   _ _ __ ___| |__ |_   _| |__  _ __ ___  __ _  __| |___
| |   | '_ \| | | | '__/ __| '_ \  | | | '_ \| '__/ _ \/ _' |/ _' / __|
| |___| | | | |_| | | | (__| | | | | | | | | | | |  __/ (_| | (_| \__ \
 \____|_| |_|\__,_|_|  \___|_| |_| |_| |_| |_|_|  \___|\__,_|\__,_|___/
`
