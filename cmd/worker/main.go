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

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"churchthreads.app/api/common/id"
	"churchthreads.app/api/common/logger"
	"churchthreads.app/api/common/otel"
	"churchthreads.app/api/core/config"
	"churchthreads.app/api/core/db"
	"churchthreads.app/api/internal/mail"
	"churchthreads.app/api/internal/notify"
	"churchthreads.app/api/internal/push"
	"churchthreads.app/api/internal/queue"
	"churchthreads.app/api/internal/store"
	"churchthreads.app/api/internal/worker"
)

const maxAttempts = 3

func main() {
	fmt.Printf("%s\n", banner)

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "churchthreads worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Pipeline.RedisGroup,
		"consumer_name", cfg.Pipeline.RedisConsumer)

	// Different node ID than the API server
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
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
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Pipeline.RedisStream)

	consumer, err := queue.NewRedisConsumer(redisClient, queue.ConsumerConfig{
		Stream:       cfg.Pipeline.RedisStream,
		Group:        cfg.Pipeline.RedisGroup,
		Consumer:     cfg.Pipeline.RedisConsumer,
		DLQStream:    cfg.Pipeline.RedisDLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		MaxAttempts:  maxAttempts,
		RequeueDelay: time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	renderer, err := mail.NewRenderer()
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse email templates", "error", err)
		os.Exit(1)
	}

	var pusher push.Sender
	if cfg.Push.Enabled() {
		pusher = push.NewWebPushSender(push.Config{
			VAPIDPublicKey:  cfg.Push.VAPIDPublicKey,
			VAPIDPrivateKey: cfg.Push.VAPIDPrivateKey,
			Subscriber:      cfg.Push.Subscriber,
		}, &http.Client{Timeout: 10 * time.Second})
	} else {
		slog.InfoContext(ctx, "web push disabled (no VAPID keys configured)")
	}

	stores := store.NewStores(database.Queries())
	mailer := mail.NewSMTPSender(mail.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		User:        cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	})

	processor := worker.NewProcessor(stores, mailer, renderer, pusher)
	w := worker.New(consumer, processor, worker.Config{MaxAttempts: maxAttempts})

	reclaimer := worker.NewReclaimer(redisClient, worker.ReclaimerConfig{
		Stream:      cfg.Pipeline.RedisStream,
		Group:       cfg.Pipeline.RedisGroup,
		Consumer:    cfg.Pipeline.RedisConsumer + "-reclaimer",
		MinIdle:     5 * time.Minute,
		Interval:    time.Minute,
		BatchSize:   10,
		MaxAttempts: maxAttempts,
	}, consumer, w.ProcessMessage)

	producer := queue.NewRedisProducer(redisClient, cfg.Pipeline.RedisStream, nil)
	dispatcher := notify.NewDispatcher(
		notify.NewRedisScheduler(redisClient, notify.SchedulerConfig{}),
		producer,
		notify.DispatcherConfig{
			Interval:  cfg.Notifications.DispatchInterval,
			BatchSize: cfg.Notifications.DispatchBatch,
		},
	)

	sweeper := worker.NewSweeper(stores)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(gctx) })
	g.Go(func() error {
		reclaimer.Run(gctx)
		return nil
	})
	g.Go(func() error { return dispatcher.Run(gctx) })
	g.Go(func() error { return sweeper.Run(gctx) })

	slog.InfoContext(ctx, "worker initialized and running")

	if err := g.Wait(); err != nil {
		slog.ErrorContext(ctx, "worker stopped with error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "worker shutdown complete")
}

const banner = `
  ____ _                     _     _____ _                        _
 / ___| |__  _   _ _ __ ___| |__ |_   _| |__  _ __ ___  __ _  __| |___
| |   | '_ \| | | | '__/ __| '_ \  | | | '_ \| '__/ _ \/ _' |/ _' / __|
| |___| | | | |_| | | | (__| | | | | | | | | | | |  __/ (_| | (_| \__ \
 \____|_| |_|\__,_|_|  \___|_| |_| |_| |_| |_|_|  \___|\__,_|\__,_|___/
                                                              worker
`
