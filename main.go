package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"storefront/internal/config"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/pkg/logger"
	"storefront/pkg/rabbitmq"
	"storefront/pkg/redisstore"
	"storefront/pkg/upload"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logger.New("storefront", cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := repositories.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName, log)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	log.WithField("backend", store.Backend).Info("Database connected")

	uploads, err := upload.NewStore(cfg.UploadDir, cfg.MaxUploadSize)
	if err != nil {
		log.WithError(err).Fatal("Failed to prepare upload directory")
	}

	limit := middleware.RateLimitConfig{Max: cfg.RateLimitMax, Window: cfg.RateLimitWindow}
	var redisStorage *redisstore.Storage
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisStorage, err = redisstore.New(ctx, cfg.RedisURL, "storefront:limiter:")
		cancel()
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		// assigned only here so a nil *Storage never becomes a non-nil interface
		limit.Storage = redisStorage
		log.Info("Rate limit counters stored in Redis")
	}

	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.EventsQueue}, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to initialize RabbitMQ client")
		}
		events = mqClient

		if cfg.ConsumeEvents {
			if err := mqClient.ConsumeEvents(rabbitmq.LogEvent(log)); err != nil {
				log.WithError(err).Error("Failed to start event consumer")
			}
		}
	} else {
		log.Info("RABBITMQ_URL not set, domain events are disabled")
	}

	app := server.New(server.Deps{
		Store:     store,
		Uploads:   uploads,
		Events:    events,
		Metrics:   metrics.New(),
		Log:       log,
		RateLimit: limit,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithField("addr", cfg.Addr()).Info("Starting server")
		if err := app.Listen(cfg.Addr()); err != nil {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	<-quit
	log.Info("Shutting down server...")
	shutdown(app, store, mqClient, redisStorage, log)
	log.Info("Server gracefully stopped")
}

// shutdown stops accepting requests and then releases the store, broker and
// Redis connections in that order.
func shutdown(app *fiber.App, store *repositories.Store, mq *rabbitmq.Client, rs *redisstore.Storage, log logrus.FieldLogger) {
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.WithError(err).Error("Error during Fiber shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		log.WithError(err).Error("Error closing database")
	}
	if mq != nil {
		if err := mq.Close(); err != nil {
			log.WithError(err).Error("Error closing RabbitMQ client")
		}
	}
	if rs != nil {
		if err := rs.Close(); err != nil {
			log.WithError(err).Error("Error closing Redis")
		}
	}
}
