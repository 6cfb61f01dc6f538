package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/pkg/app"
	"github.com/ghuser/sweetshop/pkg/cache"
	"github.com/ghuser/sweetshop/pkg/config"
	"github.com/ghuser/sweetshop/pkg/database"
	"github.com/ghuser/sweetshop/pkg/events"
	"github.com/ghuser/sweetshop/pkg/logger"
	"github.com/ghuser/sweetshop/pkg/telemetry"
	"github.com/ghuser/sweetshop/pkg/workflows"
	sweetappsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
	sweetEvents "github.com/ghuser/sweetshop/services/sweet/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	// Temporal is optional for local development; the replenishment workflow
	// is skipped when the server is unreachable.
	temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
	if err != nil {
		log.Warn("temporal unavailable, replenishment workflows disabled", "error", err)
	} else {
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient

		sweetSvcs := sweetappsvcs.New(appConfig)
		restock := func(ctx context.Context, sweetID uuid.UUID, quantity int) error {
			_, err := sweetSvcs.Sweet.Restock(ctx, sweetID, quantity)
			return err
		}
		w := workflows.NewReplenishWorker(temporalClient, restock)
		if err := w.Start(); err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
		log.Info("temporal worker started", "task_queue", workflows.ReplenishTaskQueue)
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := map[string]func(context.Context, *message.Message) error{
		sweetEvents.TopicSweetCreated: handleSweetCreated(a),
		sweetEvents.TopicStockChanged: handleStockChanged(a),
	}

	registered := make([]string, 0, len(topics))
	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}
		registered = append(registered, topic)

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", registered)
	return nil
}

// handleSweetCreated returns a handler for sweet.created events.
// Handlers must be idempotent; EventBus retries up to 3x on failure.
// Warms the Redis read-model cache so subsequent GetByID calls are served from cache.
func handleSweetCreated(a *app.Application) func(context.Context, *message.Message) error {
	sweetCache := cache.NewSweetCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt sweetEvents.SweetCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := sweetCache.Set(ctx, &cache.CachedSweet{
			ID:        evt.SweetID,
			Name:      evt.Name,
			Category:  evt.Category,
			Price:     evt.Price,
			Quantity:  evt.Quantity,
			CreatedAt: evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for sweet.created",
				"sweet_id", evt.SweetID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed", "sweet_id", evt.SweetID)
		}

		return nil
	}
}

// handleStockChanged returns a handler for sweet.stock_changed events.
// Refreshes the cached quantity and, when a purchase empties the shelf,
// starts the replenishment workflow.
func handleStockChanged(a *app.Application) func(context.Context, *message.Message) error {
	sweetCache := cache.NewSweetCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt sweetEvents.StockChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := sweetCache.SetQuantity(ctx, evt.SweetID, evt.Quantity); err != nil {
			a.Logger.WarnContext(ctx, "cache quantity refresh failed",
				"sweet_id", evt.SweetID, "error", err)
		}

		if evt.Quantity == 0 && evt.Reason == sweetEvents.ReasonPurchase && a.TemporalClient != nil {
			if err := a.TemporalClient.StartReplenishment(ctx, workflows.ReplenishInput{
				SweetID:  evt.SweetID,
				Quantity: replenishBatchSize,
			}); err != nil {
				// Duplicate workflow IDs are expected when several purchases
				// drain the same sweet; Temporal rejects the extras.
				a.Logger.InfoContext(ctx, "replenishment not started",
					"sweet_id", evt.SweetID, "error", err)
			}
		}

		return nil
	}
}

// replenishBatchSize is how many units the automatic replenishment restocks
// when a sweet sells out.
const replenishBatchSize = 20
