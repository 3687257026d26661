package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/cartengine/pkg/app"
	"github.com/ghuser/cartengine/pkg/cache"
	"github.com/ghuser/cartengine/pkg/config"
	"github.com/ghuser/cartengine/pkg/events"
	"github.com/ghuser/cartengine/pkg/httpx"
	"github.com/ghuser/cartengine/pkg/logger"
	"github.com/ghuser/cartengine/pkg/telemetry"
	cartApi "github.com/ghuser/cartengine/services/cart/application/api"
	appsvcs "github.com/ghuser/cartengine/services/cart/application/services"
	cartevents "github.com/ghuser/cartengine/services/cart/domain/events"
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

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	// Redis is optional: without it price lookups skip the cache and go
	// straight to the upstream API on every request.
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("redis unavailable, price caching disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close() //nolint:errcheck
		log.Info("redis connected")
	}

	eventBus := events.NewEventBus(log)
	defer eventBus.Close() //nolint:errcheck

	appConfig := &app.Application{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	svcs, err := appsvcs.New(appConfig)
	if err != nil {
		log.Error("failed to wire cart services", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}

	// Audit subscribers must be registered before the first request: the
	// in-process bus drops messages published to topics with no subscribers.
	if err := subscribeAuditLog(ctx, eventBus, log); err != nil {
		log.Error("failed to subscribe audit log", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	var redisCheck httpx.HealthChecker
	if redisClient != nil {
		redisCheck = redisClient
	}
	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		Redis:    redisCheck,
		EventBus: eventBus,
		PriceAPI: svcs.PriceAPI,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Route("/api", func(r chi.Router) {
		cartApi.CartRoutes(r, svcs)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// subscribeAuditLog wires a logging consumer onto both cart topics so every
// ledger mutation leaves a structured audit trail.
func subscribeAuditLog(ctx context.Context, bus *events.EventBus, log logger.Logger) error {
	for _, topic := range []string{cartevents.TopicItemAdded, cartevents.TopicItemRemoved} {
		errCh, err := bus.Subscribe(ctx, topic, func(msgCtx context.Context, msg *message.Message) error {
			log.InfoContext(msgCtx, "cart event", "topic", topic, "payload", string(msg.Payload))
			return nil
		})
		if err != nil {
			return err
		}
		go func() {
			for err := range errCh {
				log.Error("audit subscriber error", "topic", topic, "error", err)
			}
		}()
	}
	return nil
}
