package app

import (
	"github.com/ghuser/cartengine/pkg/cache"
	"github.com/ghuser/cartengine/pkg/config"
	"github.com/ghuser/cartengine/pkg/events"
	"github.com/ghuser/cartengine/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to the service route registrars during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context
// methods and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "adding product", "product", name)
//	app.Logger.ErrorContext(ctx, "price lookup failed", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config   *config.Config
	Logger   logger.Logger
	EventBus *events.EventBus
	Redis    *cache.RedisClient // nil when Redis is unavailable; price caching is disabled
}
