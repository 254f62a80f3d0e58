package requestctx

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	loggerContextKey    contextKey = "github.com/supreme-labs/storefront/internal/platform/requestctx/logger"
	clientKeyContextKey contextKey = "github.com/supreme-labs/storefront/internal/platform/requestctx/clientKey"
	localeContextKey    contextKey = "github.com/supreme-labs/storefront/internal/platform/requestctx/locale"
)

var noopLogger = zap.NewNop()

// WithLogger stores the logger in context for downstream consumers.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = noopLogger
	}
	return context.WithValue(ctx, loggerContextKey, logger)
}

// Logger retrieves the zap logger from context or returns a no-op logger.
func Logger(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return noopLogger
	}
	if logger, ok := ctx.Value(loggerContextKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return noopLogger
}

// NoopLogger exposes the shared noop logger instance used across the package.
func NoopLogger() *zap.Logger { return noopLogger }

// WithClientKey stores the per-client storage key on the context.
func WithClientKey(ctx context.Context, key string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, clientKeyContextKey, key)
}

// ClientKey retrieves the per-client storage key when present.
func ClientKey(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	key, ok := ctx.Value(clientKeyContextKey).(string)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// WithLocale stores the resolved locale on the context.
func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeContextKey, locale)
}

// Locale retrieves the resolved locale from context when available.
func Locale(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	locale, ok := ctx.Value(localeContextKey).(string)
	if !ok || locale == "" {
		return "", false
	}
	return locale, true
}
