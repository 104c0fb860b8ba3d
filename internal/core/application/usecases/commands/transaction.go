package commands

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTxTimeout bounds every engine transaction when no timeout is configured.
const DefaultTxTimeout = 10 * time.Second

func withTxTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", component)
}
