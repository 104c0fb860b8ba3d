package notify

import (
	"context"
	"log/slog"

	"parcellocker/internal/core/ports"
)

// LogNotifier records what would have been sent and reports it as not
// delivered, so notification_sent stays false.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

func (n *LogNotifier) Send(
	ctx context.Context,
	contact string,
	kind ports.NotificationKind,
	payload ports.NotificationPayload,
) (ports.NotificationResult, error) {
	n.logger.InfoContext(ctx, "notification skipped, no mail server configured",
		"kind", string(kind),
		"has_contact", contact != "",
		"locker_number", payload.LockerNumber,
		"flat", payload.FlatNumber,
	)
	return ports.NotificationResult{Delivered: false}, nil
}
