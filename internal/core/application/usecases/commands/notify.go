package commands

import (
	"context"
	"fmt"
	"time"

	"parcellocker/internal/core/ports"
)

// MaxNotifyBudget caps a single notifier call.
const MaxNotifyBudget = 5 * time.Second

// notifyContext detaches the notifier from ctx cancellation and bounds it by
// half of the time ctx has left, at most MaxNotifyBudget. Inside a
// transaction the other half stays available for the commit.
func notifyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	budget := MaxNotifyBudget
	if deadline, ok := ctx.Deadline(); ok {
		if half := time.Until(deadline) / 2; half < budget {
			budget = half
		}
	}
	return context.WithTimeout(context.WithoutCancel(ctx), budget)
}

// send returns when the notifier answers or its budget runs out, whichever
// comes first. A notifier that ignores its context keeps running in the
// background; its late result is dropped.
func send(
	ctx context.Context,
	notifier ports.Notifier,
	contact string,
	kind ports.NotificationKind,
	payload ports.NotificationPayload,
) (ports.NotificationResult, error) {
	notifyCtx, cancel := notifyContext(ctx)
	defer cancel()

	type outcome struct {
		res ports.NotificationResult
		err error
	}

	done := make(chan outcome, 1)
	go func() {
		res, err := notifier.Send(notifyCtx, contact, kind, payload)
		done <- outcome{res: res, err: err}
	}()

	select {
	case o := <-done:
		return o.res, o.err
	case <-notifyCtx.Done():
		return ports.NotificationResult{}, fmt.Errorf("%s notification: %w", kind, notifyCtx.Err())
	}
}
