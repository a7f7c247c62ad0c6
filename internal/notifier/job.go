package notifier

import (
	"context"
	"log/slog"
	"time"
)

// StartRetryJob dispatches pending notifications once on startup and then
// every interval until ctx is cancelled. The returned channel closes when the
// job has stopped.
func StartRetryJob(ctx context.Context, dispatcher *Dispatcher, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic occurred in notification retry job", "panic", r)
			}
		}()

		slog.Info("Notification retry job: Initial run starting")
		runDispatch(ctx, dispatcher)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("Notification retry job stopped")
				return
			case <-ticker.C:
				slog.Info("Notification retry job: Scheduled run starting")
				runDispatch(ctx, dispatcher)
			}
		}
	}()

	slog.Info("Notification retry job started successfully", "interval", interval)
	return done
}

func runDispatch(ctx context.Context, dispatcher *Dispatcher) {
	startTime := time.Now()

	summary, err := dispatcher.Dispatch(ctx)
	if err != nil {
		slog.Error("Notification retry job: Dispatch failed", "error", err)
		return
	}

	slog.Info("Notification retry job: Completed",
		"attempted", summary.Attempted,
		"sent", summary.Sent,
		"failed", len(summary.Failures),
		"duration", time.Since(startTime),
	)
}
