package app

import (
	"context"
	"fmt"

	appmiddleware "github.com/mayabazar/booking-api/internal/middleware"
)

// background runs fn on its own goroutine with a context that outlives the
// request but keeps its values, so the request logger and trace still apply.
// Panics and errors are logged and never reach the client.
func (app *Application) background(ctx context.Context, task string, fn func(ctx context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	logger := appmiddleware.LoggerFromContext(ctx, app.logger).With("task", task)

	go func() {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorContext(ctx, "panic in background task", "panic", fmt.Sprint(err))
			}
		}()

		if err := fn(ctx); err != nil {
			logger.ErrorContext(ctx, "background task failed", "error", err)
			return
		}

		logger.InfoContext(ctx, "background task completed")
	}()
}
