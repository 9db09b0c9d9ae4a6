package async

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/utils/errutil"
	"github.com/m-mizutani/releasepage/pkg/utils/logging"
)

// Dispatch runs handler in its own goroutine, detached from the caller's
// cancellation. The logger and Sentry hub of ctx are carried over. Errors
// and panics are reported through errutil.Handle. The returned channel is
// closed once handler has finished.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) <-chan struct{} {
	newCtx := detach(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				logging.From(newCtx).Error("panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()))
				errutil.Handle(newCtx, "async handler panicked", goerr.New(fmt.Sprint(r)))
			}
		}()

		if err := handler(newCtx); err != nil {
			errutil.Handle(newCtx, "error in async handler", err)
		}
	}()

	return done
}

// detach builds a background context that keeps the logger and Sentry hub
func detach(ctx context.Context) context.Context {
	newCtx := logging.With(context.Background(), logging.From(ctx))
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		newCtx = sentry.SetHubOnContext(newCtx, hub.Clone())
	}
	return newCtx
}
