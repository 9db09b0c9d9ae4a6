package errutil

import (
	"context"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/releasepage/pkg/utils/logging"
)

// Handle reports a recovered error: it is logged as a warning and, when a
// Sentry client has been initialised, captured as an event. It never panics.
func Handle(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}

	logging.From(ctx).Warn(msg, "error", err)

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("message", msg)
		hub.CaptureException(err)
	})
}
