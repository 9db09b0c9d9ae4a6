package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/releasepage/pkg/domain/interfaces"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/m-mizutani/releasepage/pkg/utils/async"
	"github.com/m-mizutani/releasepage/pkg/utils/logging"
)

type webhookUseCase struct {
	releaseUC  interfaces.ReleaseUseCase
	cache      interfaces.KVStore
	repository string
	done       func(<-chan struct{})
}

// WebhookOption configures the webhook use case
type WebhookOption func(*webhookUseCase)

// WithSharedCache sets the process-wide release cache refreshed on new
// releases. Without it release events are only logged.
func WithSharedCache(cache interfaces.KVStore) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.cache = cache
	}
}

// WithRefreshObserver receives the completion channel of every refresh
func WithRefreshObserver(fn func(<-chan struct{})) WebhookOption {
	return func(uc *webhookUseCase) {
		uc.done = fn
	}
}

// NewWebhook creates a new instance of WebhookUseCase for events of repository (owner/repo)
func NewWebhook(releaseUC interfaces.ReleaseUseCase, repository string, opts ...WebhookOption) interfaces.WebhookUseCase {
	uc := &webhookUseCase{
		releaseUC:  releaseUC,
		repository: repository,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ProcessEvent refreshes the shared release cache when the configured
// repository publishes a release. The refresh runs asynchronously.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := logging.From(ctx)

	logger.Info("Processing webhook event",
		"id", event.ID,
		"type", event.Type,
		"action", event.Action,
		"repository", event.Repository,
		"sender", event.Sender,
	)

	if !event.IsReleaseEvent() {
		logger.Debug("Ignoring non-release event", "type", event.Type, "action", event.Action)
		return nil
	}

	if !strings.EqualFold(event.Repository, uc.repository) {
		logger.Warn("Release event for another repository",
			"repository", event.Repository,
			"expected", uc.repository,
		)
		return nil
	}

	if uc.cache == nil {
		logger.Info("Release published, session scoped caches expire on their own",
			"tag_name", event.Release.Version())
		return nil
	}

	done := async.Dispatch(ctx, func(ctx context.Context) error {
		info, err := uc.releaseUC.Refresh(ctx, uc.cache)
		if err != nil {
			return err
		}
		logging.From(ctx).Info("Refreshed release cache", "tag_name", info.TagName)
		return nil
	})
	if uc.done != nil {
		uc.done(done)
	}

	return nil
}
