package interfaces

import (
	"context"

	"github.com/m-mizutani/releasepage/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// ReleaseUseCase resolves the latest release into the page
type ReleaseUseCase interface {
	// Load fills ui with the latest release and returns it, or returns nil
	// after leaving the fallback content in place
	Load(ctx context.Context, session KVStore, ui UI) *model.ReleaseInfo

	// Refresh fetches the latest release and overwrites the cached entry
	Refresh(ctx context.Context, session KVStore) (*model.ReleaseInfo, error)
}
