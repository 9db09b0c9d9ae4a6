package interfaces

import (
	"context"

	"github.com/m-mizutani/releasepage/pkg/domain/model"
)

// ReleaseClient fetches release metadata from GitHub
type ReleaseClient interface {
	// LatestRelease returns the latest published release of owner/repo.
	// Any non-2xx response is an error.
	LatestRelease(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error)
}
