package http_test

import (
	"context"
	"errors"

	"github.com/m-mizutani/releasepage/pkg/domain/model"
)

// stubReleaseClient serves a fixed release, or an error when err is set
type stubReleaseClient struct {
	release *model.ReleaseInfo
	err     error
	calls   int
}

func (c *stubReleaseClient) LatestRelease(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	if c.release == nil {
		return nil, errors.New("no release configured")
	}
	copied := *c.release
	return &copied, nil
}

var testSite = model.Site{Title: "Rocket", Owner: "owner", Repo: "repo"}

func sampleRelease() *model.ReleaseInfo {
	return &model.ReleaseInfo{
		TagName:     "v1.4.0",
		Body:        "## Fixes\n- crash on start",
		PublishedAt: "2024-06-01T08:00:00Z",
		HTMLURL:     "https://github.com/owner/repo/releases/tag/v1.4.0",
		Assets: []model.Asset{
			{Name: "app-release.apk", BrowserDownloadURL: "https://dl.test/app-release.apk"},
		},
	}
}
