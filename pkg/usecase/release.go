package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/domain/interfaces"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/m-mizutani/releasepage/pkg/domain/types"
	"github.com/m-mizutani/releasepage/pkg/utils/errutil"
	"github.com/m-mizutani/releasepage/pkg/utils/logging"
)

type releaseLoader struct {
	client interfaces.ReleaseClient
	site   model.Site
	ttl    time.Duration
	now    func() time.Time
}

// ReleaseOption configures the release loader
type ReleaseOption func(*releaseLoader)

// WithClock replaces time.Now
func WithClock(now func() time.Time) ReleaseOption {
	return func(uc *releaseLoader) {
		uc.now = now
	}
}

// WithCacheTTL overrides model.DefaultCacheTTL
func WithCacheTTL(ttl time.Duration) ReleaseOption {
	return func(uc *releaseLoader) {
		uc.ttl = ttl
	}
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(client interfaces.ReleaseClient, site model.Site, opts ...ReleaseOption) interfaces.ReleaseUseCase {
	uc := &releaseLoader{
		client: client,
		site:   site.WithDefaults(),
		ttl:    model.DefaultCacheTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Load resolves the latest release into ui. The fallback link and failure
// label are written first, so a failure anywhere leaves them visible. Load
// never returns an error; failures are reported and nil is returned.
func (uc *releaseLoader) Load(ctx context.Context, session interfaces.KVStore, ui interfaces.UI) *model.ReleaseInfo {
	labels := uc.site.Labels
	fallback := uc.site.FallbackURL()

	ui.SetHref(model.ElemDownloadButton, fallback)
	ui.SetText(model.ElemLatestVersion, labels.RequestFailed)
	ui.SetText(model.ElemLatestVersion2, labels.RequestFailed)

	info, err := uc.resolve(ctx, session)
	if err != nil {
		errutil.Handle(ctx, "Failed to load latest release", err)
		ui.SetHTML(model.ElemChangelogBody, changelogUnavailableHTML(labels.ChangelogUnavailable, fallback))
		ui.SetText(model.ElemChangelogTag, labels.EmptyTag)
		return nil
	}

	version := info.Version()
	ui.SetText(model.ElemLatestVersion, version)
	ui.SetText(model.ElemLatestVersion2, version)

	target, isAsset := info.DownloadTarget(uc.site.AssetExt, fallback)
	ui.SetHref(model.ElemDownloadButton, target)
	if isAsset {
		ui.SetText(model.ElemDownloadButton, fmt.Sprintf(labels.AssetButton, version))
	} else {
		ui.SetText(model.ElemDownloadButton, fmt.Sprintf(labels.ReleasesButton, version))
	}
	ui.SetText(model.ElemMirrorButton, fmt.Sprintf(labels.MirrorButton, version))

	RenderChangelog(ui, info, uc.site)
	return info
}

// Refresh fetches the latest release regardless of the cache and stores it
func (uc *releaseLoader) Refresh(ctx context.Context, session interfaces.KVStore) (*model.ReleaseInfo, error) {
	info, err := uc.fetch(ctx)
	if err != nil {
		return nil, err
	}
	uc.store(ctx, session, info)
	return info, nil
}

// resolve returns a fresh cached release, or fetches and caches one
func (uc *releaseLoader) resolve(ctx context.Context, session interfaces.KVStore) (*model.ReleaseInfo, error) {
	logger := logging.From(ctx)

	entry := uc.lookup(ctx, session)
	state := model.EvaluateCache(uc.now(), entry, uc.ttl)
	logger.Debug("Release cache evaluated", "state", state.String())

	if state == model.CacheFresh {
		return entry.Payload, nil
	}

	return uc.Refresh(ctx, session)
}

func (uc *releaseLoader) fetch(ctx context.Context) (*model.ReleaseInfo, error) {
	info, err := uc.client.LatestRelease(ctx, uc.site.Owner, uc.site.Repo)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch latest release",
			goerr.V("repository", uc.site.FullName()))
	}
	if info == nil {
		return nil, goerr.Wrap(types.ErrNetworkOrAPI, "empty release response",
			goerr.V("repository", uc.site.FullName()))
	}

	logging.From(ctx).Info("Fetched latest release",
		"repository", uc.site.FullName(),
		"tag_name", info.TagName,
		"asset_count", len(info.Assets),
	)
	return info, nil
}

// lookup reads the cache entry. Missing, unreadable and undecodable values
// all count as absent.
func (uc *releaseLoader) lookup(ctx context.Context, session interfaces.KVStore) *model.CacheEntry {
	if session == nil {
		return nil
	}
	logger := logging.From(ctx)

	raw, ok, err := session.Get(ctx, model.ReleaseCacheKey)
	if err != nil {
		logger.Debug("Failed to read release cache", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var entry model.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		logger.Debug("Discarding undecodable release cache", "error", err)
		return nil
	}
	return &entry
}

// store writes the cache entry. Failures are ignored.
func (uc *releaseLoader) store(ctx context.Context, session interfaces.KVStore, info *model.ReleaseInfo) {
	if session == nil {
		return
	}

	raw, err := json.Marshal(model.NewCacheEntry(uc.now(), info))
	if err != nil {
		logging.From(ctx).Debug("Failed to encode release cache", "error", err)
		return
	}
	if err := session.Set(ctx, model.ReleaseCacheKey, string(raw)); err != nil {
		logging.From(ctx).Debug("Failed to write release cache", "error", err)
	}
}
