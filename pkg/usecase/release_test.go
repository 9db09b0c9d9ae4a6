package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/m-mizutani/releasepage/pkg/domain/types"
	"github.com/m-mizutani/releasepage/pkg/usecase"
)

// MockReleaseClient is a mock implementation of ReleaseClient
type MockReleaseClient struct {
	latestReleaseFunc func(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error)
	calls             []MockCall
}

type MockCall struct {
	Owner string
	Repo  string
}

func (m *MockReleaseClient) LatestRelease(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error) {
	m.calls = append(m.calls, MockCall{Owner: owner, Repo: repo})
	if m.latestReleaseFunc != nil {
		return m.latestReleaseFunc(ctx, owner, repo)
	}
	return nil, errors.New("mock not configured")
}

// mockStore is an in-memory KVStore whose writes can be made to fail
type mockStore struct {
	values   map[string]string
	setErr   error
	getErr   error
	setCalls int
}

func newMockStore() *mockStore {
	return &mockStore{values: map[string]string{}}
}

func (s *mockStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *mockStore) Set(ctx context.Context, key, value string) error {
	s.setCalls++
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *mockStore) put(t *testing.T, entry *model.CacheEntry) {
	t.Helper()
	raw, err := json.Marshal(entry)
	gt.NoError(t, err)
	s.values[model.ReleaseCacheKey] = string(raw)
}

var testSite = model.Site{Owner: "owner", Repo: "repo"}

const testFallback = "https://github.com/owner/repo/releases"

func sampleRelease() *model.ReleaseInfo {
	return &model.ReleaseInfo{
		TagName:     "v1.4.0",
		Body:        "## Fixes\n- crash on start",
		PublishedAt: "2024-06-01T08:00:00Z",
		HTMLURL:     "https://github.com/owner/repo/releases/tag/v1.4.0",
		Assets: []model.Asset{
			{Name: "notes.txt", BrowserDownloadURL: "https://dl.test/notes.txt"},
			{Name: "app-release.apk", BrowserDownloadURL: "https://dl.test/app-release.apk"},
		},
	}
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestReleaseUseCase_Load_Success(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_717_228_800_000)

	client := &MockReleaseClient{
		latestReleaseFunc: func(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error) {
			return sampleRelease(), nil
		},
	}
	store := newMockStore()
	page := model.NewPage(model.DefaultElements...)

	uc := usecase.NewRelease(client, testSite, usecase.WithClock(fixedClock(now)))
	info := uc.Load(ctx, store, page)

	gt.Value(t, info).NotNil()
	gt.A(t, client.calls).Length(1)
	gt.Value(t, client.calls[0]).Equal(MockCall{Owner: "owner", Repo: "repo"})

	gt.Value(t, page.Text(model.ElemLatestVersion)).Equal("v1.4.0")
	gt.Value(t, page.Text(model.ElemLatestVersion2)).Equal("v1.4.0")
	gt.Value(t, page.Href(model.ElemDownloadButton)).Equal("https://dl.test/app-release.apk")
	gt.Value(t, page.Text(model.ElemDownloadButton)).Equal("Download on GitHub (v1.4.0)")
	gt.Value(t, page.Text(model.ElemMirrorButton)).Equal("⚡ High-speed download (v1.4.0)")
	gt.Value(t, page.Text(model.ElemChangelogTag)).Equal("v1.4.0")
	gt.Value(t, page.Text(model.ElemChangelogDate)).Equal("June 1, 2024")
	gt.Value(t, page.HTML(model.ElemChangelogBody)).Equal("<h2>Fixes</h2><ul><li>crash on start</li></ul>")

	// cache written with the current timestamp
	var entry model.CacheEntry
	gt.NoError(t, json.Unmarshal([]byte(store.values[model.ReleaseCacheKey]), &entry))
	gt.Value(t, entry.Timestamp).Equal(now.UnixMilli())
	gt.Value(t, entry.Payload.TagName).Equal("v1.4.0")
}

func TestReleaseUseCase_Load_FreshCacheSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_717_228_800_000)

	client := &MockReleaseClient{}
	store := newMockStore()
	store.put(t, model.NewCacheEntry(now.Add(-4*time.Minute), sampleRelease()))
	page := model.NewPage(model.DefaultElements...)

	uc := usecase.NewRelease(client, testSite, usecase.WithClock(fixedClock(now)))
	info := uc.Load(ctx, store, page)

	gt.Value(t, info).NotNil()
	gt.A(t, client.calls).Length(0)
	gt.Value(t, store.setCalls).Equal(0)
	gt.Value(t, page.Text(model.ElemLatestVersion)).Equal("v1.4.0")
}

func TestReleaseUseCase_Load_StaleCacheRefetches(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_717_228_800_000)

	stale := sampleRelease()
	stale.TagName = "v1.3.0"

	client := &MockReleaseClient{
		latestReleaseFunc: func(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error) {
			return sampleRelease(), nil
		},
	}
	store := newMockStore()
	store.put(t, model.NewCacheEntry(now.Add(-6*time.Minute), stale))
	page := model.NewPage(model.DefaultElements...)

	uc := usecase.NewRelease(client, testSite, usecase.WithClock(fixedClock(now)))
	info := uc.Load(ctx, store, page)

	gt.Value(t, info.TagName).Equal("v1.4.0")
	gt.A(t, client.calls).Length(1)

	var entry model.CacheEntry
	gt.NoError(t, json.Unmarshal([]byte(store.values[model.ReleaseCacheKey]), &entry))
	gt.Value(t, entry.Timestamp).Equal(now.UnixMilli())
	gt.Value(t, entry.Payload.TagName).Equal("v1.4.0")
}

func TestReleaseUseCase_Load_CorruptCacheRefetches(t *testing.T) {
	client := &MockReleaseClient{
		latestReleaseFunc: func(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error) {
			return sampleRelease(), nil
		},
	}
	store := newMockStore()
	store.values[model.ReleaseCacheKey] = "{not json"

	uc := usecase.NewRelease(client, testSite)
	info := uc.Load(context.Background(), store, model.NewPage(model.DefaultElements...))

	gt.Value(t, info).NotNil()
	gt.A(t, client.calls).Length(1)
}

func TestReleaseUseCase_Load_APIError(t *testing.T) {
	client := &MockReleaseClient{
		latestReleaseFunc: func(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error) {
			return nil, errors.Join(types.ErrNetworkOrAPI, errors.New("403 rate limit exceeded"))
		},
	}
	store := newMockStore()
	page := model.NewPage(model.DefaultElements...)

	uc := usecase.NewRelease(client, testSite)
	info := uc.Load(context.Background(), store, page)

	gt.Value(t, info).Nil()
	gt.Value(t, page.Href(model.ElemDownloadButton)).Equal(testFallback)
	gt.Value(t, page.Text(model.ElemLatestVersion)).Equal("Request failed")
	gt.Value(t, page.Text(model.ElemLatestVersion2)).Equal("Request failed")
	gt.Value(t, page.Text(model.ElemChangelogTag)).Equal("—")
	gt.String(t, page.HTML(model.ElemChangelogBody)).Contains(`href="` + testFallback + `"`)
	gt.Value(t, store.setCalls).Equal(0)
}

func TestReleaseUseCase_Load_StorageWriteErrorIgnored(t *testing.T) {
	client := &MockReleaseClient{
		latestReleaseFunc: func(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error) {
			return sampleRelease(), nil
		},
	}
	store := newMockStore()
	store.setErr = types.ErrStorageWrite
	page := model.NewPage(model.DefaultElements...)

	uc := usecase.NewRelease(client, testSite)
	info := uc.Load(context.Background(), store, page)

	gt.Value(t, info).NotNil()
	gt.Value(t, store.setCalls).Equal(1)
	gt.Value(t, page.Href(model.ElemDownloadButton)).Equal("https://dl.test/app-release.apk")
}

func TestReleaseUseCase_Load_StorageReadErrorFetches(t *testing.T) {
	client := &MockReleaseClient{
		latestReleaseFunc: func(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error) {
			return sampleRelease(), nil
		},
	}
	store := newMockStore()
	store.getErr = errors.New("unavailable")

	uc := usecase.NewRelease(client, testSite)
	info := uc.Load(context.Background(), store, model.NewPage(model.DefaultElements...))

	gt.Value(t, info).NotNil()
	gt.A(t, client.calls).Length(1)
}

func TestReleaseUseCase_Load_DownloadTargetFallbacks(t *testing.T) {
	tests := []struct {
		name      string
		release   *model.ReleaseInfo
		wantHref  string
		wantLabel string
	}{
		{
			name: "no apk asset targets release page",
			release: &model.ReleaseInfo{
				TagName: "v2.0.0",
				HTMLURL: "https://github.com/owner/repo/releases/tag/v2.0.0",
				Assets:  []model.Asset{{Name: "app.dmg", BrowserDownloadURL: "https://dl.test/app.dmg"}},
			},
			wantHref:  "https://github.com/owner/repo/releases/tag/v2.0.0",
			wantLabel: "Go to Releases (v2.0.0)",
		},
		{
			name:      "no apk and no release page targets static fallback",
			release:   &model.ReleaseInfo{TagName: "v2.0.0"},
			wantHref:  testFallback,
			wantLabel: "Go to Releases (v2.0.0)",
		},
		{
			name:      "missing tag uses Latest",
			release:   &model.ReleaseInfo{},
			wantHref:  testFallback,
			wantLabel: "Go to Releases (Latest)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockReleaseClient{
				latestReleaseFunc: func(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error) {
					return tt.release, nil
				},
			}
			page := model.NewPage(model.DefaultElements...)

			uc := usecase.NewRelease(client, testSite)
			uc.Load(context.Background(), newMockStore(), page)

			gt.Value(t, page.Href(model.ElemDownloadButton)).Equal(tt.wantHref)
			gt.Value(t, page.Text(model.ElemDownloadButton)).Equal(tt.wantLabel)
		})
	}
}

func TestReleaseUseCase_Refresh(t *testing.T) {
	ctx := context.Background()
	now := time.UnixMilli(1_717_228_800_000)

	client := &MockReleaseClient{
		latestReleaseFunc: func(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error) {
			return sampleRelease(), nil
		},
	}
	store := newMockStore()
	store.put(t, model.NewCacheEntry(now, &model.ReleaseInfo{TagName: "v0.9.0"}))

	uc := usecase.NewRelease(client, testSite, usecase.WithClock(fixedClock(now.Add(time.Second))))
	info, err := uc.Refresh(ctx, store)
	gt.NoError(t, err)
	gt.Value(t, info.TagName).Equal("v1.4.0")
	gt.A(t, client.calls).Length(1)

	var entry model.CacheEntry
	gt.NoError(t, json.Unmarshal([]byte(store.values[model.ReleaseCacheKey]), &entry))
	gt.Value(t, entry.Payload.TagName).Equal("v1.4.0")

	t.Run("error is returned", func(t *testing.T) {
		failing := &MockReleaseClient{}
		_, err := usecase.NewRelease(failing, testSite).Refresh(ctx, newMockStore())
		gt.Error(t, err)
	})
}
