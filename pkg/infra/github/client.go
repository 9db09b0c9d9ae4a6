package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v82/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/domain/interfaces"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/m-mizutani/releasepage/pkg/domain/types"
)

// AcceptHeader is the media type requested from the REST API
const AcceptHeader = "application/vnd.github+json"

type client struct {
	githubClient *github.Client
}

type config struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// Option configures the GitHub client
type Option func(*config)

// WithToken authenticates requests with a personal access token
func WithToken(token string) Option {
	return func(c *config) {
		c.token = token
	}
}

// WithBaseURL points the client at another API root, e.g. a test server
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *config) {
		c.httpClient = httpClient
	}
}

// NewClient creates a GitHub REST client for release lookups
func NewClient(opts ...Option) (interfaces.ReleaseClient, error) {
	cfg := &config{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	githubClient := github.NewClient(cfg.httpClient)
	if cfg.token != "" {
		githubClient = githubClient.WithAuthToken(cfg.token)
	}

	if cfg.baseURL != "" {
		base := cfg.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub API base URL", goerr.V("base_url", cfg.baseURL))
		}
		githubClient.BaseURL = u
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// LatestRelease fetches /repos/{owner}/{repo}/releases/latest
func (c *client) LatestRelease(ctx context.Context, owner, repo string) (*model.ReleaseInfo, error) {
	path := fmt.Sprintf("repos/%s/%s/releases/latest", url.PathEscape(owner), url.PathEscape(repo))

	req, err := c.githubClient.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release request", goerr.V("path", path))
	}
	req.Header.Set("Accept", AcceptHeader)

	var release github.RepositoryRelease
	resp, err := c.githubClient.Do(ctx, req, &release)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return nil, goerr.Wrap(errors.Join(types.ErrNetworkOrAPI, err), "GitHub API request failed",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.V("status", status),
		)
	}

	return toReleaseInfo(&release), nil
}

func toReleaseInfo(r *github.RepositoryRelease) *model.ReleaseInfo {
	info := &model.ReleaseInfo{
		TagName: r.GetTagName(),
		Body:    r.GetBody(),
		HTMLURL: r.GetHTMLURL(),
		Assets:  make([]model.Asset, 0, len(r.Assets)),
	}
	if r.PublishedAt != nil {
		info.PublishedAt = r.PublishedAt.Format(time.RFC3339)
	}
	for _, a := range r.Assets {
		info.Assets = append(info.Assets, model.Asset{
			Name:               a.GetName(),
			BrowserDownloadURL: a.GetBrowserDownloadURL(),
		})
	}
	return info
}
