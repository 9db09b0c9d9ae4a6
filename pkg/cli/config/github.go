package config

import (
	"github.com/m-mizutani/releasepage/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/releasepage/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub configuration
type GitHub struct {
	Token         string
	APIBaseURL    string
	WebhookSecret string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token, raises the API rate limit",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELEASEPAGE_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-api-base-url",
			Usage:       "GitHub REST API base URL",
			Value:       "https://api.github.com/",
			Destination: &c.APIBaseURL,
			Sources:     cli.EnvVars("RELEASEPAGE_GITHUB_API_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret; the webhook endpoint is disabled when empty",
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("RELEASEPAGE_GITHUB_WEBHOOK_SECRET"),
		},
	}
}

// NewClient builds the release client
func (c *GitHub) NewClient() (interfaces.ReleaseClient, error) {
	opts := []githubinfra.Option{
		githubinfra.WithBaseURL(c.APIBaseURL),
	}
	if c.Token != "" {
		opts = append(opts, githubinfra.WithToken(c.Token))
	}
	return githubinfra.NewClient(opts...)
}
