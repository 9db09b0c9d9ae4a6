package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/infra/storage"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// Storage holds the Cloud Storage publisher configuration
type Storage struct {
	Bucket          string
	Prefix          string
	CredentialsFile string
	CacheControl    string
}

// Flags returns CLI flags for Cloud Storage configuration
func (c *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gcs-bucket",
			Usage:       "Publish the rendered page to this Cloud Storage bucket",
			Destination: &c.Bucket,
			Sources:     cli.EnvVars("RELEASEPAGE_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "gcs-prefix",
			Usage:       "Object name prefix",
			Destination: &c.Prefix,
			Sources:     cli.EnvVars("RELEASEPAGE_GCS_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "gcs-credentials",
			Usage:       "Service account JSON file; application default credentials when empty",
			Destination: &c.CredentialsFile,
			Sources:     cli.EnvVars("RELEASEPAGE_GCS_CREDENTIALS"),
		},
		&cli.StringFlag{
			Name:        "gcs-cache-control",
			Usage:       "Cache-Control metadata of the published object",
			Value:       "public, max-age=300",
			Destination: &c.CacheControl,
			Sources:     cli.EnvVars("RELEASEPAGE_GCS_CACHE_CONTROL"),
		},
	}
}

// Enabled reports whether a bucket is configured
func (c *Storage) Enabled() bool {
	return c.Bucket != ""
}

// NewPublisher connects to Cloud Storage
func (c *Storage) NewPublisher(ctx context.Context) (*storage.Publisher, error) {
	if !c.Enabled() {
		return nil, goerr.New("cloud storage bucket is not set")
	}

	var clientOpts []option.ClientOption
	if c.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(c.CredentialsFile))
	}

	return storage.New(ctx, c.Bucket, clientOpts,
		storage.WithPrefix(c.Prefix),
		storage.WithCacheControl(c.CacheControl),
	)
}
