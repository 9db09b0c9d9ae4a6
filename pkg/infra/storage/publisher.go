package storage

import (
	"context"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/utils/logging"
	"google.golang.org/api/option"
)

// Publisher uploads rendered pages to a Cloud Storage bucket
type Publisher struct {
	client       *storage.Client
	bucket       string
	prefix       string
	cacheControl string
}

// Option configures a Publisher
type Option func(*Publisher)

// WithPrefix places objects under prefix
func WithPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithCacheControl sets the Cache-Control metadata of uploaded objects
func WithCacheControl(v string) Option {
	return func(p *Publisher) {
		p.cacheControl = v
	}
}

// New creates a Publisher for bucket. clientOpts are passed to the storage
// client, e.g. option.WithCredentialsFile.
func New(ctx context.Context, bucket string, clientOpts []option.ClientOption, opts ...Option) (*Publisher, error) {
	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	p := &Publisher{
		client:       client,
		bucket:       bucket,
		cacheControl: "public, max-age=300",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Close releases the storage client
func (p *Publisher) Close() error {
	return p.client.Close()
}

// ObjectName returns the object path name is stored at
func (p *Publisher) ObjectName(name string) string {
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Publish writes content to gs://bucket/prefix/name
func (p *Publisher) Publish(ctx context.Context, name string, content []byte, contentType string) error {
	object := p.ObjectName(name)

	w := p.client.Bucket(p.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = p.cacheControl

	if _, err := w.Write(content); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object", goerr.V("bucket", p.bucket), goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize object", goerr.V("bucket", p.bucket), goerr.V("object", object))
	}

	logging.From(ctx).Info("Published page",
		"bucket", p.bucket,
		"object", object,
		"size_bytes", len(content),
	)
	return nil
}
