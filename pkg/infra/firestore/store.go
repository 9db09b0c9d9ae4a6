package firestore

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/domain/interfaces"
	"github.com/m-mizutani/releasepage/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Client stores durable visitor preferences in Firestore. Each visitor is a
// document in the configured collection, each key a field of it.
type Client struct {
	client     *firestore.Client
	collection string
}

// preference is the document layout
type preference struct {
	Values    map[string]string `firestore:"values"`
	UpdatedAt time.Time         `firestore:"updated_at"`
}

// New connects to the Firestore database of projectID
func New(ctx context.Context, projectID, databaseID, collection string) (*Client, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID),
		)
	}

	return &Client{
		client:     client,
		collection: collection,
	}, nil
}

// Close releases the underlying connection
func (c *Client) Close() error {
	return c.client.Close()
}

// Visitor returns a KVStore backed by the document of visitorID
func (c *Client) Visitor(visitorID string) interfaces.KVStore {
	return &visitorStore{
		doc: c.client.Collection(c.collection).Doc(visitorID),
	}
}

type visitorStore struct {
	doc *firestore.DocumentRef
}

func (s *visitorStore) Get(ctx context.Context, key string) (string, bool, error) {
	snap, err := s.doc.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", false, nil
		}
		return "", false, goerr.Wrap(err, "failed to get preference document", goerr.V("doc", s.doc.Path))
	}

	var pref preference
	if err := snap.DataTo(&pref); err != nil {
		return "", false, goerr.Wrap(err, "failed to decode preference document", goerr.V("doc", s.doc.Path))
	}

	v, ok := pref.Values[key]
	return v, ok, nil
}

func (s *visitorStore) Set(ctx context.Context, key, value string) error {
	_, err := s.doc.Set(ctx, map[string]any{
		"values":     map[string]any{key: value},
		"updated_at": time.Now().UTC(),
	}, firestore.MergeAll)
	if err != nil {
		return goerr.Wrap(errors.Join(types.ErrStorageWrite, err), "failed to set preference", goerr.V("doc", s.doc.Path), goerr.V("key", key))
	}
	return nil
}
