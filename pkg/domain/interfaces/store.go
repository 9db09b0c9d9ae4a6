package interfaces

import "context"

// KVStore is a string key-value store. The session-scoped release cache and
// the durable theme preference both use it.
type KVStore interface {
	// Get returns the value of key and whether it exists
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
}

// Publisher uploads a rendered document
type Publisher interface {
	Publish(ctx context.Context, name string, content []byte, contentType string) error
}
