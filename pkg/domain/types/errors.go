package types

import "errors"

var (
	// ErrNetworkOrAPI covers transport failures, non-2xx responses and undecodable release payloads
	ErrNetworkOrAPI = errors.New("network or API error")

	// ErrStorageWrite is returned when a key-value store rejects a write
	ErrStorageWrite = errors.New("storage write error")
)
