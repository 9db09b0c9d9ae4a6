package model

import "time"

const (
	// ReleaseCacheKey is the session store key of the cached release
	ReleaseCacheKey = "ff_release_cache"

	// DefaultCacheTTL is how long a cached release may be served
	DefaultCacheTTL = 5 * time.Minute
)

// CacheEntry is the value stored under ReleaseCacheKey
type CacheEntry struct {
	Timestamp int64        `json:"ts"` // milliseconds since epoch
	Payload   *ReleaseInfo `json:"payload"`
}

// NewCacheEntry stamps payload with now
func NewCacheEntry(now time.Time, payload *ReleaseInfo) *CacheEntry {
	return &CacheEntry{
		Timestamp: now.UnixMilli(),
		Payload:   payload,
	}
}

// CacheState is the outcome of EvaluateCache
type CacheState int

const (
	CacheAbsent CacheState = iota
	CacheStale
	CacheFresh
)

func (s CacheState) String() string {
	switch s {
	case CacheFresh:
		return "fresh"
	case CacheStale:
		return "stale"
	default:
		return "absent"
	}
}

// EvaluateCache decides whether entry may be consumed at now. An entry is
// fresh only while now - ts < ttl, measured in milliseconds.
func EvaluateCache(now time.Time, entry *CacheEntry, ttl time.Duration) CacheState {
	if entry == nil || entry.Payload == nil {
		return CacheAbsent
	}
	if now.UnixMilli()-entry.Timestamp < ttl.Milliseconds() {
		return CacheFresh
	}
	return CacheStale
}
