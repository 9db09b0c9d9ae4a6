package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/domain/interfaces"
	"github.com/m-mizutani/releasepage/pkg/domain/types"
)

// ErrQuotaExceeded is returned by Set when a namespace would grow beyond
// its byte quota
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// DefaultQuota is the per-namespace limit in bytes, the usual browser
// session storage allowance
const DefaultQuota = 5 * 1024 * 1024

// Store holds independent key-value namespaces in memory, one per browser
// session plus an optional shared one. It is safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	quota      int
	maxSpaces  int
	namespaces map[string]*namespace
	order      []string
}

type namespace struct {
	values map[string]string
	size   int
}

// Option configures a Store
type Option func(*Store)

// WithQuota sets the byte limit of each namespace; 0 disables the limit
func WithQuota(bytes int) Option {
	return func(s *Store) {
		s.quota = bytes
	}
}

// WithMaxNamespaces bounds the number of namespaces kept; the oldest one is
// evicted first. 0 keeps all of them.
func WithMaxNamespaces(n int) Option {
	return func(s *Store) {
		s.maxSpaces = n
	}
}

// New creates an empty Store
func New(opts ...Option) *Store {
	s := &Store{
		quota:      DefaultQuota,
		maxSpaces:  10000,
		namespaces: make(map[string]*namespace),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Namespace returns a KVStore view scoped to id
func (s *Store) Namespace(id string) interfaces.KVStore {
	return &view{store: s, id: id}
}

// Len returns the number of namespaces
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.namespaces)
}

func (s *Store) get(id, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.namespaces[id]
	if !ok {
		return "", false
	}
	v, ok := ns.values[key]
	return v, ok
}

func (s *Store) set(id, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.namespaces[id]
	if !ok {
		ns = &namespace{values: make(map[string]string)}
	}

	size := ns.size + len(key) + len(value)
	if old, exists := ns.values[key]; exists {
		size -= len(key) + len(old)
	}
	if s.quota > 0 && size > s.quota {
		return goerr.Wrap(errors.Join(types.ErrStorageWrite, ErrQuotaExceeded), "failed to write session value",
			goerr.V("namespace", id),
			goerr.V("key", key),
			goerr.V("size", size),
			goerr.V("quota", s.quota),
		)
	}

	if !ok {
		s.namespaces[id] = ns
		s.order = append(s.order, id)
		s.evict()
	}
	ns.values[key] = value
	ns.size = size
	return nil
}

// evict drops the oldest namespaces beyond maxSpaces. Caller holds mu.
func (s *Store) evict() {
	if s.maxSpaces <= 0 {
		return
	}
	for len(s.order) > s.maxSpaces {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.namespaces, oldest)
	}
}

type view struct {
	store *Store
	id    string
}

func (v *view) Get(ctx context.Context, key string) (string, bool, error) {
	value, ok := v.store.get(v.id, key)
	return value, ok, nil
}

func (v *view) Set(ctx context.Context, key, value string) error {
	return v.store.set(v.id, key, value)
}
