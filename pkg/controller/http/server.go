package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/releasepage/pkg/domain/interfaces"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/m-mizutani/releasepage/pkg/usecase"
)

// SessionStores hands out key-value namespaces by id
type SessionStores interface {
	Namespace(id string) interfaces.KVStore
}

// config holds internal HTTP server configuration
type config struct {
	addr          string
	webhookSecret string
	webhookUC     interfaces.WebhookUseCase
	sharedCache   bool
	visitorPrefs  func(visitorID string) interfaces.KVStore
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithWebhook mounts the GitHub webhook endpoint, verified with secret
func WithWebhook(secret string, webhookUC interfaces.WebhookUseCase) Option {
	return func(c *config) {
		c.webhookSecret = secret
		c.webhookUC = webhookUC
	}
}

// WithSharedCache makes every visitor use the shared release cache
// namespace instead of one per browser session
func WithSharedCache() Option {
	return func(c *config) {
		c.sharedCache = true
	}
}

// WithVisitorPreferences stores theme preferences server side, keyed by a
// persistent visitor cookie, instead of in a cookie of their own
func WithVisitorPreferences(fn func(visitorID string) interfaces.KVStore) Option {
	return func(c *config) {
		c.visitorPrefs = fn
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	site model.Site,
	releaseUC interfaces.ReleaseUseCase,
	sessions SessionStores,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", healthHandler(site))

	pages := &PageHandler{
		site:      site.WithDefaults(),
		releaseUC: releaseUC,
		themeUC:   usecase.NewTheme(),
		sessions:  sessions,
		cfg:       cfg,
	}
	router.Get("/", pages.Index)
	router.Get("/api/release", pages.Release)
	router.Post("/theme", pages.ToggleTheme)

	// Webhook endpoint
	if cfg.webhookSecret != "" && cfg.webhookUC != nil {
		webhookHandler := NewWebhookHandler(cfg.webhookSecret, cfg.webhookUC)
		router.Post("/hooks/github", webhookHandler.Handle)
	}

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
