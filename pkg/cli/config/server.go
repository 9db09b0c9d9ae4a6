package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	CacheScopeSession = "session"
	CacheScopeShared  = "shared"
)

// Server holds server configuration
type Server struct {
	Addr       string
	CacheScope string
	WarmUp     bool
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("RELEASEPAGE_ADDR"),
		},
		&cli.StringFlag{
			Name:        "cache-scope",
			Usage:       "Release cache scope: session (per browser session) or shared",
			Value:       CacheScopeSession,
			Destination: &c.CacheScope,
			Sources:     cli.EnvVars("RELEASEPAGE_CACHE_SCOPE"),
		},
		&cli.BoolFlag{
			Name:        "warm-up",
			Usage:       "Fetch the latest release at startup (shared cache scope only)",
			Destination: &c.WarmUp,
			Sources:     cli.EnvVars("RELEASEPAGE_WARM_UP"),
		},
	}
}

// Validate checks the cache scope
func (c *Server) Validate() error {
	switch c.CacheScope {
	case CacheScopeSession, CacheScopeShared:
		return nil
	default:
		return goerr.New("invalid cache scope", goerr.V("cache_scope", c.CacheScope))
	}
}

// Shared reports whether the release cache is process wide
func (c *Server) Shared() bool {
	return c.CacheScope == CacheScopeShared
}
