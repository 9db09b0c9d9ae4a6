package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Site holds the landing page content configuration
type Site struct {
	File      string
	Owner     string
	Repo      string
	MirrorURL string
}

// Flags returns CLI flags for site configuration
func (c *Site) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "site-config",
			Aliases:     []string{"c"},
			Usage:       "Path to the site TOML file",
			Destination: &c.File,
			Sources:     cli.EnvVars("RELEASEPAGE_SITE_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Repository owner, overrides the site file",
			Destination: &c.Owner,
			Sources:     cli.EnvVars("RELEASEPAGE_OWNER"),
		},
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Repository name, overrides the site file",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("RELEASEPAGE_REPO"),
		},
		&cli.StringFlag{
			Name:        "mirror-url",
			Usage:       "High-speed download mirror, overrides the site file",
			Destination: &c.MirrorURL,
			Sources:     cli.EnvVars("RELEASEPAGE_MIRROR_URL"),
		},
	}
}

// Load reads the site file, applies flag overrides and fills defaults
func (c *Site) Load() (model.Site, error) {
	var site model.Site

	if c.File != "" {
		raw, err := os.ReadFile(c.File)
		if err != nil {
			return model.Site{}, goerr.Wrap(err, "failed to read site config", goerr.V("path", c.File))
		}
		if err := toml.Unmarshal(raw, &site); err != nil {
			return model.Site{}, goerr.Wrap(err, "failed to parse site config", goerr.V("path", c.File))
		}
	}

	if c.Owner != "" {
		site.Owner = c.Owner
	}
	if c.Repo != "" {
		site.Repo = c.Repo
	}
	if c.MirrorURL != "" {
		site.MirrorURL = c.MirrorURL
	}

	return site.WithDefaults(), nil
}
