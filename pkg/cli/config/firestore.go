package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasepage/pkg/infra/firestore"
	"github.com/urfave/cli/v3"
)

// Firestore holds the durable preference store configuration
type Firestore struct {
	ProjectID  string
	DatabaseID string
	Collection string
}

// Flags returns CLI flags for Firestore configuration
func (c *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore project ID; visitor preferences stay in cookies when empty",
			Destination: &c.ProjectID,
			Sources:     cli.EnvVars("RELEASEPAGE_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore database ID",
			Value:       "(default)",
			Destination: &c.DatabaseID,
			Sources:     cli.EnvVars("RELEASEPAGE_FIRESTORE_DATABASE_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-collection",
			Usage:       "Firestore collection for visitor preferences",
			Value:       "visitors",
			Destination: &c.Collection,
			Sources:     cli.EnvVars("RELEASEPAGE_FIRESTORE_COLLECTION"),
		},
	}
}

// Enabled reports whether a project is configured
func (c *Firestore) Enabled() bool {
	return c.ProjectID != ""
}

// NewClient connects to Firestore
func (c *Firestore) NewClient(ctx context.Context) (*firestore.Client, error) {
	if !c.Enabled() {
		return nil, goerr.New("firestore project ID is not set")
	}
	return firestore.New(ctx, c.ProjectID, c.DatabaseID, c.Collection)
}
