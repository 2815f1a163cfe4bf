package config

import "github.com/urfave/cli/v3"

// Firestore holds run repository configuration. Without a project ID the
// service falls back to an in-memory repository, which loses records on
// restart.
type Firestore struct {
	ProjectID  string
	Collection string
}

// Flags returns CLI flags for Firestore configuration
func (c *Firestore) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Google Cloud project ID for the run repository",
			Destination: &c.ProjectID,
			Sources:     cli.EnvVars("TAILOR_FIRESTORE_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "firestore-collection",
			Usage:       "Firestore collection for run records",
			Value:       "runs",
			Destination: &c.Collection,
			Sources:     cli.EnvVars("TAILOR_FIRESTORE_COLLECTION"),
		},
	}
}
