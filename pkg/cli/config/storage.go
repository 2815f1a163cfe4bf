package config

import "github.com/urfave/cli/v3"

// Storage holds artifact storage configuration. A bucket selects Google
// Cloud Storage; otherwise patches land in a local directory.
type Storage struct {
	Bucket        string
	Dir           string
	RetentionDays int64
}

// Flags returns CLI flags for storage configuration
func (c *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "artifact-bucket",
			Usage:       "GCS bucket for patch artifacts",
			Destination: &c.Bucket,
			Sources:     cli.EnvVars("TAILOR_ARTIFACT_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "artifact-dir",
			Usage:       "Local directory for patch artifacts (when no bucket is set)",
			Value:       "./artifacts",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("TAILOR_ARTIFACT_DIR"),
		},
		&cli.Int64Flag{
			Name:        "artifact-retention-days",
			Usage:       "Days to keep local patch artifacts (0 disables pruning; GCS uses bucket lifecycle rules)",
			Value:       14,
			Destination: &c.RetentionDays,
			Sources:     cli.EnvVars("TAILOR_ARTIFACT_RETENTION_DAYS"),
		},
	}
}
