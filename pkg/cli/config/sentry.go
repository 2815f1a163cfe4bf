package config

import "github.com/urfave/cli/v3"

// Sentry holds error tracking configuration
type Sentry struct {
	DSN string
	Env string
}

// Flags returns CLI flags for Sentry configuration
func (c *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (error tracking disabled when empty)",
			Destination: &c.DSN,
			Sources:     cli.EnvVars("TAILOR_SENTRY_DSN"),
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment tag",
			Value:       "production",
			Destination: &c.Env,
			Sources:     cli.EnvVars("TAILOR_SENTRY_ENV"),
		},
	}
}
