package config

import "github.com/urfave/cli/v3"

// Server holds server configuration
type Server struct {
	Addr    string
	BaseURL string
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("TAILOR_ADDR"),
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Public base URL of this service, used in status and commit links",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("TAILOR_BASE_URL"),
		},
	}
}
