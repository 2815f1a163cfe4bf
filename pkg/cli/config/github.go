package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub configuration. The service authenticates either as a
// GitHub App installation (app ID, installation ID, private key) or with a
// personal access token.
type GitHub struct {
	WebhookSecret  string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
	Token          string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("TAILOR_GITHUB_WEBHOOK_SECRET"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("TAILOR_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-app-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("TAILOR_GITHUB_APP_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-app-private-key",
			Usage:       "Path to the GitHub App private key (PEM)",
			Destination: &c.PrivateKeyPath,
			Sources:     cli.EnvVars("TAILOR_GITHUB_APP_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token (alternative to App credentials)",
			Destination: &c.Token,
			Sources:     cli.EnvVars("TAILOR_GITHUB_TOKEN"),
		},
	}
}

// UseApp reports whether App credentials are configured.
func (c *GitHub) UseApp() bool {
	return c.AppID != 0 || c.InstallationID != 0 || c.PrivateKeyPath != ""
}

// Validate checks that exactly one credential style is fully configured.
func (c *GitHub) Validate() error {
	if c.UseApp() {
		if c.AppID == 0 || c.InstallationID == 0 || c.PrivateKeyPath == "" {
			return goerr.New("incomplete GitHub App credentials: app ID, installation ID, and private key are all required")
		}
		if c.Token != "" {
			return goerr.New("both GitHub App credentials and a token are set; configure one")
		}
		return nil
	}
	if c.Token == "" {
		return goerr.New("no GitHub credentials: set App credentials or a token")
	}
	return nil
}

// PrivateKey reads the configured App private key.
func (c *GitHub) PrivateKey() ([]byte, error) {
	key, err := os.ReadFile(c.PrivateKeyPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read GitHub App private key",
			goerr.V("path", c.PrivateKeyPath),
		)
	}
	return key, nil
}
