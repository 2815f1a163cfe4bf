package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/tailor/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Workflow holds the formatting rules configuration
type Workflow struct {
	RulesPath string
}

// Flags returns CLI flags for workflow configuration
func (c *Workflow) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "rules",
			Usage:       "Path to the TOML rules file (built-in rules when omitted)",
			Destination: &c.RulesPath,
			Sources:     cli.EnvVars("TAILOR_RULES"),
		},
	}
}

// Load reads the rules file into a workflow configuration. Scalar fields
// absent from the file keep their built-in defaults; the category list always
// comes from the file itself.
func (c *Workflow) Load() (*model.WorkflowConfig, error) {
	cfg := model.DefaultWorkflowConfig()

	if c.RulesPath != "" {
		raw, err := os.ReadFile(c.RulesPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read rules file",
				goerr.V("path", c.RulesPath),
			)
		}
		cfg.Categories = nil
		if err := toml.Unmarshal(raw, cfg); err != nil {
			return nil, goerr.Wrap(err, "failed to parse rules file",
				goerr.V("path", c.RulesPath),
			)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid workflow rules",
			goerr.V("path", c.RulesPath),
		)
	}
	return cfg, nil
}
