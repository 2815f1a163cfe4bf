package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// WorkflowConfig holds the formatting rules and trigger policy. It can be
// loaded from a TOML rules file; DefaultWorkflowConfig is used when no file
// is given.
type WorkflowConfig struct {
	Trigger        string     `toml:"trigger"`
	StatusContext  string     `toml:"status_context"`
	Associations   []string   `toml:"associations"`
	CommitterName  string     `toml:"committer_name"`
	CommitterEmail string     `toml:"committer_email"`
	Categories     []Category `toml:"categories"`
}

// DefaultWorkflowConfig returns the built-in rules: python files formatted
// with black, UI sources with prettier.
func DefaultWorkflowConfig() *WorkflowConfig {
	return &WorkflowConfig{
		Trigger:        "autoformat",
		StatusContext:  "autoformat",
		Associations:   []string{"OWNER", "MEMBER", "COLLABORATOR"},
		CommitterName:  "tailor[bot]",
		CommitterEmail: "tailor[bot]@users.noreply.github.com",
		Categories: []Category{
			{
				Name:     "python",
				Suffixes: []string{".py"},
				Command:  []string{"black", "."},
			},
			{
				Name:     "ui",
				Suffixes: []string{".js", ".jsx", ".ts", ".tsx", ".css", ".scss"},
				Command:  []string{"prettier", "--write", "."},
			},
		},
	}
}

// Validate checks the configuration is usable. Called once at startup.
func (c *WorkflowConfig) Validate() error {
	if c.Trigger == "" {
		return goerr.New("trigger phrase is empty")
	}
	if c.StatusContext == "" {
		return goerr.New("status context is empty")
	}
	if len(c.Categories) == 0 {
		return goerr.New("no categories configured")
	}

	seen := map[string]struct{}{}
	for _, cat := range c.Categories {
		if cat.Name == "" {
			return goerr.New("category name is empty")
		}
		if _, ok := seen[cat.Name]; ok {
			return goerr.New("duplicate category name", goerr.V("name", cat.Name))
		}
		seen[cat.Name] = struct{}{}
		if len(cat.Command) == 0 {
			return goerr.New("category has no command", goerr.V("name", cat.Name))
		}
		if len(cat.Suffixes) == 0 && len(cat.Prefixes) == 0 {
			return goerr.New("category has no patterns", goerr.V("name", cat.Name))
		}
	}
	return nil
}

// IsAllowedAssociation reports whether a comment author with the given
// association may trigger the workflow. An empty allow-list disables the
// gate.
func (c *WorkflowConfig) IsAllowedAssociation(assoc string) bool {
	if len(c.Associations) == 0 {
		return true
	}
	for _, a := range c.Associations {
		if a == assoc {
			return true
		}
	}
	return false
}
