package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/tailor/pkg/cli/config"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write rules file: %v", err)
	}
	return path
}

func TestWorkflow_Load_Defaults(t *testing.T) {
	w := &config.Workflow{}

	cfg, err := w.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if cfg.Trigger != "autoformat" {
		t.Errorf("Trigger = %q, want autoformat", cfg.Trigger)
	}
	if len(cfg.Categories) != 2 {
		t.Errorf("Categories = %d, want 2", len(cfg.Categories))
	}
}

func TestWorkflow_Load_RulesFile(t *testing.T) {
	rules := `
trigger = "reformat"

[[categories]]
name = "go"
suffixes = [".go"]
command = ["gofmt", "-w", "."]

[[categories]]
name = "proto"
prefixes = ["api/proto/"]
command = ["buf", "format", "-w"]
`
	w := &config.Workflow{RulesPath: writeRules(t, rules)}

	cfg, err := w.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if cfg.Trigger != "reformat" {
		t.Errorf("Trigger = %q, want reformat", cfg.Trigger)
	}
	// Scalar fields absent from the file keep their defaults.
	if cfg.StatusContext != "autoformat" {
		t.Errorf("StatusContext = %q, want autoformat", cfg.StatusContext)
	}
	if cfg.CommitterName != "tailor[bot]" {
		t.Errorf("CommitterName = %q, want tailor[bot]", cfg.CommitterName)
	}

	if len(cfg.Categories) != 2 {
		t.Fatalf("Categories = %d, want 2", len(cfg.Categories))
	}
	if cfg.Categories[0].Name != "go" || cfg.Categories[1].Name != "proto" {
		t.Errorf("Category names = %q, %q, want go, proto", cfg.Categories[0].Name, cfg.Categories[1].Name)
	}
	if cfg.Categories[1].Prefixes[0] != "api/proto/" {
		t.Errorf("Prefix = %q, want api/proto/", cfg.Categories[1].Prefixes[0])
	}
}

func TestWorkflow_Load_Errors(t *testing.T) {
	tests := []struct {
		name  string
		rules string
	}{
		{
			name:  "broken TOML",
			rules: `trigger = `,
		},
		{
			name: "category without command",
			rules: `
[[categories]]
name = "go"
suffixes = [".go"]
`,
		},
		{
			name:  "file without categories",
			rules: `trigger = "reformat"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &config.Workflow{RulesPath: writeRules(t, tt.rules)}
			if _, err := w.Load(); err == nil {
				t.Error("Load() should return error")
			}
		})
	}
}

func TestWorkflow_Load_MissingFile(t *testing.T) {
	w := &config.Workflow{RulesPath: filepath.Join(t.TempDir(), "absent.toml")}
	if _, err := w.Load(); err == nil {
		t.Error("Load() should return error for a missing file")
	}
}
