// Package formatter invokes external formatter commands. Formatters follow
// one contract: run inside a working tree and mutate files in place.
package formatter

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/m-mizutani/tailor/pkg/domain/interfaces"
	"github.com/m-mizutani/tailor/pkg/domain/model"
)

// Command output kept in errors is capped so a noisy formatter does not
// flood logs and run records.
const maxOutputInError = 2048

type commandRunner struct{}

// New creates a Formatter that executes the category command as a
// subprocess.
func New() interfaces.Formatter {
	return &commandRunner{}
}

// Run executes the category command with dir as working directory
func (x *commandRunner) Run(ctx context.Context, category *model.Category, dir string) error {
	if len(category.Command) == 0 {
		return fmt.Errorf("category '%s' has no command", category.Name)
	}

	cmd := exec.CommandContext(ctx, category.Command[0], category.Command[1:]...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		output := strings.TrimSpace(string(tail(out)))
		if output != "" {
			return fmt.Errorf("formatter '%s' failed: %w: %s", category.Name, err, output)
		}
		return fmt.Errorf("formatter '%s' failed: %w", category.Name, err)
	}

	return nil
}

func tail(out []byte) []byte {
	if len(out) <= maxOutputInError {
		return out
	}
	return out[len(out)-maxOutputInError:]
}
