package interfaces

import (
	"context"

	"github.com/m-mizutani/tailor/pkg/domain/model"
)

// Formatter invokes a category's formatter command inside a working tree.
type Formatter interface {
	// Run executes the category command with dir as working directory.
	// A non-zero exit is returned as an error carrying the command output.
	Run(ctx context.Context, category *model.Category, dir string) error
}
