package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/tailor/pkg/domain/types"
)

// Dir stores artifacts as plain files under a base directory. Meant for
// local development and tests; run directories older than the retention are
// pruned on write, best effort.
type Dir struct {
	base      string
	retention time.Duration
}

// NewDir creates a directory-backed artifact store. retention <= 0 disables
// pruning.
func NewDir(base string, retention time.Duration) *Dir {
	return &Dir{base: base, retention: retention}
}

// Put stores data under the key, overwriting any existing file
func (x *Dir) Put(ctx context.Context, key string, data []byte) error {
	path, err := x.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact dir for %s: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", key, err)
	}

	x.prune()
	return nil
}

// Get returns the file stored under the key
func (x *Dir) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := x.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", key, types.ErrArtifactNotFound)
		}
		return nil, fmt.Errorf("failed to read artifact %s: %w", key, err)
	}
	return data, nil
}

// path maps a store key to a file path and rejects keys that would escape
// the base directory.
func (x *Dir) path(key string) (string, error) {
	base := filepath.Clean(x.base)
	path := filepath.Join(base, filepath.FromSlash(key))
	if !strings.HasPrefix(path, base+string(os.PathSeparator)) {
		return "", fmt.Errorf("artifact key escapes store root: %s", key)
	}
	return path, nil
}

// prune removes run directories whose last write is older than the
// retention. Errors are ignored; the store is a cache of intermediate
// artifacts, not a system of record.
func (x *Dir) prune() {
	if x.retention <= 0 {
		return
	}
	cutoff := time.Now().Add(-x.retention)

	runsDir := filepath.Join(filepath.Clean(x.base), "runs")
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.RemoveAll(filepath.Join(runsDir, e.Name()))
		}
	}
}
