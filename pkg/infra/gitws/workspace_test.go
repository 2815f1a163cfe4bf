package gitws

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/tailor/pkg/domain/model"
)

type staticToken struct{}

func (staticToken) Token(context.Context) (string, error) {
	return "", nil
}

func requireGit(t *testing.T) {
	t.Helper()
	for _, bin := range []string{"git", "git-upload-pack", "git-receive-pack"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not available: %v", bin, err)
		}
	}
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	base := []string{"-c", "user.name=seed", "-c", "user.email=seed@example.com"}
	cmd := exec.Command("git", append(base, args...)...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

// seedOrigin builds a bare repository with one commit on main and returns
// its path and the commit SHA.
func seedOrigin(t *testing.T) (string, string) {
	t.Helper()

	seed := t.TempDir()
	runGit(t, seed, "init")
	runGit(t, seed, "checkout", "-b", "main")
	if err := os.WriteFile(filepath.Join(seed, "a.py"), []byte("x=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	runGit(t, seed, "add", ".")
	runGit(t, seed, "commit", "-m", "init")
	sha := runGit(t, seed, "rev-parse", "HEAD")

	parent := t.TempDir()
	origin := filepath.Join(parent, "origin.git")
	runGit(t, parent, "clone", "--bare", seed, origin)

	return origin, sha
}

func overrideRemote(t *testing.T, origin string) {
	t.Helper()
	orig := remoteURL
	remoteURL = func(*model.CommitRef) string { return origin }
	t.Cleanup(func() { remoteURL = orig })
}

func TestWorkspaceLifecycle(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	origin, sha := seedOrigin(t)
	overrideRemote(t, origin)

	factory := New(staticToken{})
	commit := &model.CommitRef{Owner: "octo", Repo: "demo", Number: 1, Branch: "main", SHA: sha}

	// Fresh checkout starts clean.
	ws, err := factory.Checkout(ctx, commit)
	gt.NoError(t, err)
	defer ws.Close()

	content, err := os.ReadFile(filepath.Join(ws.Dir(), "a.py"))
	gt.NoError(t, err)
	gt.Equal(t, string(content), "x=1\n")

	diff, err := ws.Diff(ctx)
	gt.NoError(t, err)
	gt.Equal(t, diff, "")

	// Mutating a tracked file shows up in the diff.
	gt.NoError(t, os.WriteFile(filepath.Join(ws.Dir(), "a.py"), []byte("x = 1\n"), 0o644))
	diff, err = ws.Diff(ctx)
	gt.NoError(t, err)
	if !strings.Contains(diff, "a.py") || !strings.Contains(diff, "+x = 1") {
		t.Errorf("unexpected diff: %q", diff)
	}

	// The patch applies to a second fresh checkout and pushes upstream.
	ws2, err := factory.Checkout(ctx, commit)
	gt.NoError(t, err)
	defer ws2.Close()

	gt.NoError(t, ws2.Apply(ctx, []byte(diff)))
	content, err = os.ReadFile(filepath.Join(ws2.Dir(), "a.py"))
	gt.NoError(t, err)
	gt.Equal(t, string(content), "x = 1\n")

	pushed, err := ws2.CommitAndPush(ctx, "Autoformat: http://example.com/runs/1", "tailor[bot]", "tailor[bot]@example.com")
	gt.NoError(t, err)
	gt.V(t, pushed).NotEqual(sha)

	gt.Equal(t, runGit(t, origin, "rev-parse", "main"), pushed)
	gt.Equal(t, runGit(t, origin, "log", "-1", "--format=%s", "main"), "Autoformat: http://example.com/runs/1")
	gt.Equal(t, runGit(t, origin, "log", "-1", "--format=%an", "main"), "tailor[bot]")
}

func TestWorkspacePinsCommit(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	origin, sha := seedOrigin(t)
	overrideRemote(t, origin)

	factory := New(staticToken{})
	commit := &model.CommitRef{Owner: "octo", Repo: "demo", Number: 1, Branch: "main", SHA: sha}

	// Advance the remote branch past the pinned commit.
	ws, err := factory.Checkout(ctx, commit)
	gt.NoError(t, err)
	defer ws.Close()
	gt.NoError(t, os.WriteFile(filepath.Join(ws.Dir(), "a.py"), []byte("x = 1\n"), 0o644))
	_, err = ws.CommitAndPush(ctx, "advance", "seed", "seed@example.com")
	gt.NoError(t, err)

	// A new checkout of the original commit still sees the old tree.
	ws2, err := factory.Checkout(ctx, commit)
	gt.NoError(t, err)
	defer ws2.Close()

	content, err := os.ReadFile(filepath.Join(ws2.Dir(), "a.py"))
	gt.NoError(t, err)
	gt.Equal(t, string(content), "x=1\n")

	// Committing on the stale commit must not overwrite the advanced branch.
	gt.NoError(t, os.WriteFile(filepath.Join(ws2.Dir(), "a.py"), []byte("x=2\n"), 0o644))
	if _, err := ws2.CommitAndPush(ctx, "stale", "seed", "seed@example.com"); err == nil {
		t.Error("push from a stale commit must fail, not force-overwrite")
	}
}

func TestWorkspaceApplyRejectsBrokenPatch(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	origin, sha := seedOrigin(t)
	overrideRemote(t, origin)

	factory := New(staticToken{})
	ws, err := factory.Checkout(ctx, &model.CommitRef{Owner: "octo", Repo: "demo", Number: 1, Branch: "main", SHA: sha})
	gt.NoError(t, err)
	defer ws.Close()

	if err := ws.Apply(ctx, []byte("not a patch\n")); err == nil {
		t.Error("broken patch must be rejected")
	}
}

func TestWorkspaceClose(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	origin, sha := seedOrigin(t)
	overrideRemote(t, origin)

	factory := New(staticToken{})
	ws, err := factory.Checkout(ctx, &model.CommitRef{Owner: "octo", Repo: "demo", Number: 1, Branch: "main", SHA: sha})
	gt.NoError(t, err)

	dir := ws.Dir()
	gt.NoError(t, ws.Close())
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("workspace dir %s still exists after Close", dir)
	}
}
