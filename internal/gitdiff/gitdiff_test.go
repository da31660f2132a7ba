package gitdiff

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func TestLastChangeDiffNotARepo(t *testing.T) {
	requireGit(t)
	_, err := LastChangeDiff(context.Background(), t.TempDir(), "README.md")
	if !errors.Is(err, ErrNotARepo) {
		t.Errorf("expected ErrNotARepo, got %v", err)
	}
}

func TestLastChangeDiffNoHistory(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	git(t, dir, "init", "-q")

	path := filepath.Join(dir, "README.md")
	if err := os.WriteFile(path, []byte("[a](http://a)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	git(t, dir, "add", "README.md")
	git(t, dir, "commit", "-q", "-m", "initial")

	_, err := LastChangeDiff(context.Background(), dir, "README.md")
	if !errors.Is(err, ErrNoHistory) {
		t.Errorf("expected ErrNoHistory after one commit, got %v", err)
	}
}

func TestLastChangeDiffAddedLines(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	git(t, dir, "init", "-q")

	path := filepath.Join(dir, "README.md")
	if err := os.WriteFile(path, []byte("[a](http://a)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	git(t, dir, "add", "README.md")
	git(t, dir, "commit", "-q", "-m", "initial")

	if err := os.WriteFile(path, []byte("[a](http://a)\n[b](http://b)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	git(t, dir, "add", "README.md")
	git(t, dir, "commit", "-q", "-m", "add link")

	diff, err := LastChangeDiff(context.Background(), dir, "README.md")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if !strings.Contains(diff, "+[b](http://b)") {
		t.Errorf("expected added line in diff, got:\n%s", diff)
	}
	if strings.Contains(diff, "+[a](http://a)") {
		t.Errorf("unchanged line reported as addition:\n%s", diff)
	}
}
