// Package gitdiff reads the last recorded change of a tracked file via
// the git CLI.
package gitdiff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotARepo reports that the configured path is not a git repository
// (or git itself is unavailable).
var ErrNotARepo = errors.New("not a git repository")

// ErrNoHistory reports that the file has fewer than two revisions, so
// there is no change to diff.
var ErrNoHistory = errors.New("no diff history")

// LastChangeDiff returns the diff of file between its two most recent
// commits in the repository at dir.
func LastChangeDiff(ctx context.Context, dir, file string) (string, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotARepo, err)
	}
	if err := run(ctx, dir, "rev-parse", "--git-dir"); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotARepo, dir)
	}

	out, err := output(ctx, dir, "log", "-n", "2", "--pretty=%H", "--", file)
	if err != nil {
		return "", fmt.Errorf("reading history of %s: %w", file, err)
	}
	hashes := strings.Fields(out)
	if len(hashes) < 2 {
		return "", fmt.Errorf("%w: %s has %d revision(s)", ErrNoHistory, file, len(hashes))
	}
	newer, older := hashes[0], hashes[1]

	diff, err := output(ctx, dir, "diff", older, newer, "--", file)
	if err != nil {
		return "", fmt.Errorf("diffing %s: %w", file, err)
	}
	return diff, nil
}

func run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	return cmd.Run()
}

func output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
