// Package git wraps the handful of plain `git` plumbing invocations the
// rest of the module needs: locating the repository root and reading
// first-parent commit history. It shells out to the git binary rather
// than linking a git implementation, the same choice the teacher project
// makes throughout internal/git, internal/daemon, and internal/syncbranch.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// RepoRoot returns the absolute path to the top level of the git working
// tree containing dir.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	out, err := Run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository (or any parent up to mount point): %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Run executes git with the given arguments in dir and returns stdout.
// A non-nil error includes stderr for diagnosis.
func Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...) // #nosec G204 - args are fixed plumbing subcommands, not user input
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
