package historysource

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=Ada", "GIT_AUTHOR_EMAIL=ada@example.com",
			"GIT_COMMITTER_NAME=Ada", "GIT_COMMITTER_EMAIL=ada@example.com",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init", "-q")
	run("config", "user.name", "Ada")
	run("config", "user.email", "ada@example.com")

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("one"), 0644); err != nil {
		t.Fatal(err)
	}
	run("add", "a.txt")
	run("commit", "-q", "-m", "feat(auth): first commit")

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("two"), 0644); err != nil {
		t.Fatal(err)
	}
	run("add", "a.txt")
	run("commit", "-q", "-m", "fix(auth): second commit")

	run("commit", "-q", "--allow-empty", "-m", "chore(build): empty tree commit")

	return dir
}

func TestWalkOrderAndCount(t *testing.T) {
	dir := initRepo(t)
	commits, err := Walk(context.Background(), dir, 0, time.Time{})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(commits) != 3 {
		t.Fatalf("len(commits) = %d, want 3", len(commits))
	}
	if commits[0].Message != "chore(build): empty tree commit" {
		t.Errorf("commits[0].Message = %q, want the most recent commit first", commits[0].Message)
	}
	if !commits[0].IsEmptyTree {
		t.Error("expected the --allow-empty commit to be flagged IsEmptyTree")
	}
	if commits[1].IsEmptyTree {
		t.Error("second commit changed a file and should not be flagged empty-tree")
	}
	if commits[0].Identity.Full == "" || len(commits[0].Identity.Short) == 0 {
		t.Error("expected a non-empty identity")
	}
}

func TestWalkLimit(t *testing.T) {
	dir := initRepo(t)
	commits, err := Walk(context.Background(), dir, 1, time.Time{})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("len(commits) = %d, want 1", len(commits))
	}
}

func TestWalkEmptyRepository(t *testing.T) {
	dir := t.TempDir()
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init: %v\n%s", err, out)
	}
	commits, err := Walk(context.Background(), dir, 0, time.Time{})
	if err != nil {
		t.Fatalf("Walk returned error: %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("len(commits) = %d, want 0 for an empty repository", len(commits))
	}
}
