package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wxxedu/conv-cmt/internal/output"
)

// newTestRepo creates an empty repository in a temp dir.
// Skips the test when git is not installed.
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	runGit(t, dir, "init", "--quiet")
	runGit(t, dir, "config", "user.email", "dev@example.com")
	runGit(t, dir, "config", "user.name", "Dev")
	runGit(t, dir, "config", "commit.gpgsign", "false")
	runGit(t, dir, "config", "tag.gpgsign", "false")
	return &Repository{Dir: dir}
}

func runGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func changeCodes(t *testing.T, repo *Repository) map[string]string {
	t.Helper()
	changes, err := repo.Changes(context.Background())
	if err != nil {
		t.Fatalf("Changes() error = %v", err)
	}
	codes := make(map[string]string, len(changes))
	for _, c := range changes {
		codes[c.Path] = c.Code()
	}
	return codes
}

func TestRunIn(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	out, err := runIn(context.Background(), "", "version")
	if err != nil {
		t.Fatalf("runIn(version) error = %v", err)
	}
	if !strings.HasPrefix(out, "git version") {
		t.Errorf("runIn(version) = %q", out)
	}

	_, err = runIn(context.Background(), "", "definitely-not-a-git-command")
	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error should be *output.ExitError, got %T", err)
	}
	if exitErr.Code != output.ExitSystemError {
		t.Errorf("Code = %d, want %d", exitErr.Code, output.ExitSystemError)
	}
}

func TestOpen(t *testing.T) {
	repo := newTestRepo(t)
	writeFile(t, repo.Dir, "sub/x.txt", "x")

	opened, err := Open(context.Background(), filepath.Join(repo.Dir, "sub"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	want, _ := filepath.EvalSymlinks(repo.Dir)
	got, _ := filepath.EvalSymlinks(opened.Dir)
	if got != want {
		t.Errorf("Dir = %q, want %q", got, want)
	}

	_, err = Open(context.Background(), t.TempDir())
	if output.GetExitCode(err) != output.ExitUserError {
		t.Errorf("Open(non-repo) error = %v, want user error", err)
	}
	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) || exitErr.Cause == nil {
		t.Errorf("Open(non-repo) should keep git's error as the cause, got %#v", err)
	}
}

func TestOpen_GitMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := Open(context.Background(), t.TempDir())
	if !errors.Is(err, ErrGitNotFound) {
		t.Fatalf("Open() error = %v, want %v", err, ErrGitNotFound)
	}
	if code := output.GetExitCode(err); code != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", code, output.ExitSystemError)
	}
}

func TestRepository_StageAndUnstageUnbornHead(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	writeFile(t, repo.Dir, "a.txt", "a")
	writeFile(t, repo.Dir, "b.txt", "b")

	if repo.HasHead(ctx) {
		t.Fatal("HasHead() = true in a fresh repository")
	}
	if got := changeCodes(t, repo); got["a.txt"] != "??" || got["b.txt"] != "??" {
		t.Fatalf("codes = %v", got)
	}

	if err := repo.Stage(ctx, "a.txt"); err != nil {
		t.Fatalf("Stage() error = %v", err)
	}
	if got := changeCodes(t, repo)["a.txt"]; got != "A " {
		t.Errorf("a.txt = %q after Stage, want %q", got, "A ")
	}

	if err := repo.Unstage(ctx, "a.txt"); err != nil {
		t.Fatalf("Unstage() error = %v", err)
	}
	if got := changeCodes(t, repo)["a.txt"]; got != "??" {
		t.Errorf("a.txt = %q after Unstage, want %q", got, "??")
	}
}

func TestRepository_CommitThenUnstage(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	writeFile(t, repo.Dir, "a.txt", "a")
	if err := repo.Stage(ctx, "a.txt"); err != nil {
		t.Fatal(err)
	}

	hash, err := repo.Commit(ctx, "feat(core): add a\n\nBody text.")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if hash == "" {
		t.Error("Commit() returned empty hash")
	}
	if msg := runGit(t, repo.Dir, "log", "-1", "--format=%B"); msg != "feat(core): add a\n\nBody text." {
		t.Errorf("message = %q", msg)
	}

	writeFile(t, repo.Dir, "a.txt", "changed")
	if err := repo.Stage(ctx, "a.txt"); err != nil {
		t.Fatal(err)
	}
	if got := changeCodes(t, repo)["a.txt"]; got != "M " {
		t.Fatalf("a.txt = %q, want %q", got, "M ")
	}
	if err := repo.Unstage(ctx, "a.txt"); err != nil {
		t.Fatalf("Unstage() error = %v", err)
	}
	if got := changeCodes(t, repo)["a.txt"]; got != " M" {
		t.Errorf("a.txt = %q, want %q", got, " M")
	}
}

func TestRepository_CommitNothingStaged(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Commit(context.Background(), "fix: nothing")
	if output.GetExitCode(err) != output.ExitSystemError {
		t.Errorf("Commit() error = %v, want system error", err)
	}
}

func TestRepository_LatestTag(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tag, err := repo.LatestTag(ctx)
	if err != nil || tag != "" {
		t.Fatalf("LatestTag() on unborn HEAD = %q, %v", tag, err)
	}

	writeFile(t, repo.Dir, "a.txt", "a")
	runGit(t, repo.Dir, "add", "a.txt")
	runGit(t, repo.Dir, "commit", "--quiet", "-m", "chore: init")

	tag, err = repo.LatestTag(ctx)
	if err != nil || tag != "" {
		t.Fatalf("LatestTag() without tags = %q, %v", tag, err)
	}

	runGit(t, repo.Dir, "tag", "v1.2.3")
	tag, err = repo.LatestTag(ctx)
	if err != nil {
		t.Fatalf("LatestTag() error = %v", err)
	}
	if tag != "v1.2.3" {
		t.Errorf("LatestTag() = %q, want %q", tag, "v1.2.3")
	}
}

func TestRepository_Push(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	writeFile(t, repo.Dir, "a.txt", "a")
	runGit(t, repo.Dir, "add", "a.txt")
	runGit(t, repo.Dir, "commit", "--quiet", "-m", "chore: init")

	if _, err := repo.Push(ctx); err == nil {
		t.Fatal("Push() without a remote should fail")
	}

	remote := t.TempDir()
	runGit(t, remote, "init", "--quiet", "--bare")
	runGit(t, repo.Dir, "remote", "add", "origin", remote)
	runGit(t, repo.Dir, "push", "--quiet", "-u", "origin", "HEAD")

	writeFile(t, repo.Dir, "b.txt", "b")
	runGit(t, repo.Dir, "add", "b.txt")
	runGit(t, repo.Dir, "commit", "--quiet", "-m", "feat: add b")

	if _, err := repo.Push(ctx); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	local := runGit(t, repo.Dir, "rev-parse", "HEAD")
	pushed := runGit(t, remote, "rev-parse", "HEAD")
	if local != pushed {
		t.Errorf("remote HEAD = %s, want %s", pushed, local)
	}
}

func TestRepository_Branch(t *testing.T) {
	repo := newTestRepo(t)
	writeFile(t, repo.Dir, "a.txt", "a")
	runGit(t, repo.Dir, "add", "a.txt")
	runGit(t, repo.Dir, "commit", "--quiet", "-m", "chore: init")
	runGit(t, repo.Dir, "checkout", "--quiet", "-b", "topic")

	branch, err := repo.Branch(context.Background())
	if err != nil {
		t.Fatalf("Branch() error = %v", err)
	}
	if branch != "topic" {
		t.Errorf("Branch() = %q, want %q", branch, "topic")
	}

	runGit(t, repo.Dir, "checkout", "--quiet", "--detach")
	branch, err = repo.Branch(context.Background())
	if err != nil {
		t.Fatalf("Branch() detached error = %v", err)
	}
	if branch != "HEAD" {
		t.Errorf("Branch() detached = %q, want HEAD", branch)
	}
}

func TestRepository_BranchUnborn(t *testing.T) {
	repo := newTestRepo(t)
	runGit(t, repo.Dir, "symbolic-ref", "HEAD", "refs/heads/trunk")

	branch, err := repo.Branch(context.Background())
	if err != nil {
		t.Fatalf("Branch() error = %v", err)
	}
	if branch != "trunk" {
		t.Errorf("Branch() = %q, want %q", branch, "trunk")
	}
}
