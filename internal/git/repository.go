package git

import (
	"context"
	"strings"

	"github.com/wxxedu/conv-cmt/internal/output"
)

// Repository runs git against one work tree. The zero value uses the
// process's working directory.
type Repository struct {
	Dir string
}

// Open returns a Repository rooted at dir, or the current work tree when
// dir is empty. Errors are those of RepoRoot.
func Open(ctx context.Context, dir string) (*Repository, error) {
	root, err := RepoRoot(ctx, dir)
	if err != nil {
		return nil, err
	}
	return &Repository{Dir: root}, nil
}

func (r *Repository) run(ctx context.Context, args ...string) (string, error) {
	out, err := runIn(ctx, r.Dir, args...)
	return strings.TrimSpace(out), err
}

// Changes lists the work tree's changes in git's order.
func (r *Repository) Changes(ctx context.Context) ([]Change, error) {
	out, err := runIn(ctx, r.Dir, "status", "--porcelain=v1", "-z", "--untracked-files=all")
	if err != nil {
		return nil, err
	}
	changes, err := ParseStatus(out)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("reading git status", err)
	}
	return changes, nil
}

// Stage adds path to the index.
func (r *Repository) Stage(ctx context.Context, path string) error {
	_, err := r.run(ctx, "add", "--", path)
	return err
}

// Unstage removes path from the index, keeping the work tree. Before the
// first commit there is no HEAD to restore from, so the entry is dropped
// from the index instead.
func (r *Repository) Unstage(ctx context.Context, path string) error {
	if !r.HasHead(ctx) {
		_, err := r.run(ctx, "rm", "--cached", "--quiet", "-r", "--", path)
		return err
	}
	_, err := r.run(ctx, "restore", "--staged", "--", path)
	return err
}

// HasHead reports whether HEAD points at a commit.
func (r *Repository) HasHead(ctx context.Context) bool {
	_, err := r.run(ctx, "rev-parse", "--verify", "--quiet", "HEAD")
	return err == nil
}

// Commit records the index with message and returns the new short hash.
func (r *Repository) Commit(ctx context.Context, message string) (string, error) {
	if _, err := r.run(ctx, "commit", "-m", message); err != nil {
		return "", err
	}
	return r.run(ctx, "rev-parse", "--short", "HEAD")
}

// Push runs `git push` and returns git's report.
func (r *Repository) Push(ctx context.Context) (string, error) {
	stdout, stderr, err := runFull(ctx, r.Dir, "push")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.TrimSpace(stdout) + "\n" + strings.TrimSpace(stderr)), nil
}

// LatestTag returns the nearest tag reachable from HEAD, or "" when there
// is none.
func (r *Repository) LatestTag(ctx context.Context) (string, error) {
	if !r.HasHead(ctx) {
		return "", nil
	}
	out, err := runIn(ctx, r.Dir, "tag", "--merged", "HEAD")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", nil
	}
	return r.run(ctx, "describe", "--tags", "--abbrev=0")
}

// Branch returns the current branch name, including an unborn one.
// A detached HEAD is reported as "HEAD".
func (r *Repository) Branch(ctx context.Context) (string, error) {
	branch, err := r.run(ctx, "symbolic-ref", "--quiet", "--short", "HEAD")
	if err == nil {
		return branch, nil
	}
	if _, revErr := r.run(ctx, "rev-parse", "--verify", "--quiet", "HEAD"); revErr == nil {
		return "HEAD", nil
	}
	return "", output.NewSystemErrorWithCause("failed to get current branch", err)
}
