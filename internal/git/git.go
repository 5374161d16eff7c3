package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/wxxedu/conv-cmt/internal/output"
)

// ErrGitNotFound is the cause of errors returned when the git executable
// cannot be started.
var ErrGitNotFound = errors.New("git not found: ensure git is installed and in PATH")

// runIn executes git in dir and returns stdout untouched. Failures are
// *output.ExitError values carrying git's stderr.
func runIn(ctx context.Context, dir string, args ...string) (string, error) {
	stdout, _, err := runFull(ctx, dir, args...)
	return stdout, err
}

func runFull(ctx context.Context, dir string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", "", output.NewSystemErrorWithCause(ErrGitNotFound.Error(), ErrGitNotFound)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", "", output.NewSystemErrorWithCause("git "+args[0]+" failed: "+msg, err)
	}
	return stdout.String(), stderr.String(), nil
}

// RepoRoot returns the top-level directory of the work tree containing dir,
// or of the current directory when dir is empty. Outside a work tree the
// error is a user error; a missing git executable stays a system error.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	root, err := runIn(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		if errors.Is(err, ErrGitNotFound) {
			return "", err
		}
		return "", output.NewUserErrorWithCause("not in a git repository", err)
	}
	return strings.TrimSpace(root), nil
}
