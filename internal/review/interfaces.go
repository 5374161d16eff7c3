package review

import (
	"context"

	"github.com/wxxedu/conv-cmt/internal/git"
)

// ChangeSet lists and stages working-tree changes.
type ChangeSet interface {
	Changes(ctx context.Context) ([]git.Change, error)
	Stage(ctx context.Context, path string) error
	Unstage(ctx context.Context, path string) error
}

// Committer records the staged changes with a message and returns an
// identifier for the new commit.
type Committer interface {
	Commit(ctx context.Context, message string) (string, error)
}

// Pusher publishes commits to a remote.
type Pusher interface {
	Push(ctx context.Context) (string, error)
}

// TagSource finds the latest release tag. An empty tag means none.
type TagSource interface {
	LatestTag(ctx context.Context) (string, error)
}

// Prompter asks the user questions. Errors returned by Prompter methods end
// the session.
type Prompter interface {
	// Select returns the index of the chosen option. def is preselected
	// when it is a valid index.
	Select(label string, options []string, def int) (int, error)
	// MultiSelect returns which options are chosen, starting from selected.
	MultiSelect(label string, options []string, selected []bool) ([]bool, error)
	// Input returns a line of text; initial is the current value.
	Input(label, initial string) (string, error)
	Confirm(label string, def bool) (bool, error)
	// Edit opens an editor on initial. ok is false when the user aborted.
	Edit(ctx context.Context, initial string) (text string, ok bool, err error)

	Preview(title, body string)
	Report(err error)
	Info(msg string)
}
