// Package git runs the git executable for conv-cmt.
//
// Repository is bound to one work tree and covers what an interactive
// commit needs: listing changes, staging and unstaging paths, committing,
// pushing and finding the latest tag.
//
//	repo, err := git.Open(ctx, "")
//	changes, err := repo.Changes(ctx)
//	hash, err := repo.Commit(ctx, "feat: add review menu")
//
// Failures are *output.ExitError values with ExitSystemError and git's
// stderr in the message. Open outside a work tree is a user error; a
// missing git executable wraps ErrGitNotFound.
package git
