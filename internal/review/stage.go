package review

import (
	"context"
	"fmt"

	"github.com/wxxedu/conv-cmt/internal/git"
)

const (
	stageQuit = iota
	stageRetry
)

// stage lets the user pick the changes to commit. It loops until at least
// one change is staged or the user quits.
func (c *Controller) stage(ctx context.Context) (State, error) {
	if c.deps.Changes == nil || c.opts.SkipStage {
		return StateAskType, nil
	}

	for {
		changes, err := c.deps.Changes.Changes(ctx)
		if err != nil {
			return StateStage, fmt.Errorf("listing changes: %w", err)
		}
		if len(changes) == 0 {
			return StateStage, ErrNoChanges
		}

		if c.opts.StageAll {
			err = c.stageAll(ctx, changes)
		} else {
			err = c.stageSelected(ctx, changes)
		}
		if err != nil {
			return StateStage, err
		}

		staged, err := c.countStaged(ctx)
		if err != nil {
			return StateStage, err
		}
		if staged > 0 {
			c.result.Staged = staged
			c.prompter.Info(c.tr.Plural("staged_count", staged))
			return StateAskType, nil
		}

		c.prompter.Info(c.tr.T("stage_nothing_staged"))
		choice, err := c.prompter.Select(c.tr.T("stage_what_next"),
			[]string{c.tr.T("stage_quit"), c.tr.T("stage_retry")}, stageRetry)
		if err != nil {
			return StateStage, err
		}
		if choice == stageQuit {
			return StateQuit, nil
		}
	}
}

func (c *Controller) stageAll(ctx context.Context, changes []git.Change) error {
	for _, ch := range changes {
		if !ch.Unstaged() {
			continue
		}
		if err := c.deps.Changes.Stage(ctx, ch.Path); err != nil {
			return fmt.Errorf("staging %s: %w", ch.Path, err)
		}
	}
	return nil
}

func (c *Controller) stageSelected(ctx context.Context, changes []git.Change) error {
	labels := make([]string, len(changes))
	selected := make([]bool, len(changes))
	for i, ch := range changes {
		labels[i] = ch.String()
		selected[i] = ch.Staged()
	}

	chosen, err := c.prompter.MultiSelect(c.tr.T("stage_title"), labels, selected)
	if err != nil {
		return err
	}

	for i, ch := range changes {
		want := i < len(chosen) && chosen[i]
		switch {
		case want && ch.Unstaged():
			if err := c.deps.Changes.Stage(ctx, ch.Path); err != nil {
				return fmt.Errorf("staging %s: %w", ch.Path, err)
			}
		case !want && ch.Staged():
			for _, path := range []string{ch.Path, ch.OrigPath} {
				if path == "" {
					continue
				}
				if err := c.deps.Changes.Unstage(ctx, path); err != nil {
					return fmt.Errorf("unstaging %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

func (c *Controller) countStaged(ctx context.Context) (int, error) {
	changes, err := c.deps.Changes.Changes(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing changes: %w", err)
	}
	n := 0
	for _, ch := range changes {
		if ch.Staged() {
			n++
		}
	}
	return n, nil
}
