package main

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/wxxedu/conv-cmt/internal/i18n"
	"github.com/wxxedu/conv-cmt/internal/output"
	"github.com/wxxedu/conv-cmt/internal/prompt"
	"github.com/wxxedu/conv-cmt/internal/review"
)

// commitFlags holds the command-line flags for the commit command.
type commitFlags struct {
	all     bool
	noStage bool
	noPush  bool
	dryRun  bool
}

// newCommitCmd creates the commit command.
func newCommitCmd() *cobra.Command {
	flags := &commitFlags{}
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Stage changes and write a commit interactively",
		Long: `Stage changes and write a Conventional Commits message interactively.

The session asks for the files to stage, then the commit type, scope,
subject, an optional body (written in your editor) and whether the change
is breaking. The message is shown for review; pick a field to revise it or
confirm to commit. After a successful commit you are offered a push.

Examples:
  conv-cmt commit              # Full interactive session
  conv-cmt commit --all        # Stage every change without asking
  conv-cmt commit --no-stage   # Commit whatever is already staged
  conv-cmt commit --dry-run    # Review the message without committing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommit(cmd, flags)
		},
	}
	addCommitFlags(cmd, flags)
	return cmd
}

func addCommitFlags(cmd *cobra.Command, flags *commitFlags) {
	cmd.Flags().BoolVarP(&flags.all, "all", "a", false, "Stage all changes without asking")
	cmd.Flags().BoolVar(&flags.noStage, "no-stage", false, "Skip staging and commit the index as it is")
	cmd.Flags().BoolVar(&flags.noPush, "no-push", false, "Do not offer to push after committing")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show the final message without committing")
	cmd.MarkFlagsMutuallyExclusive("all", "no-stage")
}

// runCommit runs one interactive session.
func runCommit(cmd *cobra.Command, flags *commitFlags) error {
	printer := newPrinter(cmd)

	if printer.IsJSON() {
		err := output.NewUserError("the interactive commit has no JSON mode; use 'conv-cmt check --json'")
		printer.Error(err)
		return err
	}

	repo, err := openRepoRequired(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	cfg, err := loadConfig(cmd, printer, repo)
	if err != nil {
		printer.Error(err)
		return err
	}
	tr, err := i18n.New(cfg.Language)
	if err != nil {
		err = output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(err)
		return err
	}

	term := prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout(),
		prompt.WithColor(printer.IsTTY()),
		prompt.WithTranslator(tr),
		prompt.WithEditor(prompt.ExternalEditor{Command: cfg.Editor}),
	)

	var pusher review.Pusher = repo
	if output.IsTTY(cmd.OutOrStdout()) {
		pusher = spinnerPusher{pusher: repo, w: cmd.OutOrStdout(), msg: tr.T("pushing")}
	}

	policy := cfg.Policy()
	ctrl := review.New(term, review.Options{
		Catalog:   policy.Types(),
		Strategy:  policy.Strategy,
		MaxLen:    policy.MaxLen,
		AutoCase:  policy.AutoCase,
		DryRun:    flags.dryRun,
		StageAll:  flags.all,
		SkipStage: flags.noStage,
		SkipPush:  flags.noPush,
		Messages:  tr,
	}, review.Deps{
		Changes:   repo,
		Committer: repo,
		Pusher:    pusher,
		Tags:      repo,
	})

	_, err = ctrl.Run(cmd.Context())
	if isVerbose(cmd) {
		printer.Stderr("states: %v\n", ctrl.Trace())
	}
	switch {
	case err == nil, errors.Is(err, review.ErrQuit):
		return nil
	case errors.Is(err, review.ErrNoChanges):
		err = output.NewUserErrorWithCause(tr.T("no_changes"), err)
	case errors.Is(err, prompt.ErrInputClosed):
		err = output.NewUserErrorWithCause("input closed before the commit was confirmed", err)
	}
	printer.Error(err)
	return err
}

// spinnerPusher shows a spinner while the push runs.
type spinnerPusher struct {
	pusher review.Pusher
	w      io.Writer
	msg    string
}

func (p spinnerPusher) Push(ctx context.Context) (string, error) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(p.w),
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+p.msg),
	)
	s.Start()
	defer s.Stop()
	return p.pusher.Push(ctx)
}
