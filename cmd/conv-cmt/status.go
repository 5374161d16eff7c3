package main

import (
	"github.com/spf13/cobra"

	"github.com/wxxedu/conv-cmt/internal/git"
	"github.com/wxxedu/conv-cmt/internal/output"
)

// changeJSON is one change in status --json output.
type changeJSON struct {
	Path     string `json:"path"`
	OrigPath string `json:"orig_path,omitempty"`
	Status   string `json:"status"`
	Kind     string `json:"kind"`
	Staged   bool   `json:"staged"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show staged and unstaged changes",
		Long: `Show the current branch, the latest release tag, and the working tree
changes split into staged and unstaged.

Examples:
  conv-cmt status         # Human-readable status
  conv-cmt status --json  # Output status as JSON for scripting`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)
	ctx := cmd.Context()

	repo, err := openRepoRequired(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	changes, err := repo.Changes(ctx)
	if err != nil {
		printer.Error(err)
		return err
	}
	branch, err := repo.Branch(ctx)
	if err != nil {
		printer.Error(err)
		return err
	}
	tag, err := repo.LatestTag(ctx)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		entries := make([]changeJSON, 0, len(changes))
		staged := 0
		for _, c := range changes {
			entries = append(entries, changeJSON{
				Path:     c.Path,
				OrigPath: c.OrigPath,
				Status:   c.Code(),
				Kind:     c.Kind(),
				Staged:   c.Staged(),
			})
			if c.Staged() {
				staged++
			}
		}
		return printer.WriteJSON(map[string]any{
			"branch":     branch,
			"latest_tag": tag,
			"changes":    entries,
			"staged":     staged,
		})
	}

	printHumanStatus(printer, branch, tag, changes)
	return nil
}

func printHumanStatus(printer *output.Printer, branch, tag string, changes []git.Change) {
	printer.KeyValue("branch", branch)
	if tag != "" {
		printer.KeyValue("latest tag", tag)
	}
	if len(changes) == 0 {
		printer.Println()
		printer.Notice("Working tree clean.")
		return
	}

	var staged, unstaged [][]string
	for _, c := range changes {
		if c.Staged() {
			staged = append(staged, []string{c.Kind(), displayPath(c)})
		}
		if c.Unstaged() {
			unstaged = append(unstaged, []string{c.Kind(), displayPath(c)})
		}
	}
	if len(staged) > 0 {
		printer.Section("Staged")
		printer.Table([]string{"KIND", "PATH"}, staged)
	}
	if len(unstaged) > 0 {
		printer.Section("Not staged")
		printer.Table([]string{"KIND", "PATH"}, unstaged)
	}
}

func displayPath(c git.Change) string {
	if c.OrigPath != "" {
		return c.OrigPath + " -> " + c.Path
	}
	return c.Path
}
