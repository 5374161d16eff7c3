// Package main provides the entry point for the conv-cmt CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wxxedu/conv-cmt/internal/output"
)

// Build info set via ldflags at build time.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.gitCommit=abc123 -X main.date=2024-01-01"
var (
	version   = "dev"
	gitCommit = "none"
	date      = "unknown"
)

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if gitCommit == "none" && date == "unknown" {
		return version
	}
	shortCommit := gitCommit
	if len(gitCommit) > 7 {
		shortCommit = gitCommit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command. Without a subcommand it runs the
// interactive commit.
func newRootCmd() *cobra.Command {
	flags := &commitFlags{}
	cmd := &cobra.Command{
		Use:   "conv-cmt",
		Short: "Write conventional commits interactively",
		Long: `conv-cmt - Build Conventional Commits messages step by step.

conv-cmt walks through staging, commit type, scope, subject, an optional
body and the breaking-change flag, then shows the message for review.
Any field can be revised before the commit is created.

Running conv-cmt without a subcommand is the same as 'conv-cmt commit'.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommit(cmd, flags)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if _, err := output.ParseColorMode(colorFlag(cmd)); err != nil {
			return output.NewUserErrorWithCause(err.Error(), err)
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Color output: auto, always or never")
	cmd.PersistentFlags().String("config", "", "Path to a config file")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Print diagnostics to stderr")
	addCommitFlags(cmd, flags)

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "query", Title: "Query Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newCommitCmd(), "core")
	addGroupedCommand(cmd, newCheckCmd(), "core")

	addGroupedCommand(cmd, newTypesCmd(), "query")
	addGroupedCommand(cmd, newStatusCmd(), "query")

	addGroupedCommand(cmd, newInitCmd(), "admin")
	addGroupedCommand(cmd, newServeCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
