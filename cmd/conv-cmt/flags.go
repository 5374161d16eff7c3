package main

import (
	"github.com/spf13/cobra"

	"github.com/wxxedu/conv-cmt/internal/config"
	"github.com/wxxedu/conv-cmt/internal/git"
	"github.com/wxxedu/conv-cmt/internal/output"
)

// persistentFlag reads a persistent flag from the command hierarchy.
func persistentFlag(cmd *cobra.Command, name string) string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	if flag == nil {
		return ""
	}
	return flag.Value.String()
}

// isJSONMode reads the --json persistent flag.
func isJSONMode(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "json") == "true"
}

func isVerbose(cmd *cobra.Command) bool {
	return persistentFlag(cmd, "verbose") == "true"
}

func colorFlag(cmd *cobra.Command) string {
	return persistentFlag(cmd, "color")
}

// useColor reports whether human output should be styled: --color wins,
// otherwise color is used when stdout is a terminal.
func useColor(cmd *cobra.Command) bool {
	mode, err := output.ParseColorMode(colorFlag(cmd))
	if err != nil {
		mode = output.ColorAuto
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// openRepo returns the repository around the working directory, or nil
// when there is none. With --verbose the reason is printed as a warning.
func openRepo(cmd *cobra.Command, printer *output.Printer) *git.Repository {
	repo, err := git.Open(cmd.Context(), "")
	if err != nil {
		if isVerbose(cmd) {
			printer.Warn("%s; repository configuration is not read", err)
		}
		return nil
	}
	return repo
}

// openRepoRequired returns the repository around the working directory,
// or a user error outside one.
func openRepoRequired(cmd *cobra.Command) (*git.Repository, error) {
	return git.Open(cmd.Context(), "")
}

// loadConfig reads the effective configuration for repo, which may be nil.
func loadConfig(cmd *cobra.Command, printer *output.Printer, repo *git.Repository) (*config.Config, error) {
	root := ""
	if repo != nil {
		root = repo.Dir
	}
	cfg, err := config.Load(persistentFlag(cmd, "config"), root)
	if err != nil {
		return nil, output.NewUserErrorWithCause("invalid configuration: "+err.Error(), err)
	}
	if isVerbose(cmd) {
		source := cfg.Path
		if source == "" {
			source = "defaults"
		}
		printer.Stderr("config: %s\n", source)
	}
	return cfg, nil
}
