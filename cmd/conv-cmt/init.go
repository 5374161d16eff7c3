package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wxxedu/conv-cmt/internal/config"
	"github.com/wxxedu/conv-cmt/internal/output"
)

// initFlags holds the command-line flags for the init command.
type initFlags struct {
	local   bool
	force   bool
	useTOML bool
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write a config file holding the default settings so they can be edited.

By default the file is written to the user config directory
($CONV_CMT_CONFIG_HOME, $XDG_CONFIG_HOME/conv-cmt or ~/.config/conv-cmt).
With --local it is written to the root of the current repository, where it
takes precedence over the user file.

Examples:
  conv-cmt init                # ~/.config/conv-cmt/config.yaml
  conv-cmt init --local        # ./.conv-cmt.yaml in the repository root
  conv-cmt init --local --toml # ./.conv-cmt.toml
  conv-cmt init --force        # Overwrite an existing file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.local, "local", false, "Write the file in the repository root")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&flags.useTOML, "toml", false, "Write TOML instead of YAML")
	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	printer := newPrinter(cmd)

	root := ""
	if flags.local {
		repo, err := openRepoRequired(cmd)
		if err != nil {
			printer.Error(err)
			return err
		}
		root = repo.Dir
	}

	path := config.InitPath(root, flags.local, flags.useTOML)
	if err := config.WriteFile(path, config.Default(), flags.force); err != nil {
		if errors.Is(err, config.ErrExists) {
			err = output.NewConflictError(fmt.Sprintf("%s already exists (use --force to overwrite)", path))
		} else {
			err = output.NewSystemErrorWithCause("failed to write config", err)
		}
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"path": path})
	}
	return printer.Success(map[string]any{"message": "Wrote " + path})
}
