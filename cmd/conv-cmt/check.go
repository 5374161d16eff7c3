package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wxxedu/conv-cmt/internal/commit"
	"github.com/wxxedu/conv-cmt/internal/output"
	"github.com/wxxedu/conv-cmt/internal/release"
)

// newCheckCmd creates the check command.
func newCheckCmd() *cobra.Command {
	var fields commit.Fields
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Build and validate a message from flags",
		Long: `Build a Conventional Commits message from flags without prompting.

The fields are validated with the configured types, case convention and
header length. A valid message is printed; an invalid one exits with
status 1 and names the field to fix.

Examples:
  conv-cmt check --type feat --scope cli --subject "add check command"
  conv-cmt check --type fix --subject "handle eof" --body "Details." --breaking
  conv-cmt check --type docs --subject "typo" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, fields)
		},
	}
	cmd.Flags().StringVarP(&fields.Type, "type", "t", "", "Commit type")
	cmd.Flags().StringVarP(&fields.Scope, "scope", "s", "", "Scope of the change")
	cmd.Flags().StringVarP(&fields.Subject, "subject", "m", "", "Short description")
	cmd.Flags().StringVarP(&fields.Description, "body", "b", "", "Longer description")
	cmd.Flags().BoolVar(&fields.Breaking, "breaking", false, "Mark as a breaking change")
	return cmd
}

func runCheck(cmd *cobra.Command, fields commit.Fields) error {
	printer := newPrinter(cmd)

	repo := openRepo(cmd, printer)
	cfg, err := loadConfig(cmd, printer, repo)
	if err != nil {
		printer.Error(err)
		return err
	}

	c, err := cfg.Policy().Compose(fields)
	if err != nil {
		err = checkError(err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(c)
	}
	printer.Println(c.String())
	if isVerbose(cmd) {
		printer.Stderr("release level: %s\n", release.LevelOf(c))
	}
	return nil
}

// checkError prefixes a validation error with the flag that fixes it.
func checkError(err error) error {
	field, ok := commit.FieldOf(err)
	if !ok {
		return output.NewUserErrorWithCause(err.Error(), err)
	}
	msg := fmt.Sprintf("--%s: %v", flagFor(field), err)
	var tooLong *commit.SubjectTooLongError
	if errors.As(err, &tooLong) && tooLong.Available <= 0 {
		msg += " (shorten the type or scope)"
	}
	return output.NewUserErrorWithCause(msg, err)
}

func flagFor(field commit.Component) string {
	switch field {
	case commit.ComponentCommitType:
		return "type"
	case commit.ComponentScope:
		return "scope"
	case commit.ComponentDescription:
		return "body"
	case commit.ComponentBreakingChange:
		return "breaking"
	default:
		return "subject"
	}
}
