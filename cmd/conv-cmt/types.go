package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

// newTypesCmd creates the types command.
func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the allowed commit types",
		Long: `List the commit types offered by the interactive session and accepted
by check, with the case convention and maximum header length in effect.

Types come from the 'types' key of the config file, or the built-in
Conventional Commits set when it is empty.`,
		Args: cobra.NoArgs,
		RunE: runTypes,
	}
}

func runTypes(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	cfg, err := loadConfig(cmd, printer, openRepo(cmd, printer))
	if err != nil {
		printer.Error(err)
		return err
	}
	policy := cfg.Policy()
	types := policy.Types()

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"types":           types,
			"case_strategy":   policy.Strategy,
			"max_message_len": policy.MaxLen,
			"auto_case":       policy.AutoCase,
		})
	}

	rows := make([][]string, 0, len(types))
	for _, t := range types {
		rows = append(rows, []string{t.Name, t.Description})
	}
	printer.Table([]string{"TYPE", "DESCRIPTION"}, rows)
	printer.Println()
	printer.KeyValue("case", policy.Strategy.String())
	printer.KeyValue("max header length", strconv.Itoa(policy.MaxLen))
	return nil
}
