// Package output renders conv-cmt results for people and for scripts.
//
// A Printer writes either styled text or JSON, chosen by the --json flag:
//
//	p := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, color)
//	p.Box("Commit message", c.String())
//	p.Success(map[string]any{"message": "Committed", "hash": hash})
//
// Styling uses lipgloss and is disabled when color is false, which is the
// case when output is piped unless --color=always is given.
//
// Errors carry exit codes through ExitError. GetExitCode maps any error to
// the code the process should exit with; see the Exit* constants.
package output
