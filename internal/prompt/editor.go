package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Editor edits text in an external program.
type Editor interface {
	// Edit returns the edited text. ok is false when the user left the
	// text unchanged, which counts as an abort.
	Edit(ctx context.Context, initial string) (text string, ok bool, err error)
}

// ExternalEditor runs a terminal editor on a temporary file.
type ExternalEditor struct {
	// Command overrides $VISUAL and $EDITOR. It may carry arguments,
	// e.g. "code --wait".
	Command string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ResolveEditor returns the editor command: configured, then $VISUAL, then
// $EDITOR, then vi.
func ResolveEditor(configured string) string {
	for _, candidate := range []string{configured, os.Getenv("VISUAL"), os.Getenv("EDITOR")} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return "vi"
}

// Edit implements Editor.
func (e ExternalEditor) Edit(ctx context.Context, initial string) (string, bool, error) {
	file, err := os.CreateTemp("", "conv-cmt-description-*.md")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	path := file.Name()
	defer func() { _ = os.Remove(path) }()

	if _, err := file.WriteString(initial); err != nil {
		_ = file.Close()
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}

	args := strings.Fields(ResolveEditor(e.Command))
	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = orDefault(e.Stdin, os.Stdin)
	cmd.Stdout = orDefaultWriter(e.Stdout, os.Stdout)
	cmd.Stderr = orDefaultWriter(e.Stderr, os.Stderr)
	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", false, fmt.Errorf("editor %q not found: %w", args[0], err)
		}
		return "", false, fmt.Errorf("running editor %q: %w", args[0], err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}
	if string(edited) == initial {
		return "", false, nil
	}
	return strings.TrimRight(string(edited), " \t\r\n"), true, nil
}

func orDefault(r io.Reader, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orDefaultWriter(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// Edit opens the configured editor.
func (t *Terminal) Edit(ctx context.Context, initial string) (string, bool, error) {
	return t.editor.Edit(ctx, initial)
}
