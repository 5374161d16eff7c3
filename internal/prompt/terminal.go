// Package prompt asks questions on a line-oriented terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wxxedu/conv-cmt/internal/i18n"
	"github.com/wxxedu/conv-cmt/internal/output"
)

// ErrInputClosed is returned when the input ends before an answer.
var ErrInputClosed = errors.New("input closed")

// Terminal reads answers line by line from an input stream and writes
// menus to an output stream.
type Terminal struct {
	in     *bufio.Reader
	out    io.Writer
	color  bool
	styles *output.Styles
	tr     *i18n.Translator
	editor Editor
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithColor enables styled prompts.
func WithColor(color bool) Option {
	return func(t *Terminal) {
		t.color = color
		t.styles = output.NewStyles(color)
	}
}

// WithTranslator sets the language of hints and menus.
func WithTranslator(tr *i18n.Translator) Option {
	return func(t *Terminal) { t.tr = tr }
}

// WithEditor sets how descriptions are edited.
func WithEditor(e Editor) Option {
	return func(t *Terminal) { t.editor = e }
}

// NewTerminal returns a Terminal over in and out. Defaults are plain
// styles, English and the environment's editor.
func NewTerminal(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		in:     bufio.NewReader(in),
		out:    out,
		styles: output.NewStyles(false),
		tr:     i18n.MustNew(i18n.DefaultLanguage),
		editor: ExternalEditor{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Terminal) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(t.out, format, args...); err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}

func (t *Terminal) question(label string) string {
	return t.styles.Accent.Render("?") + " " + t.styles.Bold.Render(label)
}

// readLine returns the next line without its line ending. A final line
// without a newline is returned; an empty read at end of input is
// ErrInputClosed.
func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Select shows a numbered menu and returns the chosen index. An empty
// answer picks def when def is a valid index.
func (t *Terminal) Select(label string, options []string, def int) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("select: no options")
	}
	bounds := map[string]any{"Max": len(options)}
	t.printf("%s\n", t.question(label))
	for i, opt := range options {
		marker := " "
		if i == def {
			marker = t.styles.Accent.Render("›")
		}
		t.printf("%s %s %s\n", marker, t.styles.Dim.Render(fmt.Sprintf("%2d)", i+1)), opt)
	}
	for {
		t.printf("%s ", t.tr.T("menu_choose", bounds)+":")
		line, err := t.readLine()
		if err != nil {
			return 0, err
		}
		line = strings.TrimSpace(line)
		if line == "" && def >= 0 && def < len(options) {
			return def, nil
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		t.printf("%s\n", t.styles.Warning.Render(t.tr.T("menu_invalid", bounds)))
	}
}

// MultiSelect shows a checklist and returns the final selection. Numbers
// toggle entries, "a" selects all, "n" clears, and an empty line accepts.
func (t *Terminal) MultiSelect(label string, options []string, selected []bool) ([]bool, error) {
	sel := make([]bool, len(options))
	copy(sel, selected)

	for {
		t.printf("%s\n", t.question(label))
		for i, opt := range options {
			box := "[ ]"
			if sel[i] {
				box = t.styles.Success.Render("[x]")
			}
			t.printf("  %s %s %s\n", t.styles.Dim.Render(fmt.Sprintf("%2d)", i+1)), box, opt)
		}
		t.printf("%s\n> ", t.styles.Dim.Render(t.tr.T("multi_hint")))

		line, err := t.readLine()
		if err != nil {
			return nil, err
		}
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == ',' })
		if len(fields) == 0 {
			return sel, nil
		}
		for _, f := range fields {
			switch strings.ToLower(f) {
			case "a":
				for i := range sel {
					sel[i] = true
				}
			case "n":
				for i := range sel {
					sel[i] = false
				}
			default:
				n, err := strconv.Atoi(f)
				if err != nil || n < 1 || n > len(options) {
					t.printf("%s\n", t.styles.Warning.Render(t.tr.T("multi_invalid", map[string]any{"Input": f})))
					continue
				}
				sel[n-1] = !sel[n-1]
			}
		}
	}
}

// Input asks for a line of text. An empty answer returns initial.
func (t *Terminal) Input(label, initial string) (string, error) {
	if initial != "" {
		t.printf("%s %s ", t.question(label), t.styles.Dim.Render("("+initial+")"))
	} else {
		t.printf("%s ", t.question(label))
	}
	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) == "" {
		return initial, nil
	}
	return line, nil
}

// Confirm asks a yes/no question. An empty answer returns def.
func (t *Terminal) Confirm(label string, def bool) (bool, error) {
	t.printf("%s %s ", t.question(label), t.styles.Dim.Render(t.tr.T("confirm_hint")))
	line, err := t.readLine()
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "" {
		return def, nil
	}
	for _, yes := range strings.Split(t.tr.T("answer_yes"), ",") {
		if answer == strings.TrimSpace(yes) {
			return true, nil
		}
	}
	return false, nil
}

// Preview shows a rendered commit message.
func (t *Terminal) Preview(title, body string) {
	t.printf("%s\n", output.RenderBox(t.styles, t.color, title, body))
}

// Report shows an error the user can correct.
func (t *Terminal) Report(err error) {
	t.printf("%s %s\n", t.styles.Error.Render("✗"), err.Error())
}

// Info shows a status line.
func (t *Terminal) Info(msg string) {
	t.printf("%s %s\n", t.styles.Success.Render("✓"), msg)
}
