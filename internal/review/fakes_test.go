package review

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/wxxedu/conv-cmt/internal/git"
)

var errScriptExhausted = errors.New("script exhausted")

type stepKind string

const (
	kindSelect  stepKind = "select"
	kindMulti   stepKind = "multi"
	kindInput   stepKind = "input"
	kindConfirm stepKind = "confirm"
	kindEdit    stepKind = "edit"
)

// step is one scripted answer. label, when set, must be a substring of the
// prompt's label.
type step struct {
	kind  stepKind
	label string
	index int
	multi []bool
	text  string
	yes   bool
	ok    bool
}

func choose(i int) step { return step{kind: kindSelect, index: i} }
func chooseOn(label string, i int) step { return step{kind: kindSelect, label: label, index: i} }
func input(text string) step { return step{kind: kindInput, text: text} }
func inputOn(label, text string) step { return step{kind: kindInput, label: label, text: text} }
func confirm(yes bool) step { return step{kind: kindConfirm, yes: yes} }
func confirmOn(label string, yes bool) step {
	return step{kind: kindConfirm, label: label, yes: yes}
}
func edit(text string, ok bool) step { return step{kind: kindEdit, text: text, ok: ok} }
func pick(sel ...bool) step { return step{kind: kindMulti, multi: sel} }

// scriptedPrompter answers prompts from a fixed script and records what
// the controller showed.
type scriptedPrompter struct {
	steps    []step
	labels   []string
	options  [][]string
	defaults []int
	initials []string
	edited   []string
	previews []string
	reports  []error
	infos    []string
}

func script(steps ...step) *scriptedPrompter {
	return &scriptedPrompter{steps: steps}
}

func (p *scriptedPrompter) next(kind stepKind, label string) (step, error) {
	p.labels = append(p.labels, label)
	if len(p.steps) == 0 {
		return step{}, fmt.Errorf("%w: unexpected %s prompt %q", errScriptExhausted, kind, label)
	}
	s := p.steps[0]
	p.steps = p.steps[1:]
	if s.kind != kind {
		return step{}, fmt.Errorf("script wanted %s, controller asked %s %q", s.kind, kind, label)
	}
	if s.label != "" && !strings.Contains(label, s.label) {
		return step{}, fmt.Errorf("script wanted label containing %q, got %q", s.label, label)
	}
	return s, nil
}

func (p *scriptedPrompter) Select(label string, options []string, def int) (int, error) {
	p.options = append(p.options, slices.Clone(options))
	p.defaults = append(p.defaults, def)
	s, err := p.next(kindSelect, label)
	return s.index, err
}

func (p *scriptedPrompter) MultiSelect(label string, options []string, selected []bool) ([]bool, error) {
	p.options = append(p.options, slices.Clone(options))
	s, err := p.next(kindMulti, label)
	if s.multi == nil {
		return slices.Clone(selected), err
	}
	return s.multi, err
}

func (p *scriptedPrompter) Input(label, initial string) (string, error) {
	p.initials = append(p.initials, initial)
	s, err := p.next(kindInput, label)
	return s.text, err
}

func (p *scriptedPrompter) Confirm(label string, _ bool) (bool, error) {
	s, err := p.next(kindConfirm, label)
	return s.yes, err
}

func (p *scriptedPrompter) Edit(_ context.Context, initial string) (string, bool, error) {
	p.edited = append(p.edited, initial)
	s, err := p.next(kindEdit, "editor")
	return s.text, s.ok, err
}

func (p *scriptedPrompter) Preview(_, body string) { p.previews = append(p.previews, body) }
func (p *scriptedPrompter) Report(err error) { p.reports = append(p.reports, err) }
func (p *scriptedPrompter) Info(msg string) { p.infos = append(p.infos, msg) }

// fakeRepo is an in-memory work tree.
type fakeRepo struct {
	changes    []git.Change
	messages   []string
	commitErrs []error
	pushErrs   []error
	pushes     int
	tag        string
	staged     []string
	unstaged   []string
}

func (r *fakeRepo) Changes(context.Context) ([]git.Change, error) {
	return slices.Clone(r.changes), nil
}

func (r *fakeRepo) find(path string) *git.Change {
	for i := range r.changes {
		if r.changes[i].Path == path || r.changes[i].OrigPath == path {
			return &r.changes[i]
		}
	}
	return nil
}

func (r *fakeRepo) Stage(_ context.Context, path string) error {
	c := r.find(path)
	if c == nil {
		return fmt.Errorf("pathspec %q did not match any files", path)
	}
	r.staged = append(r.staged, path)
	switch c.Worktree {
	case '?':
		c.Index = 'A'
	case 'D':
		c.Index = 'D'
	default:
		if c.Index == ' ' {
			c.Index = 'M'
		}
	}
	c.Worktree = ' '
	return nil
}

func (r *fakeRepo) Unstage(_ context.Context, path string) error {
	c := r.find(path)
	if c == nil {
		return fmt.Errorf("pathspec %q did not match any files", path)
	}
	r.unstaged = append(r.unstaged, path)
	if c.Index == 'A' {
		c.Index, c.Worktree = '?', '?'
		return nil
	}
	c.Worktree = c.Index
	c.Index = ' '
	return nil
}

func (r *fakeRepo) Commit(_ context.Context, message string) (string, error) {
	if len(r.commitErrs) > 0 {
		err := r.commitErrs[0]
		r.commitErrs = r.commitErrs[1:]
		if err != nil {
			return "", err
		}
	}
	r.messages = append(r.messages, message)
	return fmt.Sprintf("c0ffee%d", len(r.messages)), nil
}

func (r *fakeRepo) Push(context.Context) (string, error) {
	if len(r.pushErrs) > 0 {
		err := r.pushErrs[0]
		r.pushErrs = r.pushErrs[1:]
		if err != nil {
			return "", err
		}
	}
	r.pushes++
	return "", nil
}

func (r *fakeRepo) LatestTag(context.Context) (string, error) {
	return r.tag, nil
}
