package review

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/wxxedu/conv-cmt/internal/commit"
	"github.com/wxxedu/conv-cmt/internal/i18n"
	"github.com/wxxedu/conv-cmt/internal/release"
)

var (
	// ErrQuit is returned by Run when the user quits without committing.
	ErrQuit = errors.New("quit without committing")

	// ErrNoChanges is returned by Run when the work tree has nothing to
	// commit.
	ErrNoChanges = errors.New("no changes to commit")
)

// State is a step of the session.
type State int

// Session states in the order a session without revisions visits them.
const (
	StateStage State = iota
	StateAskType
	StateAskScope
	StateAskSubject
	StateAskDescription
	StateAskBreaking
	StateBuild
	StateReview
	StateCommit
	StatePush
	StateDone
	StateQuit
)

var stateNames = [...]string{
	"stage", "type", "scope", "subject", "description", "breaking",
	"build", "review", "commit", "push", "done", "quit",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Review menu entries, in display order.
const (
	menuConfirm = iota
	menuType
	menuScope
	menuSubject
	menuDescription
	menuBreaking
	menuQuit
)

// Options configures a session.
type Options struct {
	Catalog  commit.Catalog
	Strategy commit.CaseStrategy
	// MaxLen is the header limit; zero selects commit.DefaultMaxMessageLen.
	MaxLen int
	// AutoCase converts scope and subject answers to the strategy's case
	// before validation.
	AutoCase bool
	// DryRun ends the session at Confirm without committing.
	DryRun bool
	// StageAll stages every change without asking.
	StageAll bool
	// SkipStage commits the index as it is.
	SkipStage bool
	// SkipPush never offers to push.
	SkipPush bool
	// Messages localizes prompts. Nil means English.
	Messages *i18n.Translator
}

// Deps are the session's collaborators. Changes, Pusher and Tags are
// optional; Committer is required unless Options.DryRun is set.
type Deps struct {
	Changes   ChangeSet
	Committer Committer
	Pusher    Pusher
	Tags      TagSource
}

// Result describes a finished session.
type Result struct {
	Commit  commit.Commit
	Hash    string
	Staged  int
	DryRun  bool
	Pushed  bool
	Release *release.Suggestion
}

// Controller runs one session. It is not safe for concurrent use.
type Controller struct {
	prompter Prompter
	opts     Options
	deps     Deps
	tr       *i18n.Translator
	builder  *commit.Builder
	built    commit.Commit
	result   Result
	trace    []State
}

// New returns a Controller with an empty builder.
func New(p Prompter, opts Options, deps Deps) *Controller {
	if len(opts.Catalog) == 0 {
		opts.Catalog = commit.DefaultCatalog()
	}
	tr := opts.Messages
	if tr == nil {
		tr = i18n.MustNew(i18n.DefaultLanguage)
	}
	return &Controller{
		prompter: p,
		opts:     opts,
		deps:     deps,
		tr:       tr,
		builder:  commit.NewBuilder(opts.Strategy, opts.MaxLen),
	}
}

// Builder exposes the session's builder.
func (c *Controller) Builder() *commit.Builder {
	return c.builder
}

// Trace returns the states visited so far.
func (c *Controller) Trace() []State {
	return append([]State(nil), c.trace...)
}

// Run drives the session until the commit is done or the user quits.
// A confirmed quit returns ErrQuit; prompt and git failures are returned
// as they are.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	if c.deps.Committer == nil && !c.opts.DryRun {
		return Result{}, errors.New("review: no committer configured")
	}

	state := StateStage
	for {
		if err := ctx.Err(); err != nil {
			return c.result, err
		}
		c.trace = append(c.trace, state)

		var err error
		switch state {
		case StateStage:
			state, err = c.stage(ctx)
		case StateAskType:
			err = c.ask(ctx, commit.ComponentCommitType)
			state = StateAskScope
		case StateAskScope:
			err = c.ask(ctx, commit.ComponentScope)
			state = StateAskSubject
		case StateAskSubject:
			err = c.ask(ctx, commit.ComponentSubject)
			state = StateAskDescription
		case StateAskDescription:
			err = c.ask(ctx, commit.ComponentDescription)
			state = StateAskBreaking
		case StateAskBreaking:
			err = c.ask(ctx, commit.ComponentBreakingChange)
			state = StateBuild
		case StateBuild:
			state, err = c.build(ctx)
		case StateReview:
			state, err = c.review(ctx)
		case StateCommit:
			state, err = c.commit(ctx)
		case StatePush:
			state, err = c.push(ctx)
		case StateDone:
			c.result.Commit = c.built
			return c.result, nil
		case StateQuit:
			return c.result, ErrQuit
		default:
			return c.result, fmt.Errorf("review: unknown state %s", state)
		}
		if err != nil {
			return c.result, err
		}
	}
}

// ask prompts for one field. Validation errors are shown and the field
// they name is asked for. When that is a different field, the original one
// is asked again once it is accepted, so a rolled-back revision is never
// dropped silently.
func (c *Controller) ask(ctx context.Context, field commit.Component) error {
	pending := []commit.Component{field}
	for len(pending) > 0 {
		current := pending[len(pending)-1]
		err := c.askOnce(ctx, current)
		if err == nil {
			pending = pending[:len(pending)-1]
			continue
		}
		next, ok := commit.FieldOf(err)
		if !ok {
			return err
		}
		c.prompter.Report(c.explain(err))
		if i := slices.Index(pending, next); i >= 0 {
			pending = pending[:i+1]
		} else {
			pending = append(pending, next)
		}
	}
	return nil
}

func (c *Controller) askOnce(ctx context.Context, field commit.Component) error {
	draft := c.builder.Snapshot()
	switch field {
	case commit.ComponentCommitType:
		return c.askType(draft)
	case commit.ComponentScope:
		scope, err := c.prompter.Input(c.tr.T("prompt_scope"), deref(draft.Scope))
		if err != nil {
			return err
		}
		if scope = c.normalize(scope); scope == "" {
			return nil
		}
		return c.builder.SetScope(scope)
	case commit.ComponentSubject:
		subject, err := c.prompter.Input(c.subjectLabel(), deref(draft.Subject))
		if err != nil {
			return err
		}
		if subject = c.normalize(subject); subject == "" {
			return nil
		}
		return c.builder.SetSubject(subject)
	case commit.ComponentDescription:
		return c.askDescription(ctx, draft)
	case commit.ComponentBreakingChange:
		breaking, err := c.prompter.Confirm(c.tr.T("prompt_breaking"), draft.Breaking)
		if err != nil {
			return err
		}
		return c.builder.SetBreaking(breaking)
	default:
		return fmt.Errorf("review: unknown field %s", field)
	}
}

func (c *Controller) subjectLabel() string {
	return c.tr.T("prompt_subject", map[string]any{
		"Available": max(0, c.builder.MaxLen()-c.builder.PrefixLen()),
	})
}

func (c *Controller) askType(draft commit.Draft) error {
	labels := make([]string, len(c.opts.Catalog))
	for i, t := range c.opts.Catalog {
		labels[i] = t.String()
	}
	def := -1
	if draft.Type != nil {
		def = c.opts.Catalog.Index(draft.Type.Name)
	}
	i, err := c.prompter.Select(c.tr.T("prompt_type"), labels, def)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(c.opts.Catalog) {
		return fmt.Errorf("review: type index %d out of range", i)
	}
	return c.builder.SetType(c.opts.Catalog[i])
}

// askDescription asks whether to write a body, then opens the editor.
// When a body exists the confirm is skipped. An aborted or empty edit
// leaves the builder alone.
func (c *Controller) askDescription(ctx context.Context, draft commit.Draft) error {
	current := deref(draft.Description)
	if current == "" {
		add, err := c.prompter.Confirm(c.tr.T("prompt_add_description"), false)
		if err != nil || !add {
			return err
		}
	}
	text, ok, err := c.prompter.Edit(ctx, current)
	if err != nil {
		return err
	}
	if !ok || strings.TrimSpace(text) == "" {
		return nil
	}
	c.builder.SetDescription(text)
	return nil
}

func (c *Controller) normalize(text string) string {
	text = strings.TrimSpace(text)
	if c.opts.AutoCase {
		text = c.opts.Strategy.Apply(text)
	}
	return text
}

func (c *Controller) build(ctx context.Context) (State, error) {
	built, err := c.builder.Build()
	if err == nil {
		c.built = built
		return StateReview, nil
	}
	field, ok := commit.FieldOf(err)
	if !ok {
		return StateBuild, err
	}
	c.prompter.Report(c.explain(err))
	return StateBuild, c.ask(ctx, field)
}

func (c *Controller) review(ctx context.Context) (State, error) {
	c.prompter.Preview(c.tr.T("review_title"), c.built.String())

	options := []string{
		c.tr.T("review_confirm"),
		c.tr.T("review_type"),
		c.tr.T("review_scope"),
		c.tr.T("review_subject"),
		c.tr.T("review_description"),
		c.tr.T("review_breaking"),
		c.tr.T("review_quit"),
	}
	choice, err := c.prompter.Select(c.tr.T("review_prompt"), options, menuConfirm)
	if err != nil {
		return StateReview, err
	}

	switch choice {
	case menuConfirm:
		return StateCommit, nil
	case menuType:
		return StateBuild, c.ask(ctx, commit.ComponentCommitType)
	case menuScope:
		return StateBuild, c.ask(ctx, commit.ComponentScope)
	case menuSubject:
		return StateBuild, c.ask(ctx, commit.ComponentSubject)
	case menuDescription:
		return StateBuild, c.ask(ctx, commit.ComponentDescription)
	case menuBreaking:
		return StateBuild, c.ask(ctx, commit.ComponentBreakingChange)
	case menuQuit:
		quit, err := c.prompter.Confirm(c.tr.T("confirm_quit"), false)
		if err != nil {
			return StateReview, err
		}
		if quit {
			return StateQuit, nil
		}
		return StateReview, nil
	default:
		return StateReview, fmt.Errorf("review: menu index %d out of range", choice)
	}
}

func (c *Controller) commit(ctx context.Context) (State, error) {
	if c.opts.DryRun {
		c.result.DryRun = true
		c.prompter.Info(c.tr.T("dry_run"))
		return StateDone, nil
	}

	hash, err := c.deps.Committer.Commit(ctx, c.built.String())
	if err != nil {
		c.prompter.Report(errors.New(c.tr.T("commit_failed", map[string]any{"Error": err.Error()})))
		return StateReview, nil
	}
	c.result.Hash = hash
	c.prompter.Info(c.tr.T("committed", map[string]any{"Hash": hash}))
	c.suggestRelease(ctx)
	return StatePush, nil
}

func (c *Controller) suggestRelease(ctx context.Context) {
	if c.deps.Tags == nil {
		return
	}
	tag, err := c.deps.Tags.LatestTag(ctx)
	if err != nil {
		return
	}
	s, ok := release.Suggest(tag, c.built)
	if !ok {
		return
	}
	c.result.Release = &s
	c.prompter.Info(c.tr.T("release_suggestion", map[string]any{
		"Level":   s.Level.String(),
		"Tag":     s.Tag,
		"Version": s.Version,
	}))
}

func (c *Controller) push(ctx context.Context) (State, error) {
	if c.opts.SkipPush || c.deps.Pusher == nil {
		return StateDone, nil
	}
	ok, err := c.prompter.Confirm(c.tr.T("confirm_push"), false)
	if err != nil {
		return StatePush, err
	}
	if !ok {
		return StateDone, nil
	}
	if _, err := c.deps.Pusher.Push(ctx); err != nil {
		c.prompter.Report(errors.New(c.tr.T("push_failed", map[string]any{"Error": err.Error()})))
		return StatePush, nil
	}
	c.result.Pushed = true
	c.prompter.Info(c.tr.T("pushed"))
	return StateDone, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
