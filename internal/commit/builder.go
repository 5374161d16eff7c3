package commit

import "unicode/utf8"

// DefaultMaxMessageLen is the default maximum length of a rendered header.
const DefaultMaxMessageLen = 72

// Draft is the field state of a Builder. Nil pointers are unset fields.
type Draft struct {
	Type        *CommitType
	Scope       *string
	Subject     *string
	Description *string
	Breaking    bool
}

// clone returns a copy that shares no pointers with d.
func (d Draft) clone() Draft {
	out := Draft{Breaking: d.Breaking}
	if d.Type != nil {
		t := *d.Type
		out.Type = &t
	}
	out.Scope = cloneString(d.Scope)
	out.Subject = cloneString(d.Subject)
	out.Description = cloneString(d.Description)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Builder accumulates commit fields and validates each mutation.
// A Builder is owned by a single goroutine.
type Builder struct {
	draft    Draft
	strategy CaseStrategy
	maxLen   int
}

// NewBuilder returns an empty builder. A non-positive maxLen selects
// DefaultMaxMessageLen.
func NewBuilder(strategy CaseStrategy, maxLen int) *Builder {
	if maxLen <= 0 {
		maxLen = DefaultMaxMessageLen
	}
	return &Builder{strategy: strategy, maxLen: maxLen}
}

// Strategy returns the active case strategy.
func (b *Builder) Strategy() CaseStrategy {
	return b.strategy
}

// MaxLen returns the maximum header length.
func (b *Builder) MaxLen() int {
	return b.maxLen
}

// Snapshot returns a copy of the current field state.
func (b *Builder) Snapshot() Draft {
	return b.draft.clone()
}

// PrefixLen is the header length taken by the type, the parenthesized scope
// and the breaking marker.
func (b *Builder) PrefixLen() int {
	n := 0
	if b.draft.Type != nil {
		n += b.draft.Type.Len()
	}
	if b.draft.Scope != nil {
		n += utf8.RuneCountInString(*b.draft.Scope) + 2
	}
	if b.draft.Breaking {
		n++
	}
	return n
}

// MessageLen is the length of the subject, or 0 when unset.
func (b *Builder) MessageLen() int {
	if b.draft.Subject == nil {
		return 0
	}
	return utf8.RuneCountInString(*b.draft.Subject)
}

// checkLength validates the total header length of the current state.
func (b *Builder) checkLength() error {
	if b.PrefixLen()+b.MessageLen() > b.maxLen {
		return &SubjectTooLongError{
			Available: b.maxLen - b.PrefixLen(),
			Actual:    b.MessageLen(),
		}
	}
	return nil
}

// mutate applies change and keeps it only if the length limit still holds.
func (b *Builder) mutate(change func(*Draft)) error {
	saved := b.draft
	change(&b.draft)
	if err := b.checkLength(); err != nil {
		b.draft = saved
		return err
	}
	return nil
}

// SetType sets the commit type.
func (b *Builder) SetType(t CommitType) error {
	return b.mutate(func(d *Draft) { d.Type = &t })
}

// SetScope sets the scope after checking it against the case strategy.
func (b *Builder) SetScope(scope string) error {
	if !b.strategy.Verify(scope) {
		return &CaseError{Component: ComponentScope, Content: scope, Strategy: b.strategy}
	}
	return b.mutate(func(d *Draft) { d.Scope = &scope })
}

// SetSubject sets the subject. The length limit is the one left by the
// prefix at the time of the call.
func (b *Builder) SetSubject(subject string) error {
	if !b.strategy.Verify(subject) {
		return &CaseError{Component: ComponentSubject, Content: subject, Strategy: b.strategy}
	}
	available := b.maxLen - b.PrefixLen()
	if n := utf8.RuneCountInString(subject); n > available {
		return &SubjectTooLongError{Available: available, Actual: n}
	}
	b.draft.Subject = &subject
	return nil
}

// SetDescription sets the body. It is not length or case checked.
func (b *Builder) SetDescription(description string) {
	b.draft.Description = &description
}

// MarkBreaking adds the breaking-change marker.
func (b *Builder) MarkBreaking() error {
	return b.SetBreaking(true)
}

// SetBreaking sets or clears the breaking-change marker. Clearing always
// succeeds since it only shortens the header.
func (b *Builder) SetBreaking(breaking bool) error {
	return b.mutate(func(d *Draft) { d.Breaking = breaking })
}

// Build returns the finished commit. The type is checked before the subject.
func (b *Builder) Build() (Commit, error) {
	if b.draft.Type == nil {
		return Commit{}, ErrMissingCommitType
	}
	if b.draft.Subject == nil {
		return Commit{}, ErrMissingSubject
	}
	if err := b.checkLength(); err != nil {
		return Commit{}, err
	}
	d := b.draft.clone()
	return Commit{
		commitType:  *d.Type,
		scope:       d.Scope,
		subject:     *d.Subject,
		description: d.Description,
		breaking:    d.Breaking,
	}, nil
}
