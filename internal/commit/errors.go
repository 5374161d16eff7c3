package commit

import (
	"errors"
	"fmt"
)

// Component names a field of a commit message.
type Component int

// Commit message components, in prompt order.
const (
	ComponentCommitType Component = iota
	ComponentScope
	ComponentSubject
	ComponentDescription
	ComponentBreakingChange
)

// String returns a human-readable component name.
func (c Component) String() string {
	switch c {
	case ComponentCommitType:
		return "commit type"
	case ComponentScope:
		return "scope"
	case ComponentSubject:
		return "subject"
	case ComponentDescription:
		return "description"
	case ComponentBreakingChange:
		return "breaking change"
	default:
		return fmt.Sprintf("Component(%d)", int(c))
	}
}

// ErrMissingCommitType is returned by Build when no type was set.
var ErrMissingCommitType = errors.New("no commit type selected")

// ErrMissingSubject is returned by Build when no subject was set.
var ErrMissingSubject = errors.New("no subject entered")

// SubjectTooLongError reports that the rendered header would exceed the
// maximum length. Available is the subject length left by the current prefix
// and may be negative when the prefix alone is already too long.
type SubjectTooLongError struct {
	Available int
	Actual    int
}

// Error implements the error interface.
func (e *SubjectTooLongError) Error() string {
	if e.Available <= 0 {
		return fmt.Sprintf("subject is too long: %d characters, but the type, scope and breaking marker leave no room for a subject", e.Actual)
	}
	return fmt.Sprintf("subject is too long: %d characters, only %d available", e.Actual, e.Available)
}

// CaseError reports text that does not satisfy the active case strategy.
type CaseError struct {
	Component Component
	Content   string
	Strategy  CaseStrategy
}

// Error implements the error interface.
func (e *CaseError) Error() string {
	return fmt.Sprintf("%s %q does not match the %s case convention (expected %q)",
		e.Component, e.Content, e.Strategy, e.Strategy.Apply(e.Content))
}

// UnknownTypeError reports a type name missing from the catalog.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown commit type %q", e.Name)
}

// FieldOf returns the component that has to be supplied again to recover
// from err. The second result is false when err is not a commit error.
func FieldOf(err error) (Component, bool) {
	if err == nil {
		return 0, false
	}
	if errors.Is(err, ErrMissingCommitType) {
		return ComponentCommitType, true
	}
	if errors.Is(err, ErrMissingSubject) {
		return ComponentSubject, true
	}
	var tooLong *SubjectTooLongError
	if errors.As(err, &tooLong) {
		return ComponentSubject, true
	}
	var caseErr *CaseError
	if errors.As(err, &caseErr) {
		return caseErr.Component, true
	}
	var unknown *UnknownTypeError
	if errors.As(err, &unknown) {
		return ComponentCommitType, true
	}
	return 0, false
}
