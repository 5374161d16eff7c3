// Package commit builds conventional commit messages.
//
// A [Builder] accumulates the parts of a commit header (type, optional scope,
// subject, breaking-change marker) plus an optional body, validating every
// mutation against a maximum header length and the active [CaseStrategy].
// Setters are transactional: a rejected mutation leaves the builder exactly as
// it was before the call.
//
//	b := commit.NewBuilder(commit.Lowercase, commit.DefaultMaxMessageLen)
//	if err := b.SetType(commit.CommitType{Name: "feat"}); err != nil { ... }
//	if err := b.SetScope("core"); err != nil { ... }
//	if err := b.SetSubject("add review menu"); err != nil { ... }
//	c, err := b.Build()
//	fmt.Println(c) // feat(core): add review menu
//
// # Errors
//
// Validation failures are one of [ErrMissingCommitType], [ErrMissingSubject],
// [*SubjectTooLongError] or [*CaseError]. [FieldOf] maps any of them to the
// [Component] a caller should ask for again.
package commit
