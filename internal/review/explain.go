package review

import (
	"errors"

	"github.com/wxxedu/conv-cmt/internal/commit"
)

// localizedError carries a translated message for a builder error.
type localizedError struct {
	msg string
	err error
}

func (e *localizedError) Error() string { return e.msg }
func (e *localizedError) Unwrap() error { return e.err }

var fieldMessages = map[commit.Component]string{
	commit.ComponentCommitType:     "field_commit_type",
	commit.ComponentScope:          "field_scope",
	commit.ComponentSubject:        "field_subject",
	commit.ComponentDescription:    "field_description",
	commit.ComponentBreakingChange: "field_breaking",
}

// explain translates a builder error for the prompter. Other errors are
// returned unchanged.
func (c *Controller) explain(err error) error {
	var (
		tooLong *commit.SubjectTooLongError
		caseErr *commit.CaseError
		unknown *commit.UnknownTypeError
		msg     string
	)
	switch {
	case errors.Is(err, commit.ErrMissingCommitType):
		msg = c.tr.T("error_missing_type")
	case errors.Is(err, commit.ErrMissingSubject):
		msg = c.tr.T("error_missing_subject")
	case errors.As(err, &tooLong) && tooLong.Available > 0:
		msg = c.tr.T("error_subject_too_long", map[string]any{
			"Actual":    tooLong.Actual,
			"Available": tooLong.Available,
		})
	case errors.As(err, &tooLong):
		msg = c.tr.T("error_subject_no_room", map[string]any{"Actual": tooLong.Actual})
	case errors.As(err, &caseErr):
		msg = c.tr.T("error_case", map[string]any{
			"Field":      c.tr.T(fieldMessages[caseErr.Component]),
			"Content":    caseErr.Content,
			"Strategy":   caseErr.Strategy.String(),
			"Suggestion": caseErr.Strategy.Apply(caseErr.Content),
		})
	case errors.As(err, &unknown):
		msg = c.tr.T("error_unknown_type", map[string]any{"Name": unknown.Name})
	default:
		return err
	}
	return &localizedError{msg: msg, err: err}
}
