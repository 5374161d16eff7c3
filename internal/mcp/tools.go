package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wxxedu/conv-cmt/internal/commit"
	"github.com/wxxedu/conv-cmt/internal/git"
)

var errNoRepository = errors.New("not in a git repository")

// --- commit_types ---

// CommitTypesInput takes no parameters.
type CommitTypesInput struct{}

// CommitTypesOutput describes the validation rules.
type CommitTypesOutput struct {
	Types         []commit.CommitType `json:"types"           jsonschema:"allowed commit types in menu order"`
	CaseStrategy  string              `json:"case_strategy"   jsonschema:"case convention for scope and subject"`
	MaxMessageLen int                 `json:"max_message_len" jsonschema:"maximum header length excluding the colon and space"`
	AutoCase      bool                `json:"auto_case"       jsonschema:"whether scope and subject are converted automatically"`
}

func handleCommitTypes(policy commit.Policy) mcp.ToolHandlerFor[CommitTypesInput, CommitTypesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ CommitTypesInput) (*mcp.CallToolResult, CommitTypesOutput, error) {
		return nil, CommitTypesOutput{
			Types:         policy.Types(),
			CaseStrategy:  policy.Strategy.String(),
			MaxMessageLen: policy.NewBuilder().MaxLen(),
			AutoCase:      policy.AutoCase,
		}, nil
	}
}

// --- compose ---

// ComposeOutput is a rendered message or the reason it was rejected.
type ComposeOutput struct {
	Valid     bool   `json:"valid"               jsonschema:"whether the fields form a valid message"`
	Header    string `json:"header,omitempty"    jsonschema:"first line of the message"`
	Message   string `json:"message,omitempty"   jsonschema:"full commit message"`
	Error     string `json:"error,omitempty"     jsonschema:"validation error"`
	Field     string `json:"field,omitempty"     jsonschema:"field to change to fix the error"`
	Available *int   `json:"available,omitempty" jsonschema:"characters left for the subject when it is too long"`
}

func handleCompose(policy commit.Policy) mcp.ToolHandlerFor[commit.Fields, ComposeOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in commit.Fields) (*mcp.CallToolResult, ComposeOutput, error) {
		c, err := policy.Compose(in)
		if err != nil {
			return nil, rejected(err), nil
		}
		return nil, ComposeOutput{Valid: true, Header: c.Header(), Message: c.String()}, nil
	}
}

func rejected(err error) ComposeOutput {
	out := ComposeOutput{Error: err.Error()}
	if field, ok := commit.FieldOf(err); ok {
		out.Field = field.String()
	}
	var tooLong *commit.SubjectTooLongError
	if errors.As(err, &tooLong) {
		available := tooLong.Available
		out.Available = &available
	}
	return out
}

// --- status ---

// StatusInput takes no parameters.
type StatusInput struct{}

// ChangeSummary is one working tree change.
type ChangeSummary struct {
	Path     string `json:"path"                jsonschema:"path relative to the repository root"`
	OrigPath string `json:"orig_path,omitempty" jsonschema:"source path of a rename or copy"`
	Status   string `json:"status"              jsonschema:"two-letter porcelain status code"`
	Kind     string `json:"kind"                jsonschema:"modified, added, deleted, renamed, untracked..."`
	Staged   bool   `json:"staged"              jsonschema:"whether the change is in the index"`
}

// StatusOutput lists working tree changes.
type StatusOutput struct {
	Changes []ChangeSummary `json:"changes"`
	Staged  int             `json:"staged" jsonschema:"number of staged changes"`
}

func handleStatus(repo Repository) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		if repo == nil {
			return nil, StatusOutput{}, errNoRepository
		}
		changes, err := repo.Changes(ctx)
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("listing changes: %w", err)
		}
		out := StatusOutput{Changes: make([]ChangeSummary, 0, len(changes))}
		for _, c := range changes {
			out.Changes = append(out.Changes, ChangeSummary{
				Path:     c.Path,
				OrigPath: c.OrigPath,
				Status:   c.Code(),
				Kind:     c.Kind(),
				Staged:   c.Staged(),
			})
			if c.Staged() {
				out.Staged++
			}
		}
		return nil, out, nil
	}
}

// --- commit ---

// CommitOutput reports the new commit.
type CommitOutput struct {
	Hash    string `json:"hash"    jsonschema:"abbreviated hash of the new commit"`
	Message string `json:"message" jsonschema:"the commit message used"`
}

func handleCommit(policy commit.Policy, repo Repository) mcp.ToolHandlerFor[commit.Fields, CommitOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in commit.Fields) (*mcp.CallToolResult, CommitOutput, error) {
		if repo == nil {
			return nil, CommitOutput{}, errNoRepository
		}
		c, err := policy.Compose(in)
		if err != nil {
			return nil, CommitOutput{}, fmt.Errorf("invalid commit message: %w", err)
		}

		changes, err := repo.Changes(ctx)
		if err != nil {
			return nil, CommitOutput{}, fmt.Errorf("listing changes: %w", err)
		}
		if !anyStaged(changes) {
			return nil, CommitOutput{}, errors.New("nothing is staged; stage changes before committing")
		}

		hash, err := repo.Commit(ctx, c.String())
		if err != nil {
			return nil, CommitOutput{}, fmt.Errorf("committing: %w", err)
		}
		return nil, CommitOutput{Hash: hash, Message: c.String()}, nil
	}
}

func anyStaged(changes []git.Change) bool {
	for _, c := range changes {
		if c.Staged() {
			return true
		}
	}
	return false
}
