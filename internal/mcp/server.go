// Package mcp serves conv-cmt over the Model Context Protocol so agents
// can compose and record conventional commits.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wxxedu/conv-cmt/internal/commit"
	"github.com/wxxedu/conv-cmt/internal/git"
)

// Repository is the part of a git work tree the tools use.
type Repository interface {
	Changes(ctx context.Context) ([]git.Change, error)
	Commit(ctx context.Context, message string) (string, error)
}

// NewServer creates an MCP server with all conv-cmt tools registered.
// repo may be nil outside a repository; status and commit then fail.
func NewServer(version string, policy commit.Policy, repo Repository) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "conv-cmt",
		Version: version,
	}, nil)
	registerTools(server, policy, repo)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations marks tools that add history without rewriting it.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, policy commit.Policy, repo Repository) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "commit_types",
		Description: "List the allowed commit types with the case convention and maximum header length used to validate messages.",
		Annotations: readOnlyAnnotations(),
	}, handleCommitTypes(policy))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compose",
		Description: "Validate commit fields and render the conventional commit message. Invalid input is reported with the field to fix.",
		Annotations: readOnlyAnnotations(),
	}, handleCompose(policy))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "List working tree changes and whether each one is staged.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(repo))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "commit",
		Description: "Compose a conventional commit message from fields and commit the staged changes with it.",
		Annotations: writeAnnotations(),
	}, handleCommit(policy, repo))
}
