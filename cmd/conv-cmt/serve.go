package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	convmcp "github.com/wxxedu/conv-cmt/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run conv-cmt as a Model Context Protocol (MCP) server over stdio.

Agents can list the commit types, validate messages, inspect the working
tree and commit staged changes with a validated message.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "conv-cmt": {
        "command": "conv-cmt",
        "args": ["serve"]
      }
    }
  }

Available tools: commit_types, compose, status, commit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			repo := openRepo(cmd, printer)
			cfg, err := loadConfig(cmd, printer, repo)
			if err != nil {
				return err
			}

			var r convmcp.Repository
			if repo != nil {
				r = repo
			}
			server := convmcp.NewServer(buildVersion(), cfg.Policy(), r)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
