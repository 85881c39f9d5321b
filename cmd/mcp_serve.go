package cmd

import (
	"github.com/spf13/cobra"

	aidevmcp "github.com/aidevhq/cli/pkg/mcp"
)

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "🚀 Start the aidev MCP server (stdio transport)",
	Long: `🚀 Start the aidev MCP server using stdio transport.

This command is typically invoked by AI clients (Claude Code, Cursor, etc.)
and communicates via stdin/stdout using the MCP JSON-RPC protocol. The
server exposes profile listings, requirement checks and config previews;
secret values are never returned.`,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	return aidevmcp.RunServer(cmd.Context())
}
