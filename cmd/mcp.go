package cmd

import (
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "🔌 Manage MCP server definitions",
	Long: `🔌 Manage MCP server definitions

Server definitions are the building blocks profiles compose. Built-in
definitions ship with aidev; more can be installed from the registry.

Subcommands:
  list     List installed server definitions
  search   Search the server registry
  show     Show one definition in detail
  install  Install a definition from the registry
  remove   Remove a custom definition
  test     Check a definition's command or endpoint
  browse   Browse the registry interactively
  serve    Start aidev's own MCP stdio server`,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
