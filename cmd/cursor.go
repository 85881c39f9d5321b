package cmd

import (
	"github.com/spf13/cobra"
)

var cursorCmd = &cobra.Command{
	Use:   "cursor [-- args...]",
	Short: "🖱️ Launch Cursor with the active profile",
	Long: `Launch Cursor with the resolved MCP configuration merged into
~/.cursor/mcp.json. Without arguments the current directory is opened.

Example:
 aidev cursor
 aidev cursor --profile minimal`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTool(cmd, "cursor", args)
	},
}

func init() {
	rootCmd.AddCommand(cursorCmd)
}
