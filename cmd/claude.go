package cmd

import (
	"github.com/spf13/cobra"
)

var claudeCmd = &cobra.Command{
	Use:   "claude [-- args...]",
	Short: "🤖 Launch Claude Code with the active profile",
	Long: `Launch Claude Code with the resolved MCP configuration and layered
environment. Arguments after -- are passed to the claude binary verbatim.

Example:
 aidev claude
 aidev claude --profile research
 aidev claude -- --continue`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTool(cmd, "claude", args)
	},
}

func init() {
	rootCmd.AddCommand(claudeCmd)
}
