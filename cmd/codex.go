package cmd

import (
	"github.com/spf13/cobra"
)

var codexCmd = &cobra.Command{
	Use:   "codex [-- args...]",
	Short: "📟 Launch Codex CLI with the active profile",
	Long: `Launch Codex CLI with the resolved MCP configuration merged into
~/.codex/config.toml. Arguments after -- are passed to the codex binary.

Example:
 aidev codex
 aidev codex --profile persistent`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTool(cmd, "codex", args)
	},
}

func init() {
	rootCmd.AddCommand(codexCmd)
}
