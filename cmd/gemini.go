package cmd

import (
	"github.com/spf13/cobra"
)

var geminiCmd = &cobra.Command{
	Use:   "gemini [-- args...]",
	Short: "💎 Launch Gemini CLI with the active profile",
	Long: `Launch Gemini CLI with the resolved MCP configuration merged into
~/.gemini/settings.json. Arguments after -- are passed to the gemini binary.

Example:
 aidev gemini
 aidev gemini --profile research`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTool(cmd, "gemini", args)
	},
}

func init() {
	rootCmd.AddCommand(geminiCmd)
}
