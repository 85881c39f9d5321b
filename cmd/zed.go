package cmd

import (
	"github.com/spf13/cobra"
)

var zedCmd = &cobra.Command{
	Use:   "zed [-- args...]",
	Short: "⚡ Launch Zed with the active profile",
	Long: `Launch Zed with the resolved MCP configuration merged into Zed's
settings.json as context servers.

Example:
 aidev zed
 aidev zed --profile default`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTool(cmd, "zed", args)
	},
}

func init() {
	rootCmd.AddCommand(zedCmd)
}
