package cmd

import (
	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "🌱 Manage your environment variables",
}

func init() {
	rootCmd.AddCommand(envCmd)
}
