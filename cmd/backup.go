package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/backup"
	"github.com/aidevhq/cli/pkg/util"
	"github.com/aidevhq/cli/pkg/version"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "📦 Back up the aidev configuration to a tar.gz archive",
	Long: `Archive the configuration directory (bases, profiles, MCP server
definitions, settings and the global .env) with a manifest. Keyring
secrets are not included, only the keyring:// references in the .env.

Example:
 aidev backup
 aidev backup --output ~/backups/aidev.tar.gz`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

func init() {
	backupCmd.Flags().String("output", "", "Backup file path")
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = backup.DefaultPath()
	}

	manifest, err := backup.Create(output, version.Version)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Backed up %s profiles and %s MCP server definitions to %s\n",
		util.BoldMagenta(fmt.Sprintf("%d", len(manifest.Profiles))),
		util.BoldMagenta(fmt.Sprintf("%d", len(manifest.MCPServers))),
		util.BoldCyan(output))
	if manifest.HasEnv {
		fmt.Println("   Includes the global .env")
	}
	return nil
}
