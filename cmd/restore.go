package cmd

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/backup"
	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/util"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "🛠️ Restore the aidev configuration from a backup archive",
	Long: `Validate a backup archive's manifest and restore its contents into the
configuration directory. Existing files with the same names are
overwritten; restore asks for confirmation unless --force is set.

Example:
 aidev restore aidev-laptop-20250801-143000.aidev-backup.tar.gz --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().Bool("force", false, "Restore without confirmation")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := args[0]

	manifest, err := backup.ReadManifest(path)
	if err != nil {
		return err
	}

	fmt.Printf("📦 Backup from %s on %s (aidev %s)\n",
		util.BoldCyan(manifest.Hostname), manifest.CreatedAt, manifest.Version)
	fmt.Printf("   Profiles: %s\n", joinOrDash(manifest.Profiles))
	fmt.Printf("   MCP servers: %s\n", joinOrDash(manifest.MCPServers))
	if manifest.HasEnv {
		fmt.Println("   Includes a global .env")
	}

	if !force {
		prompt := promptui.Select{
			Label: fmt.Sprintf("Restore into %s, overwriting existing files?", config.AidevDir()),
			Items: []string{"Yes", "Exit"},
		}
		idx, _, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if idx != 0 {
			return nil
		}
	}

	if _, err := backup.Restore(path); err != nil {
		return err
	}

	fmt.Println(util.BoldGreen("✅ Restore complete."))
	return nil
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
