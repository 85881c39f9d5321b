package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/keyring"
	"github.com/aidevhq/cli/pkg/util"
)

var envUnsetCmd = &cobra.Command{
	Use:   "unset <KEY>",
	Short: "🗑️ Remove a variable",
	Long: `Remove a variable from the global .env (or the project .env with
--project). When the removed entry was a keyring:// reference the keyring
secret is deleted as well.`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvUnset,
}

func init() {
	envUnsetCmd.Flags().Bool("project", false, "Remove from the project .env instead of the global one")
	envCmd.AddCommand(envUnsetCmd)
}

func runEnvUnset(cmd *cobra.Command, args []string) error {
	project, _ := cmd.Flags().GetBool("project")
	key := args[0]

	path := config.GlobalEnvFile()
	location := "global .env"
	if project {
		proj := config.FindProject(maxProjectDepth)
		if proj == nil {
			return fmt.Errorf("no .aidev project found, run 'aidev init' first")
		}
		path = proj.EnvFile()
		location = "project .env"
	}

	vars, err := environ.ParseEnvFile(path)
	if err != nil {
		vars = nil
	}
	wasKeyringRef := strings.HasPrefix(vars[key], environ.KeyringScheme)

	removed, err := environ.UnsetFileVar(path, key)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Printf("🤷 %s was not set in the %s\n", key, location)
		return nil
	}

	if wasKeyringRef {
		if err := keyring.DeleteSecret(key); err == nil {
			fmt.Printf("🗑️ Deleted %s from the OS keyring\n", util.BoldCyan(key))
		}
	}

	fmt.Printf("✅ Removed %s from the %s\n", util.BoldCyan(key), location)
	return nil
}
