package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/registry"
	"github.com/aidevhq/cli/pkg/util"
)

var mcpRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "🗑️  Remove an installed MCP server definition",
	Long: `🗑️  Remove an installed MCP server definition

Only custom definitions can be removed. Removing one that shadows a
built-in definition restores the built-in. Definitions shipped with the
CLI stay as they are. The removed server is also pruned from custom
profiles that still carry it.

Example:
 aidev mcp remove github`,
	Args: cobra.ExactArgs(1),
	RunE: runMCPRemove,
}

func init() {
	mcpCmd.AddCommand(mcpRemoveCmd)
}

func runMCPRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	// Note the shadow before removing so the message can mention the restore.
	_, shadowErr := os.Stat(filepath.Join(config.ServersDir(), name+".json"))
	shadowed := shadowErr == nil

	if err := registry.Remove(name); err != nil {
		return err
	}

	fmt.Printf("✅ Removed MCP server definition %s\n", util.BoldGreen(name))
	if shadowed {
		fmt.Println("📄 The built-in definition of the same name is active again.")
	}

	pruned, err := profiles.PruneServer(name)
	if err != nil {
		return err
	}
	if len(pruned) > 0 {
		fmt.Printf("🧬 Pruned %s from custom profiles: %s\n", name, strings.Join(pruned, ", "))
	}
	return nil
}
