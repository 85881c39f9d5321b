package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/registry"
	"github.com/aidevhq/cli/pkg/util"
)

var mcpInstallCmd = &cobra.Command{
	Use:   "install <name>",
	Short: "📥 Install an MCP server from the registry",
	Long: `📥 Install an MCP server from the registry

Runs the entry's install command when it has one and writes the server
descriptor into the custom definitions directory, where it shadows any
built-in definition of the same name.

Example:
 aidev mcp install github
 aidev mcp install github --refresh`,
	Args: cobra.ExactArgs(1),
	RunE: runMCPInstall,
}

func init() {
	mcpInstallCmd.Flags().Bool("refresh", false, "Fetch the registry even when a cache exists")
	mcpCmd.AddCommand(mcpInstallCmd)
}

func runMCPInstall(cmd *cobra.Command, args []string) error {
	name := args[0]
	refresh, _ := cmd.Flags().GetBool("refresh")

	client, err := registryClient()
	if err != nil {
		return err
	}

	spinner := util.NewSpinner("Fetching registry...")
	spinner.Start()
	reg, err := client.Fetch(cmd.Context(), refresh)
	spinner.Stop()
	if err != nil {
		return err
	}

	entry := reg.Find(name)
	if entry == nil {
		return fmt.Errorf("no MCP server named %s in the registry, search with 'aidev mcp search'", name)
	}

	if err := registry.Install(cmd.Context(), entry, os.Stdout, os.Stderr); err != nil {
		return err
	}

	fmt.Printf("✅ Installed MCP server %s\n", util.BoldGreen(name))
	required := registry.RequiredVars(entry, nil)
	if len(required) > 0 {
		fmt.Println("🔐 It needs these environment variables:")
		for _, v := range required {
			fmt.Printf("   aidev env set %s\n", v)
		}
	}
	fmt.Println("🧬 Add it to a profile's mcpServers to use it, or check: aidev mcp show " + name)
	return nil
}
