package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/registry"
	"github.com/aidevhq/cli/pkg/tui"
	"github.com/aidevhq/cli/pkg/util"
)

var mcpBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "🔭 Browse the MCP server registry interactively",
	Long: `🔭 Browse the MCP server registry interactively

Opens a full-screen browser over the registry. Type to filter, use the
arrow keys to move, press enter to install the highlighted server and
esc or ctrl+c to leave without installing.`,
	Args: cobra.NoArgs,
	RunE: runMCPBrowse,
}

func init() {
	mcpCmd.AddCommand(mcpBrowseCmd)
}

func runMCPBrowse(cmd *cobra.Command, args []string) error {
	client, err := registryClient()
	if err != nil {
		return err
	}

	name, err := tui.Browse(cmd.Context(), client)
	if err != nil {
		return err
	}
	if name == "" {
		return nil
	}

	reg, err := client.Fetch(cmd.Context(), false)
	if err != nil {
		return err
	}
	entry := reg.Find(name)
	if entry == nil {
		return fmt.Errorf("no MCP server named %s in the registry", name)
	}

	if err := registry.Install(cmd.Context(), entry, os.Stdout, os.Stderr); err != nil {
		return err
	}
	fmt.Printf("✅ Installed MCP server %s\n", util.BoldGreen(name))
	return nil
}
