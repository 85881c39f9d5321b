package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/registry"
	"github.com/aidevhq/cli/pkg/util"
)

var mcpSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "🔭 Search the MCP server registry",
	Long: `🔭 Search the MCP server registry

A query containing glob characters (*, ?, [, {) matches names and tags as
a pattern; a plain query matches name, description and tags as a
substring. Without a query every registry entry is listed.

Example:
 aidev mcp search github
 aidev mcp search 'git*'
 aidev mcp search --refresh`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCPSearch,
}

func init() {
	mcpSearchCmd.Flags().Bool("refresh", false, "Fetch the registry even when a cache exists")
	mcpCmd.AddCommand(mcpSearchCmd)
}

// registryClient builds the registry client from the effective settings.
// AIDEV_MCP_REGISTRY and the project config override the default URL.
func registryClient() (*registry.Client, error) {
	settings, err := config.LoadSettings(config.FindProject(maxProjectDepth))
	if err != nil {
		return nil, err
	}
	url := settings.RegistryURL
	if url == "" {
		url = config.DefaultRegistryURL
	}
	return registry.NewClient(url), nil
}

func runMCPSearch(cmd *cobra.Command, args []string) error {
	refresh, _ := cmd.Flags().GetBool("refresh")
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

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

	hits := registry.Search(reg.Entries, query)
	if len(hits) == 0 {
		fmt.Printf("🤷 No servers matching %q in the registry (%s, %d entries)\n", query, reg.Source, len(reg.Entries))
		return nil
	}

	installed := map[string]bool{}
	if defs, err := registry.ListDefinitions(); err == nil {
		for _, d := range defs {
			installed[d.Name] = true
		}
	}

	provenance := string(reg.Source)
	if reg.Updated != "" {
		provenance += ", updated " + reg.Updated
	}
	fmt.Printf("%s %s\n", util.Bold(fmt.Sprintf("%d servers", len(hits))), util.Dim("("+provenance+")"))

	for _, e := range hits {
		line := fmt.Sprintf("  %s: %s", util.BoldCyan(e.Name), e.Description)
		if installed[e.Name] {
			line += " " + util.BoldGreen("[installed]")
		}
		fmt.Println(line)
		if len(e.Tags) > 0 {
			fmt.Printf("    %s\n", util.Dim("🔖 "+strings.Join(e.Tags, ", ")))
		}
	}

	fmt.Println("\n📥 To install a server, use: aidev mcp install <name>")
	return nil
}
