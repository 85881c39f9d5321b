package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/registry"
	"github.com/aidevhq/cli/pkg/util"
)

var mcpListCmd = &cobra.Command{
	Use:   "list [pattern]",
	Short: "📇 List installed MCP server definitions",
	Long: `📇 List installed MCP server definitions

Icon legend:
  📄  Built-in definition
  ✏️  Custom definition
  👥  Custom definition shadowing a built-in of the same name

An optional pattern filters by name (glob syntax when it contains
wildcards, substring otherwise).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCPList,
}

func init() {
	mcpCmd.AddCommand(mcpListCmd)
}

func runMCPList(cmd *cobra.Command, args []string) error {
	defs, err := registry.ListDefinitions()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		defs = registry.FilterDefinitions(defs, args[0])
	}
	if len(defs) == 0 {
		fmt.Println("🤷 No MCP server definitions found. Run 'aidev setup' or 'aidev mcp install <name>'.")
		return nil
	}

	fmt.Println(util.Bold("Installed MCP server definitions:"))
	for _, def := range defs {
		icon := "📄"
		if def.Shadowed {
			icon = "👥"
		} else if def.Custom {
			icon = "✏️"
		}
		line := fmt.Sprintf("  %s %s", icon, util.BoldCyan(def.Name))
		if def.Server != nil {
			if def.Server.Command != "" {
				line += " " + util.Dim(def.Server.Command+" "+strings.Join(def.Server.Args, " "))
			} else if def.Server.URL != "" {
				line += " " + util.Dim(def.Server.URL)
			}
		}
		fmt.Println(line)
	}

	fmt.Println("\n🔬 To inspect a definition, use: aidev mcp show <name>")
	return nil
}
