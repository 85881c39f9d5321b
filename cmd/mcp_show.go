package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/registry"
	"github.com/aidevhq/cli/pkg/util"
)

var mcpShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "🔬 Show an MCP server definition",
	Long: `🔬 Show an MCP server definition

Prints the installed descriptor and the registry entry for a server,
including the environment variables it expects.

Example:
 aidev mcp show github`,
	Args: cobra.ExactArgs(1),
	RunE: runMCPShow,
}

func init() {
	mcpCmd.AddCommand(mcpShowCmd)
}

func runMCPShow(cmd *cobra.Command, args []string) error {
	name := args[0]

	def, err := registry.FindDefinition(name)
	if err != nil {
		return err
	}

	client, err := registryClient()
	if err != nil {
		return err
	}
	var entry *registry.Entry
	if reg, err := client.Fetch(cmd.Context(), false); err == nil {
		entry = reg.Find(name)
	}

	if def == nil && entry == nil {
		return fmt.Errorf("no MCP server named %s in the installed definitions or the registry", name)
	}

	fmt.Printf("🔌 %s\n", util.BoldCyan(name))
	if entry != nil {
		if entry.Description != "" {
			fmt.Printf("   %s\n", entry.Description)
		}
		if entry.Author != "" {
			fmt.Printf("   Author: %s\n", entry.Author)
		}
		if entry.Repository != "" {
			fmt.Printf("   Repository: %s\n", entry.Repository)
		}
		if entry.Version != "" {
			fmt.Printf("   Version: %s\n", entry.Version)
		}
		if len(entry.Tags) > 0 {
			fmt.Printf("   %s\n", util.Dim("🔖 "+strings.Join(entry.Tags, ", ")))
		}
	}

	fmt.Println()
	if def != nil {
		kind := "built-in"
		if def.Custom {
			kind = "custom"
		}
		fmt.Printf("📦 Installed (%s): %s\n", kind, util.Dim(def.Path))
		if def.Shadowed {
			fmt.Println("   👥 Shadows a built-in definition of the same name")
		}
		if data, err := json.MarshalIndent(def.Server, "", "  "); err == nil {
			fmt.Println(string(data))
		}
	} else {
		fmt.Printf("📦 Not installed. Install it with: aidev mcp install %s\n", name)
	}

	required := registry.RequiredVars(entry, def)
	if len(required) > 0 {
		fmt.Printf("\n🔐 Required environment:\n")
		for _, v := range required {
			fmt.Printf("   %s\n", v)
		}
		fmt.Printf("%s\n", util.Dim("   Set them with: aidev env set <KEY>"))
	}
	if entry != nil && len(entry.Configuration.Optional) > 0 {
		fmt.Printf("\n🌱 Optional environment:\n")
		for _, v := range entry.Configuration.Optional {
			fmt.Printf("   %s\n", v)
		}
	}
	if entry != nil && entry.Install.Command != "" {
		fmt.Printf("\n🛠  Install command: %s\n", util.Dim(entry.Install.Command))
	}
	return nil
}
