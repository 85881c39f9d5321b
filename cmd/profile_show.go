package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/display"
	"github.com/aidevhq/cli/pkg/mcpconf"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "🔍 Show a profile's layers and merged servers",
	Long: `Show the fragment layers a profile resolves to, the merged MCP servers
and the environment defaults and placeholders it carries. Placeholders
are shown unexpanded; no secret value appears in the output.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileShow,
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	name := args[0]

	file, layers, err := profiles.Load(name)
	if err != nil {
		return err
	}

	if file.Description != "" {
		fmt.Println(util.Dim(file.Description))
	}

	dispLayers := make([]display.Layer, 0, len(layers.Paths))
	for _, path := range layers.Paths {
		frag, err := mcpconf.LoadFragment(path)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(frag.MCPServers))
		for server := range frag.MCPServers {
			names = append(names, server)
		}
		sort.Strings(names)
		dispLayers = append(dispLayers, display.Layer{
			Path:    path,
			Servers: names,
			Custom:  path == layers.ProfilePath && layers.Custom,
		})
	}
	display.RenderLayerTree(name, dispLayers)

	res, err := mcpconf.Preview(layers.Paths)
	if err != nil {
		return err
	}
	fmt.Printf("\n🔌 Merged MCP servers (%d): %s\n", len(res.Servers), util.BoldCyan(strings.Join(res.Servers, ", ")))
	if len(res.Disabled) > 0 {
		fmt.Printf("🚫 Disabled: %s\n", strings.Join(res.Disabled, ", "))
	}

	if len(file.Environment) > 0 {
		keys := make([]string, 0, len(file.Environment))
		for key := range file.Environment {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fmt.Println("\n🌱 Environment defaults:")
		for _, key := range keys {
			fmt.Printf("  %s=%s\n", util.Bold(key), file.Environment[key])
		}
	}

	if refs := util.VarRefs(string(res.JSON)); len(refs) > 0 {
		fmt.Printf("\n🔗 Placeholders: %s\n", strings.Join(refs, ", "))
	}
	return nil
}
