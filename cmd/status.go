package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/display"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/mcpconf"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "📊 Show the active profile, its layers and requirements",
	Long: `Show the active profile, the fragment layers it resolves to, the merged
MCP servers and the state of every required environment variable. Secret
values are masked.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	proj := config.FindProject(maxProjectDepth)
	settings, err := config.LoadSettings(proj)
	if err != nil {
		return err
	}
	profileName := config.ActiveProfile(flagProfile, settings)

	file, layers, err := profiles.Load(profileName)
	if err != nil {
		return err
	}

	if proj != nil {
		fmt.Printf("📂 Project: %s\n", util.BoldCyan(proj.Root))
	} else {
		fmt.Println("📂 Project: none (global configuration only)")
	}
	fmt.Println()

	dispLayers := make([]display.Layer, 0, len(layers.Paths))
	for _, path := range layers.Paths {
		frag, err := mcpconf.LoadFragment(path)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(frag.MCPServers))
		for name := range frag.MCPServers {
			names = append(names, name)
		}
		sort.Strings(names)
		dispLayers = append(dispLayers, display.Layer{
			Path:    path,
			Servers: names,
			Custom:  path == layers.ProfilePath && layers.Custom,
		})
	}
	display.RenderLayerTree(profileName, dispLayers)

	res, err := mcpconf.Preview(layers.Paths)
	if err != nil {
		return err
	}
	fmt.Printf("\n🔌 Merged MCP servers (%d): %s\n", len(res.Servers), util.BoldCyan(strings.Join(res.Servers, ", ")))
	if len(res.Disabled) > 0 {
		fmt.Printf("🚫 Disabled: %s\n", strings.Join(res.Disabled, ", "))
	}

	// References stay unresolved here so no secret store is contacted; a
	// keyring:// value still counts as set.
	env := environ.Load(ctx, proj, file.Environment, nil)
	rows := requirementRows(profileName, res.Servers, env)
	if len(rows) == 0 {
		fmt.Println("\n🔑 No environment requirements for this profile.")
		return nil
	}

	fmt.Println("\n🔑 Environment requirements:")
	for _, row := range rows {
		fmt.Println("  " + row)
	}
	return nil
}

// requirementRows renders one line per required variable: the profile's
// requirements first, then what the merged servers need.
func requirementRows(profileName string, servers []string, env *environ.Env) []string {
	type requirement struct {
		name   string
		origin string
	}

	var reqs []requirement
	seen := map[string]bool{}
	for _, name := range environ.ProfileRequirements(profileName) {
		if !seen[name] {
			seen[name] = true
			reqs = append(reqs, requirement{name, "profile " + profileName})
		}
	}
	for _, server := range servers {
		for _, name := range environ.ServerRequirements(server) {
			if !seen[name] {
				seen[name] = true
				reqs = append(reqs, requirement{name, "server " + server})
			}
		}
	}

	rows := make([]string, 0, len(reqs))
	for _, req := range reqs {
		key, ok := environ.SatisfyingKey(req.name, env)
		if !ok {
			rows = append(rows, fmt.Sprintf("❌ %s (%s) %s", util.Bold(req.name), req.origin, util.Dim("not set")))
			continue
		}
		value := env.Get(key)
		if environ.IsSensitiveKey(key) {
			value = environ.MaskValue(value)
		}
		if key != req.name {
			value = "via " + key + " " + value
		}
		rows = append(rows, fmt.Sprintf("✅ %s (%s) %s", util.Bold(req.name), req.origin, util.Dim(value)))
	}
	return rows
}
