package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/registry"
	"github.com/aidevhq/cli/pkg/tools"
	"github.com/aidevhq/cli/pkg/util"
)

var mcpTestCmd = &cobra.Command{
	Use:   "test <name>",
	Short: "🩺 Test an installed MCP server definition",
	Long: `🩺 Test an installed MCP server definition

Checks that a stdio server's command resolves to an executable, that a
remote server's endpoint answers, and that the environment variables the
server needs are set in the active profile's layering. Secret references
count as set, the stores are not contacted.

Example:
 aidev mcp test github`,
	Args: cobra.ExactArgs(1),
	RunE: runMCPTest,
}

func init() {
	mcpCmd.AddCommand(mcpTestCmd)
}

func runMCPTest(cmd *cobra.Command, args []string) error {
	name := args[0]

	def, err := registry.FindDefinition(name)
	if err != nil {
		return err
	}
	if def == nil {
		return fmt.Errorf("no installed MCP server definition named %s, install one with 'aidev mcp install %s'", name, name)
	}

	healthy := true
	srv := def.Server
	switch {
	case !srv.HasTransport():
		healthy = false
		fmt.Println("❌ The definition has neither a command nor a URL")
	case srv.Command != "":
		if res, err := tools.ResolveBinary(srv.Command); err == nil {
			fmt.Printf("✅ Command %s resolves to %s (%s)\n", util.Bold(srv.Command), res.Path, res.Strategy)
		} else {
			healthy = false
			fmt.Printf("❌ Command %s not found on PATH or in the known install directories\n", util.Bold(srv.Command))
		}
	default:
		url := srv.URL
		if url == "" {
			url = srv.HTTPURL
		}
		spinner := util.NewSpinner("Probing " + url + "...")
		spinner.Start()
		status, err := registry.ProbeEndpoint(cmd.Context(), url)
		spinner.Stop()
		if err == nil {
			fmt.Printf("✅ Endpoint %s answered with %s\n", util.Bold(url), status)
		} else {
			healthy = false
			fmt.Printf("❌ %s\n", err)
		}
	}

	for _, row := range serverEnvRows(cmd, name, def) {
		fmt.Println(row.line)
		if !row.ok {
			healthy = false
		}
	}

	if healthy {
		fmt.Printf("\n%s\n", util.BoldGreen("Server "+name+" looks ready."))
	} else {
		fmt.Printf("\n%s\n", util.BoldYellow("Server "+name+" is not ready yet."))
	}
	return nil
}

type envRow struct {
	line string
	ok   bool
}

// serverEnvRows checks the variables a definition needs against the active
// profile's layered environment. A broken profile downgrades to a warning
// rather than masking the probe result.
func serverEnvRows(cmd *cobra.Command, name string, def *registry.Definition) []envRow {
	vars := append([]string{}, environ.ServerRequirements(name)...)
	seen := make(map[string]struct{}, len(vars))
	for _, v := range vars {
		seen[v] = struct{}{}
	}
	for _, v := range registry.RequiredVars(nil, def) {
		if _, dup := seen[v]; !dup {
			seen[v] = struct{}{}
			vars = append(vars, v)
		}
	}
	if len(vars) == 0 {
		return nil
	}
	sort.Strings(vars)

	proj := config.FindProject(maxProjectDepth)
	settings, err := config.LoadSettings(proj)
	if err != nil {
		return []envRow{{line: fmt.Sprintf("⚠️  Could not load settings to check the environment: %s", err), ok: true}}
	}
	profileName := config.ActiveProfile(flagProfile, settings)
	file, _, err := profiles.Load(profileName)
	if err != nil {
		return []envRow{{line: fmt.Sprintf("⚠️  Could not load profile %s to check the environment: %s", profileName, err), ok: true}}
	}
	env := environ.Load(cmd.Context(), proj, file.Environment, nil)

	rows := make([]envRow, 0, len(vars))
	for _, v := range vars {
		if environ.Satisfied(v, env) {
			rows = append(rows, envRow{line: fmt.Sprintf("✅ %s is set", v), ok: true})
		} else {
			rows = append(rows, envRow{line: fmt.Sprintf("❌ %s is not set, run: aidev env set %s", v, v), ok: false})
		}
	}
	return rows
}
