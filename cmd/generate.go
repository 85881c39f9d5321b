package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/mcpconf"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/tools"
	"github.com/aidevhq/cli/pkg/util"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "🧬 Generate the resolved MCP config without launching",
	Long: `Resolve the active profile's fragment layers, substitute environment
placeholders and write the resulting MCP config. Without --output or
--stdout the config goes to a temp file named after the tool.

Example:
 aidev generate --tool claude
 aidev generate --profile research --stdout
 aidev generate --output mcp.json`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("tool", "", "Tool the config is generated for")
	generateCmd.Flags().String("output", "", "Write the config to this path")
	generateCmd.Flags().Bool("stdout", false, "Print the config to stdout")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	toolArg, _ := cmd.Flags().GetString("tool")
	output, _ := cmd.Flags().GetString("output")
	toStdout, _ := cmd.Flags().GetBool("stdout")

	proj := config.FindProject(maxProjectDepth)
	settings, err := config.LoadSettings(proj)
	if err != nil {
		return err
	}
	profileName := config.ActiveProfile(flagProfile, settings)

	tool, err := tools.Lookup(config.ActiveTool(toolArg, settings))
	if err != nil {
		return err
	}

	file, layers, err := profiles.Load(profileName)
	if err != nil {
		return err
	}

	env := environ.Load(ctx, proj, file.Environment, environ.DefaultResolver())
	if err := environ.Check(profileName, nil, env); err != nil {
		return err
	}

	res, err := mcpconf.Generate(layers.Paths, env.Lookup)
	if err != nil {
		return err
	}

	if toStdout {
		fmt.Print(string(res.JSON))
		return nil
	}

	path := output
	if path != "" {
		if err := os.WriteFile(path, res.JSON, 0o600); err != nil {
			return err
		}
	} else {
		path, err = mcpconf.WriteResolved(tool.Name, res.JSON)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "🧬 Wrote config for profile %s with %s MCP servers to %s\n",
		util.BoldGreenErr(profileName),
		util.BoldMagentaErr(fmt.Sprintf("%d", len(res.Servers))),
		util.BoldCyanErr(path))
	return nil
}
