package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/mcpconf"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/tools"
	"github.com/aidevhq/cli/pkg/util"
)

var launchCmd = &cobra.Command{
	Use:   "launch [tool] [-- args...]",
	Short: "🚀 Launch an AI tool with the resolved profile",
	Long: `Launch any supported AI tool with the active profile's MCP configuration
and layered environment. Without a tool argument the default tool from
settings is used.

Supported tools: claude, cursor, codex, gemini, zed

Example:
 aidev launch claude
 aidev launch codex --profile research
 aidev launch claude -- --continue`,
	Args: cobra.ArbitraryArgs,
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	toolArg := ""
	if len(args) > 0 {
		toolArg = args[0]
		args = args[1:]
	}

	settings, err := config.LoadSettings(config.FindProject(maxProjectDepth))
	if err != nil {
		return err
	}
	return launchTool(cmd, config.ActiveTool(toolArg, settings), args)
}

// launchTool is the pipeline behind 'aidev claude', 'aidev cursor' and the
// generic 'aidev launch': resolve the profile's fragment layers, build the
// layered environment, check the profile's requirements, render the tool
// config and hand the terminal over to the tool.
func launchTool(cmd *cobra.Command, toolName string, passthrough []string) error {
	ctx := cmd.Context()

	tool, err := tools.Lookup(toolName)
	if err != nil {
		return err
	}

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

	env := environ.Load(ctx, proj, file.Environment, environ.DefaultResolver())
	if err := environ.Check(profileName, nil, env); err != nil {
		return err
	}

	res, err := mcpconf.Generate(layers.Paths, env.Lookup)
	if err != nil {
		return err
	}

	args := append([]string{}, passthrough...)
	switch tool.Mode {
	case tools.ConfigFlagFile:
		confPath, err := mcpconf.WriteResolved(tool.Name, res.JSON)
		if err != nil {
			return err
		}
		args = tool.LaunchArgs(confPath, passthrough)
	case tools.ConfigUserFile:
		if err := tool.WriteUserConfig(res); err != nil {
			return err
		}
	}

	// Cursor opens the current directory when no arguments are given.
	if tool.Name == "cursor" && len(passthrough) == 0 {
		args = append(args, ".")
	}

	bin, err := tools.ResolveBinary(tool.Name)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "🚀 Launching %s with profile %s, %s MCP servers: %s\n",
		util.BoldCyanErr(tool.DisplayName),
		util.BoldGreenErr(profileName),
		util.BoldMagentaErr(fmt.Sprintf("%d", len(res.Servers))),
		strings.Join(res.Servers, ", "))

	if err := tools.Launch(bin.Path, args, env.Slice()); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	return nil
}
