package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var runCmd = &cobra.Command{
	Use:   "run <command>",
	Short: "🚀 Run a command with the layered environment injected",
	Long: `Run any command with the active profile's layered environment. Variables
come from the project .env, the project config, the global .env and the
profile, with keyring:// and aws-ssm:// references resolved. The command's
exit code is propagated.

Example:
 aidev run env
 aidev run --profile research -- npm start`,
	Args:               cobra.MinimumNArgs(1),
	DisableFlagParsing: false,
	RunE:               runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	proj := config.FindProject(maxProjectDepth)
	settings, err := config.LoadSettings(proj)
	if err != nil {
		return err
	}
	profileName := config.ActiveProfile(flagProfile, settings)

	file, _, err := profiles.Load(profileName)
	if err != nil {
		return err
	}

	env := environ.Load(ctx, proj, file.Environment, environ.DefaultResolver())

	// Print injection stats to stderr so stdout stays clean for the command
	count, sources := injectionStats(env)
	fmt.Fprintf(os.Stderr, "🚀 Injected %s variables from %s with profile: %s\n",
		util.BoldMagentaErr(fmt.Sprintf("%d", count)),
		util.BoldCyanErr(strings.Join(sources, ", ")),
		util.BoldGreenErr(profileName))

	command := strings.Join(args, " ")
	shell := util.GetDefaultShell()
	var c *exec.Cmd
	if len(shell) > 0 {
		c = exec.Command(shell[0], "-c", command)
	} else {
		c = exec.Command("sh", "-c", command)
	}
	c.Env = env.Slice()
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Stdin = os.Stdin

	if err := c.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	return nil
}

// injectionStats counts the variables the layering added on top of the
// process environment and names the sources that won at least one key,
// in precedence order.
func injectionStats(env *environ.Env) (int, []string) {
	count := 0
	var names []string
	for _, src := range env.Sources() {
		if src.Name == environ.SourceProcess {
			continue
		}
		owned := 0
		for key := range src.Vars {
			if origin, ok := env.Origin(key); ok && origin == src.Name {
				owned++
			}
		}
		if owned > 0 {
			names = append(names, src.Name)
			count += owned
		}
	}
	if len(names) == 0 {
		names = append(names, "process environment")
	}
	return count, names
}
