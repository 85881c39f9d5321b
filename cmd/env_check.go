package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var envCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "🩺 Check the active profile's environment requirements",
	Long: `Check that the active profile's required variables are set in the
layered environment. --require adds extra names to check. All missing
variables are reported at once.

Example:
 aidev env check
 aidev env check --profile research
 aidev env check --require GITHUB_PERSONAL_ACCESS_TOKEN,POSTGRES_URL`,
	Args: cobra.NoArgs,
	RunE: runEnvCheck,
}

func init() {
	envCheckCmd.Flags().String("require", "", "Comma-separated extra variables to require")
	envCmd.AddCommand(envCheckCmd)
}

func runEnvCheck(cmd *cobra.Command, args []string) error {
	requireFlag, _ := cmd.Flags().GetString("require")

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

	var required []string
	for _, name := range strings.Split(requireFlag, ",") {
		if name = strings.TrimSpace(name); name != "" {
			required = append(required, name)
		}
	}

	// A keyring:// or aws-ssm:// value counts as set; the stores are not
	// contacted here.
	env := environ.Load(cmd.Context(), proj, file.Environment, nil)

	var checked []string
	seen := map[string]bool{}
	for _, name := range append(environ.ProfileRequirements(profileName), required...) {
		if !seen[name] {
			seen[name] = true
			checked = append(checked, name)
		}
	}
	if err := environ.Check(profileName, required, env); err != nil {
		return err
	}

	if len(checked) == 0 {
		fmt.Printf("✅ Profile %s has no environment requirements\n", util.BoldGreen(profileName))
		return nil
	}
	for _, name := range checked {
		fmt.Printf("✅ %s is set\n", util.Bold(name))
	}
	fmt.Printf("All %d requirements satisfied for profile %s\n", len(checked), util.BoldGreen(profileName))
	return nil
}
