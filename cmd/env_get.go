package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var envGetCmd = &cobra.Command{
	Use:   "get <KEY>",
	Short: "🔍 Show a variable as the launched tool would see it",
	Long: `Look up a variable in the layered environment. Sensitive values are
masked unless --show is set. --copy places the value on the clipboard
without printing it.

Example:
 aidev env get GITHUB_PERSONAL_ACCESS_TOKEN
 aidev env get POSTGRES_URL --show
 aidev env get GITHUB_PERSONAL_ACCESS_TOKEN --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvGet,
}

func init() {
	envGetCmd.Flags().Bool("show", false, "Print the value unmasked")
	envGetCmd.Flags().Bool("copy", false, "Copy the value to the clipboard instead of printing it")
	envCmd.AddCommand(envGetCmd)
}

func runEnvGet(cmd *cobra.Command, args []string) error {
	show, _ := cmd.Flags().GetBool("show")
	copyFlag, _ := cmd.Flags().GetBool("copy")
	key := args[0]

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

	env := environ.Load(cmd.Context(), proj, file.Environment, environ.DefaultResolver())
	value, ok := env.Lookup(key)
	if !ok {
		return fmt.Errorf("%s is not set in any layer", key)
	}
	origin, _ := env.Origin(key)

	if copyFlag {
		if err := clipboard.WriteAll(value); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Printf("📋 Copied %s to the clipboard (from %s)\n", util.BoldCyan(key), origin)
		return nil
	}

	display := value
	if environ.IsSensitiveKey(key) && !show {
		display = environ.MaskValue(value)
	}
	fmt.Printf("%s=%s\n", key, display)
	fmt.Printf("🌱 From %s\n", util.Dim(origin))
	if environ.IsSensitiveKey(key) && !show {
		fmt.Println(util.Dim("Use --show to print the value unmasked"))
	}
	return nil
}
