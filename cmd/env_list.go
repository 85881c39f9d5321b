package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/display"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/profiles"
)

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "📇 List the layered environment by source",
	Long: `List the variables each layer contributes, grouped by source in
precedence order. Sensitive values are masked unless --show is set;
keyring:// and aws-ssm:// references are shown as references, the
stores are never contacted.

Example:
 aidev env list
 aidev env list --show
 aidev env list --all`,
	Args: cobra.NoArgs,
	RunE: runEnvList,
}

func init() {
	envListCmd.Flags().Bool("show", false, "Print sensitive values unmasked")
	envListCmd.Flags().Bool("all", false, "Include the inherited process environment")
	envCmd.AddCommand(envListCmd)
}

func runEnvList(cmd *cobra.Command, args []string) error {
	show, _ := cmd.Flags().GetBool("show")
	all, _ := cmd.Flags().GetBool("all")

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

	env := environ.Load(cmd.Context(), proj, file.Environment, nil)

	var rows []display.EnvRow
	for _, src := range env.Sources() {
		if src.Name == environ.SourceProcess && !all {
			continue
		}
		for key, value := range src.Vars {
			// Show each key once, under the source that wins it.
			if origin, ok := env.Origin(key); !ok || origin != src.Name {
				continue
			}
			rows = append(rows, display.EnvRow{
				Key:       key,
				Value:     env.Get(key),
				Source:    src.Name,
				Secret:    environ.IsSensitiveKey(key),
				Reference: environ.IsReference(value),
			})
		}
	}

	if len(rows) == 0 {
		fmt.Println("🌱 No variables configured. Set one with 'aidev env set'.")
		return nil
	}

	display.RenderEnvTree(profileName, rows, show)
	return nil
}
