package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/util"
)

var envImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "📥 Merge a dotenv file into the global .env",
	Long: `Parse a dotenv file and merge its variables into the global .env.
Existing keys are overwritten, other keys are left alone.

Example:
 aidev env import ./secrets/.env
 aidev env import ./team.env --project`,
	Args: cobra.ExactArgs(1),
	RunE: runEnvImport,
}

func init() {
	envImportCmd.Flags().Bool("project", false, "Merge into the project .env instead of the global one")
	envCmd.AddCommand(envImportCmd)
}

func runEnvImport(cmd *cobra.Command, args []string) error {
	project, _ := cmd.Flags().GetBool("project")

	vars, err := environ.ParseEnvFile(args[0])
	if err != nil {
		return err
	}
	if len(vars) == 0 {
		fmt.Println("🤷 No variables found in", args[0])
		return nil
	}

	path := config.GlobalEnvFile()
	location := "global .env"
	if project {
		proj := config.FindProject(maxProjectDepth)
		if proj == nil {
			return fmt.Errorf("no .aidev project found, run 'aidev init' first")
		}
		path = proj.EnvFile()
		location = "project .env"
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := environ.ValidateKeyName(key); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	for _, key := range keys {
		if err := environ.SetFileVar(path, key, vars[key]); err != nil {
			return err
		}
	}

	fmt.Printf("✅ Imported %s variables into the %s\n", util.BoldMagenta(fmt.Sprintf("%d", len(keys))), location)
	return nil
}
