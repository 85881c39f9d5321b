package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var envExportCmd = &cobra.Command{
	Use:   "export",
	Short: "🥡 Export the layered environment in a specific format",
	Long: `Export the variables the layering adds on top of the process
environment, with keyring:// and aws-ssm:// references resolved to their
real values. Supported formats: dotenv, json, yaml, csv.

Example:
 aidev env export
 aidev env export --format json > env.json`,
	Args: cobra.NoArgs,
	RunE: runEnvExport,
}

func init() {
	envExportCmd.Flags().String("format", "dotenv", "Export format ("+strings.Join(util.ExportFormats, ", ")+")")
	envCmd.AddCommand(envExportCmd)
}

func runEnvExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

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

	var keys []string
	for _, key := range env.Keys() {
		if origin, ok := env.Origin(key); ok && origin != environ.SourceProcess {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	vars := make([]util.KeyValue, 0, len(keys))
	for _, key := range keys {
		vars = append(vars, util.KeyValue{Key: key, Value: env.Get(key)})
	}

	if len(vars) == 0 {
		fmt.Fprintln(os.Stderr, "🌱 Nothing to export, the layering adds no variables")
		return nil
	}
	return util.ExportEnv(os.Stdout, format, vars)
}
