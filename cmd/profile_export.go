package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var profileExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "🥡 Export a profile fragment to share",
	Long: `Write a profile's fragment JSON to a file (or stdout with --output -).
The fragment carries the description, environment defaults and server
descriptors; secret values never appear in fragments.

Example:
 aidev profile export research
 aidev profile export team --output - | jq .mcpServers`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileExport,
}

func init() {
	profileExportCmd.Flags().String("output", "", "Output file path (- for stdout)")
	profileCmd.AddCommand(profileExportCmd)
}

func runProfileExport(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	name := args[0]

	data, err := profiles.Export(name)
	if err != nil {
		return err
	}

	if output == "-" {
		fmt.Print(string(data))
		return nil
	}
	if output == "" {
		output = name + ".json"
	}

	if err := os.WriteFile(output, data, 0o600); err != nil {
		return err
	}
	fmt.Printf("✅ Exported %s to %s\n", util.BoldGreen(name), util.BoldCyan(output))
	return nil
}
