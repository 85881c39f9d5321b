package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var profileImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "📥 Import a profile fragment as a custom profile",
	Long: `Install a profile fragment file as a custom profile. The profile is
named after the file unless --name is set; an existing custom profile of
the same name is overwritten.

Example:
 aidev profile import ./team.json
 aidev profile import ./team.json --name squad`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileImport,
}

func init() {
	profileImportCmd.Flags().String("name", "", "Profile name (defaults to the file name)")
	profileCmd.AddCommand(profileImportCmd)
}

func runProfileImport(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	file := args[0]

	if name == "" {
		name = strings.TrimSuffix(filepath.Base(file), ".json")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	path, err := profiles.Import(name, data)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Imported profile %s from %s\n", util.BoldGreen(name), util.BoldCyan(file))
	fmt.Println(util.Dim("Installed at " + path))
	return nil
}
