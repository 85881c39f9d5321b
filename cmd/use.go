package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var useCmd = &cobra.Command{
	Use:   "use <profile>",
	Short: "🎯 Set the project's profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runUse,
}

func init() {
	rootCmd.AddCommand(useCmd)
}

func runUse(cmd *cobra.Command, args []string) error {
	profileName := args[0]

	if _, _, err := profiles.Load(profileName); err != nil {
		return err
	}

	// Without an existing project this initializes one in the current
	// directory.
	root, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg := config.ProjectConfig{Profile: profileName}
	if proj := config.FindProject(maxProjectDepth); proj != nil {
		root = proj.Root
		cfg = proj.Config
		cfg.Profile = profileName
	}

	if err := config.WriteProjectConfig(root, cfg); err != nil {
		return err
	}
	if err := config.WriteProjectProfile(root, profileName); err != nil {
		return err
	}

	fmt.Printf("✅ Active profile set to %s for %s\n", util.BoldGreen(profileName), util.BoldCyan(root))
	return nil
}
