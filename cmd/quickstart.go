package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/quickstart"
	"github.com/aidevhq/cli/pkg/util"
)

var quickstartCmd = &cobra.Command{
	Use:   "quickstart",
	Short: "⚡ Detect the stack and initialize this project",
	Long: `Detect the project's stack from its files, recommend a profile and
initialize .aidev with it. --yes accepts the recommendation without
prompting, --profile skips the recommendation entirely.

Example:
 aidev quickstart
 aidev quickstart --yes
 aidev quickstart --profile research --project-dir ./svc`,
	Args: cobra.NoArgs,
	RunE: runQuickstart,
}

func init() {
	quickstartCmd.Flags().Bool("yes", false, "Accept the recommended profile without prompting")
	quickstartCmd.Flags().String("project-dir", "", "Project directory (defaults to the current directory)")
	rootCmd.AddCommand(quickstartCmd)
}

func runQuickstart(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	dir, _ := cmd.Flags().GetString("project-dir")

	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = cwd
	}

	detections := quickstart.Detect(dir)
	for _, det := range detections {
		fmt.Printf("🔍 Detected %s (%.0f%% confidence): %s\n",
			util.BoldCyan(det.Stack), det.Confidence*100, strings.Join(det.Reasons, ", "))
	}
	if len(detections) == 0 {
		fmt.Println("🔍 No stack signals found")
	}

	profileName := flagProfile
	if profileName == "" {
		rec := quickstart.Recommend(detections)
		profileName = rec.Profile
		fmt.Printf("💡 Recommended profile: %s (%s)\n", util.BoldCyan(rec.Profile), rec.Rationale)
		if len(rec.Servers) > 0 {
			fmt.Printf("   Suggested MCP servers: %s\n", strings.Join(rec.Servers, ", "))
		}

		if !yes {
			prompt := promptui.Select{
				Label: fmt.Sprintf("Initialize with profile %q?", profileName),
				Items: []string{"Yes", "Choose another profile", "Exit"},
			}
			idx, _, err := prompt.Run()
			if err != nil {
				return fmt.Errorf("prompt cancelled")
			}
			switch idx {
			case 1:
				profileName, err = pickProfile()
				if err != nil {
					return err
				}
				if profileName == "" {
					return nil
				}
			case 2:
				return nil
			}
		}
	}

	if _, _, err := profiles.Load(profileName); err != nil {
		return err
	}

	path, err := quickstart.Apply(dir, profileName)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Quickstart complete, created %s\n", util.BoldCyan(path))
	fmt.Printf("Profile: %s\n", util.BoldGreen(profileName))
	return nil
}
