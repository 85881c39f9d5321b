package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "📇 List all available profiles",
	Long: `📇 List all available profiles

Icon legend:
  📄  Built-in profile
  ✏️  Custom profile
  👥  Custom profile shadowing a built-in of the same name`,
	Args: cobra.NoArgs,
	RunE: runProfileList,
}

func init() {
	profileCmd.AddCommand(profileListCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	infos, err := profiles.List()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("🤷 No profiles installed. Run 'aidev setup' first.")
		return nil
	}

	fmt.Println(util.Bold("Available profiles:"))
	for _, info := range infos {
		icon := "📄"
		if info.Shadowed {
			icon = "👥"
		} else if info.Custom {
			icon = "✏️"
		}
		line := fmt.Sprintf("  %s %s", icon, util.BoldCyan(info.Name))
		if info.Description != "" {
			line += " " + util.Dim(info.Description)
		}
		fmt.Println(line)
	}

	fmt.Println("\n🔬 To inspect a profile, use: aidev profile show <name>")
	return nil
}
