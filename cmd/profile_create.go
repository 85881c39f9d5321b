package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "💳 Create a custom profile",
	Long: `Create a custom profile. With --from the source profile's fragment is
cloned as a starting point, otherwise the profile starts empty.

Example:
 aidev profile create team
 aidev profile create team --from research --description "Team defaults"`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileCreate,
}

func init() {
	profileCreateCmd.Flags().String("from", "", "Profile to clone as a starting point")
	profileCreateCmd.Flags().String("description", "", "Profile description")
	profileCmd.AddCommand(profileCreateCmd)
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	description, _ := cmd.Flags().GetString("description")

	path, err := profiles.Create(args[0], from, description)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Created profile %s at %s\n", util.BoldGreen(args[0]), util.Dim(path))
	fmt.Printf("Activate it with: aidev use %s\n", args[0])
	return nil
}
