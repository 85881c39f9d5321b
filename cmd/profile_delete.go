package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "🗑️ Delete a custom profile",
	Long: `Delete a custom profile. Built-in profiles cannot be deleted; deleting
a custom profile that shadows a built-in restores the built-in.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileDelete,
}

func init() {
	profileCmd.AddCommand(profileDeleteCmd)
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	if err := profiles.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("✅ Deleted profile %s\n", util.BoldGreen(args[0]))
	return nil
}
