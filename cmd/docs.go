package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/util"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "📖 Open the aidev docs in your browser",
	RunE:  runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, args []string) error {
	url := "https://docs.aidev.sh/cli/commands"
	fmt.Printf("Opening %s\n", url)
	return util.OpenBrowser(url)
}
