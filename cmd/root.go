package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	aideverrors "github.com/aidevhq/cli/pkg/errors"
	"github.com/aidevhq/cli/pkg/logger"
	"github.com/aidevhq/cli/pkg/version"
)

const aidevASCii = `
            /$$       /$$
           |__/      | $$
   /$$$$$$  /$$  /$$$$$$$  /$$$$$$  /$$    /$$
  |____  $$| $$ /$$__  $$ /$$__  $$|  $$  /$$/
   /$$$$$$$| $$| $$  | $$| $$$$$$$$ \  $$/$$/
  /$$__  $$| $$| $$  | $$| $$_____/  \  $$$/
 |  $$$$$$$| $$|  $$$$$$$|  $$$$$$$   \  $/
  \_______/|__/ \_______/ \_______/    \_/
`

const description = "One environment for every AI tool."

var (
	flagProfile string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "aidev",
	Short:         description,
	Long:          description + "\n" + aidevASCii,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		settings, _ := config.LoadSettings(config.FindProject(maxProjectDepth))
		level := ""
		if settings != nil {
			level = settings.LogLevel
		}
		logger.Init(config.LogsDir(), level, flagVerbose)
	},
}

// maxProjectDepth bounds the upward .aidev directory search.
const maxProjectDepth = 16

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", aideverrors.Format(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate("{{ .Version }}\n")

	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Profile to resolve (overrides project and settings)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Mirror the log stream to stderr")

	// Add emojis to built-in cobra commands
	rootCmd.InitDefaultCompletionCmd()
	if completionCmd, _, _ := rootCmd.Find([]string{"completion"}); completionCmd != nil {
		completionCmd.Short = "⌨️  " + completionCmd.Short
	}
	rootCmd.InitDefaultHelpCmd()
	if helpCmd, _, _ := rootCmd.Find([]string{"help"}); helpCmd != nil {
		helpCmd.Short = "🤷 " + helpCmd.Short
	}
}
