package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/util"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "🔗 Initialize aidev in the current project",
	Long: `Create a .aidev directory in the current project with the chosen
profile. Without --profile an interactive picker lists the available
profiles.

Example:
 aidev init
 aidev init --profile research`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	if _, err := os.Stat(filepath.Join(cwd, config.ProjectDirName, config.ProjectConfigFile)); err == nil {
		fmt.Println(util.BoldYellow("This project is already initialized. Use 'aidev use <profile>' to change the profile."))
		return nil
	}

	profileName := flagProfile
	if profileName == "" {
		profileName, err = pickProfile()
		if err != nil {
			return err
		}
		if profileName == "" {
			return nil
		}
	}

	// Resolve the profile before writing anything so a typo fails cleanly.
	if _, _, err := profiles.Load(profileName); err != nil {
		return err
	}

	if err := config.WriteProjectConfig(cwd, config.ProjectConfig{Profile: profileName}); err != nil {
		return err
	}
	if err := config.WriteProjectProfile(cwd, profileName); err != nil {
		return err
	}

	fmt.Printf("✅ Created %s\n", util.BoldCyan(filepath.Join(cwd, config.ProjectDirName)))
	fmt.Println(util.BoldGreen("Project initialized!"))
	fmt.Printf("Profile: %s\n", util.BoldCyan(profileName))
	fmt.Println("\nLaunch your AI tool:")
	fmt.Println("  aidev claude    # Launch Claude Code")
	fmt.Println("  aidev cursor    # Launch Cursor")
	fmt.Println("  aidev codex     # Launch Codex CLI")
	fmt.Println("  aidev gemini    # Launch Gemini CLI")
	return nil
}

// pickProfile lists the available profiles interactively. Returns "" when
// the user picks Exit.
func pickProfile() (string, error) {
	infos, err := profiles.List()
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", fmt.Errorf("no profiles installed, run 'aidev setup' first")
	}

	items := make([]string, len(infos)+1)
	for i, info := range infos {
		label := info.Name
		if info.Description != "" {
			label = fmt.Sprintf("%s (%s)", info.Name, info.Description)
		}
		items[i] = label
	}
	items[len(infos)] = "Exit"

	prompt := promptui.Select{
		Label: "Select a profile",
		Items: items,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt cancelled")
	}
	if idx == len(infos) {
		return "", nil
	}
	return infos[idx].Name, nil
}
