package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aidevhq/cli/configs"
	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/keyring"
	"github.com/aidevhq/cli/pkg/util"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "🏗️ Set up aidev and install the built-in assets",
	Long: `Create the aidev configuration directory, install the built-in base
layers, profiles and MCP server definitions, and optionally store access
tokens in the OS keyring.

Example:
 aidev setup
 aidev setup --force`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().Bool("force", false, "Reinstall built-in assets even when already set up")
	setupCmd.Flags().Bool("no-input", false, "Skip the interactive token prompts")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	noInput, _ := cmd.Flags().GetBool("no-input")

	if config.Initialized() && !force {
		fmt.Println(util.BoldYellow("aidev is already set up. Use --force to reinstall the built-in assets."))
		return nil
	}

	fmt.Println(util.BoldCyan("Welcome to aidev!"))
	fmt.Println("Setting up your AI development environment.")
	fmt.Println()

	if err := config.EnsureLayout(); err != nil {
		return err
	}
	fmt.Printf("✅ Created configuration directories under %s\n", util.BoldCyan(config.AidevDir()))

	assetDirs := []struct {
		label string
		dir   string
		load  func() (map[string][]byte, error)
	}{
		{"base layers", config.BasesDir(), configs.Bases},
		{"profiles", config.ProfilesDir(), configs.Profiles},
		{"MCP server definitions", config.ServersDir(), configs.Servers},
	}
	for _, d := range assetDirs {
		assets, err := d.load()
		if err != nil {
			return err
		}
		n, err := installEmbedded(d.dir, assets, force)
		if err != nil {
			return err
		}
		fmt.Printf("✅ Installed %d built-in %s\n", n, d.label)
	}

	// Seed the registry cache from the bundled snapshot so list and search
	// work before the first remote fetch.
	if _, err := os.Stat(config.RegistryCacheFile()); os.IsNotExist(err) {
		data, err := configs.FallbackRegistry()
		if err != nil {
			return err
		}
		if err := os.WriteFile(config.RegistryCacheFile(), data, 0o600); err != nil {
			return err
		}
	}

	if _, err := os.Stat(config.SettingsFile()); os.IsNotExist(err) {
		defaults := &config.Settings{DefaultProfile: "default", DefaultTool: "claude"}
		if err := config.SaveSettings(defaults); err != nil {
			return err
		}
	}

	if !noInput && term.IsTerminal(int(syscall.Stdin)) {
		if err := promptForTokens(); err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println(util.BoldGreen("✅ Setup complete!"))
	fmt.Println("\nNext steps:")
	fmt.Println("  1. cd into a project directory")
	fmt.Println("  2. Run: aidev init")
	fmt.Println("  3. Launch your AI tool: aidev claude / aidev cursor / aidev codex / aidev gemini")
	return nil
}

// installEmbedded writes embedded assets into dir. Existing files are left
// alone unless force is set, so user edits survive re-running setup.
func installEmbedded(dir string, assets map[string][]byte, force bool) (int, error) {
	names := make([]string, 0, len(assets))
	for name := range assets {
		names = append(names, name)
	}
	sort.Strings(names)

	written := 0
	for _, name := range names {
		path := filepath.Join(dir, name)
		if !force {
			if _, err := os.Stat(path); err == nil {
				continue
			}
		}
		if err := os.WriteFile(path, assets[name], 0o600); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// promptForTokens offers to store the common access tokens in the OS
// keyring. The global .env records a keyring:// reference, never the value.
func promptForTokens() error {
	tokens := []struct {
		key   string
		label string
	}{
		{"GITHUB_PERSONAL_ACCESS_TOKEN", "GitHub personal access token (for the github MCP server)"},
		{"GITLAB_PERSONAL_ACCESS_TOKEN", "GitLab personal access token (for the gitlab MCP server)"},
	}

	for _, t := range tokens {
		prompt := promptui.Select{
			Label: fmt.Sprintf("Store a %s now?", t.label),
			Items: []string{"Yes", "Skip"},
		}
		idx, _, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if idx != 0 {
			continue
		}

		fmt.Printf("Please enter the token (hidden): ")
		tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		fmt.Println()
		token := strings.TrimSpace(string(tokenBytes))
		if token == "" {
			fmt.Println(util.BoldYellow("Empty token, skipping."))
			continue
		}

		if err := keyring.SetSecret(t.key, token); err != nil {
			return fmt.Errorf("failed to store %s in the keyring: %w", t.key, err)
		}
		if err := environ.SetFileVar(config.GlobalEnvFile(), t.key, keyring.Ref(t.key)); err != nil {
			return err
		}
		fmt.Printf("✅ Stored %s in the OS keyring\n", util.BoldCyan(t.key))
	}
	return nil
}
