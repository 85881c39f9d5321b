package cmd

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/keyring"
	"github.com/aidevhq/cli/pkg/util"
)

var envSetCmd = &cobra.Command{
	Use:   "set <KEY> [VALUE]",
	Short: "💳 Set an environment variable",
	Long: `Set a variable in the global .env (or the project .env with --project).
Keys that look like credentials are stored in the OS keyring and the .env
records a keyring:// reference instead of the value. Without a VALUE the
value is read from a hidden prompt or from stdin.

Example:
 aidev env set GITHUB_PERSONAL_ACCESS_TOKEN
 aidev env set MEMORY_FILE_PATH ~/aidev-memory.json --project
 aidev env set DEBUG_MODE true --no-secret`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runEnvSet,
}

func init() {
	envSetCmd.Flags().Bool("secret", false, "Store the value in the OS keyring")
	envSetCmd.Flags().Bool("no-secret", false, "Store the value in the .env even when the key looks sensitive")
	envSetCmd.Flags().Bool("project", false, "Write to the project .env instead of the global one")
	envCmd.AddCommand(envSetCmd)
}

func runEnvSet(cmd *cobra.Command, args []string) error {
	secretFlag, _ := cmd.Flags().GetBool("secret")
	noSecretFlag, _ := cmd.Flags().GetBool("no-secret")
	project, _ := cmd.Flags().GetBool("project")

	key := args[0]
	if err := environ.ValidateKeyName(key); err != nil {
		return err
	}

	var value string
	if len(args) > 1 {
		value = args[1]
	} else {
		var err error
		value, err = readValue(key)
		if err != nil {
			return err
		}
	}
	if value == "" {
		return fmt.Errorf("a value is required")
	}

	path := config.GlobalEnvFile()
	location := "global .env"
	if project {
		proj := config.FindProject(maxProjectDepth)
		if proj == nil {
			return fmt.Errorf("no .aidev project found, run 'aidev init' first")
		}
		path = proj.EnvFile()
		location = "project .env"
	}

	secret := environ.IsSensitiveKey(key)
	if secretFlag {
		secret = true
	}
	if noSecretFlag {
		secret = false
	}

	if secret && keyring.Available() {
		if err := keyring.SetSecret(key, value); err != nil {
			return fmt.Errorf("failed to store %s in the keyring: %w", key, err)
		}
		if err := environ.SetFileVar(path, key, keyring.Ref(key)); err != nil {
			return err
		}
		fmt.Printf("✅ Stored %s in the OS keyring, %s references %s\n",
			util.BoldCyan(key), location, util.Dim(keyring.Ref(key)))
		return nil
	}

	if secret {
		fmt.Fprintln(os.Stderr, util.BoldYellowErr("⚠️ OS keyring unavailable, storing the value in the .env file"))
	}
	if err := environ.SetFileVar(path, key, value); err != nil {
		return err
	}
	fmt.Printf("✅ Set %s in the %s\n", util.BoldCyan(key), location)
	return nil
}

// readValue reads the value interactively (hidden) or from a pipe.
func readValue(key string) (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		if meta := environ.Metadata(key); meta.Description != "" {
			fmt.Println(util.Dim(meta.Description))
			if meta.URL != "" {
				fmt.Println(util.Dim("Get one at: " + meta.URL))
			}
		}
		fmt.Printf("✨ Please enter the value for %s (hidden): ", key)
		valueBytes, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return "", fmt.Errorf("failed to read value: %w", err)
		}
		fmt.Println()
		return strings.TrimSpace(string(valueBytes)), nil
	}

	buf := make([]byte, 1024*1024)
	n, _ := os.Stdin.Read(buf)
	return strings.TrimSpace(string(buf[:n])), nil
}
