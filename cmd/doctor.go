package cmd

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	"github.com/aidevhq/cli/pkg/keyring"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/tools"
	"github.com/aidevhq/cli/pkg/util"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "🩺 Check aidev installation and configuration health",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// registryCacheMaxAge is when doctor starts recommending a refresh.
const registryCacheMaxAge = 7 * 24 * time.Hour

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println(util.Bold("aidev health check"))
	fmt.Println()

	if !config.Initialized() {
		fmt.Println("❌ aidev is not set up. Run: aidev setup")
		return nil
	}
	fmt.Printf("✅ Configuration directory: %s\n", config.AidevDir())

	problems := checkDirectories()
	problems = checkEnvFile() || problems
	problems = checkProfiles() || problems
	problems = checkKeyring() || problems
	problems = checkRegistryCache() || problems

	fmt.Println("\n🤖 AI tools:")
	for _, det := range tools.DetectAll(cmd.Context()) {
		if det.Installed {
			version := det.Version
			if version == "" {
				version = "version unknown"
			}
			fmt.Printf("  ✅ %s %s (%s)\n", det.Tool.DisplayName, version, util.Dim(det.Path))
		} else {
			fmt.Printf("  ❌ %s not installed, see %s\n", det.Tool.DisplayName, det.Tool.InstallURL)
		}
	}

	fmt.Println()
	if problems {
		fmt.Println(util.BoldYellow("Some checks reported problems."))
	} else {
		fmt.Println(util.BoldGreen("All checks passed!"))
	}
	return nil
}

func checkDirectories() bool {
	dirs := []string{
		config.BasesDir(),
		config.ProfilesDir(),
		config.CustomProfilesDir(),
		config.ServersDir(),
		config.CustomServersDir(),
		config.CacheDir(),
		config.LogsDir(),
	}
	problems := false
	for _, dir := range dirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			fmt.Printf("❌ Missing directory: %s (run 'aidev setup')\n", dir)
			problems = true
		}
	}
	if !problems {
		fmt.Println("✅ Configuration directories exist")
	}
	return problems
}

func checkEnvFile() bool {
	vars, err := environ.ParseEnvFile(config.GlobalEnvFile())
	switch {
	case err == nil:
		fmt.Printf("✅ Global .env with %d variables\n", len(vars))
		return false
	case os.IsNotExist(err):
		fmt.Println("⚠️ No global .env yet, 'aidev env set' creates it")
		return false
	default:
		fmt.Printf("❌ Global .env is unreadable: %v\n", err)
		return true
	}
}

func checkProfiles() bool {
	infos, err := profiles.List()
	if err != nil {
		fmt.Printf("❌ Cannot list profiles: %v\n", err)
		return true
	}
	if len(infos) == 0 {
		fmt.Println("❌ No profiles installed (run 'aidev setup')")
		return true
	}
	fmt.Printf("✅ %d profiles available\n", len(infos))
	return false
}

func checkKeyring() bool {
	backend := keyringBackendName()
	if keyring.Available() {
		fmt.Printf("✅ OS keyring reachable (%s)\n", backend)
		return false
	}
	fmt.Printf("⚠️ OS keyring unreachable (%s), secrets fall back to the .env file\n", backend)
	return false
}

func keyringBackendName() string {
	switch runtime.GOOS {
	case "darwin":
		return "macOS Keychain"
	case "linux":
		return "GNOME Keyring / Secret Service"
	case "windows":
		return "Windows Credential Manager"
	default:
		return fmt.Sprintf("unknown backend on %s", runtime.GOOS)
	}
}

func checkRegistryCache() bool {
	info, err := os.Stat(config.RegistryCacheFile())
	if err != nil {
		fmt.Println("⚠️ No registry cache yet, 'aidev mcp search' populates it")
		return false
	}
	age := time.Since(info.ModTime())
	days := int(age.Hours() / 24)
	if age > registryCacheMaxAge {
		fmt.Printf("⚠️ Registry cache is %d days old, refresh with 'aidev mcp search --refresh'\n", days)
		return false
	}
	fmt.Printf("✅ Registry cache is %d days old\n", days)
	return false
}
