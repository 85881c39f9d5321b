package config

import (
	"os"
	"path/filepath"
)

const (
	// ProjectDirName is the per-project state directory created by 'aidev init'.
	ProjectDirName = ".aidev"

	// ProjectConfigFile sits inside ProjectDirName.
	ProjectConfigFile = "config.json"

	// ProjectProfileFile holds the active profile name, written by 'aidev use'.
	ProjectProfileFile = "profile"

	// EnvFileName is the env file name at both global and project level.
	EnvFileName = ".env"
)

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// AidevDir returns the global state directory, ~/.aidev by default.
// AIDEV_DIR overrides it, which tests and multi-account setups rely on.
func AidevDir() string {
	if dir := os.Getenv("AIDEV_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), ".aidev")
}

func ConfigDir() string         { return filepath.Join(AidevDir(), "config") }
func BasesDir() string          { return filepath.Join(ConfigDir(), "bases") }
func ProfilesDir() string       { return filepath.Join(ConfigDir(), "profiles") }
func CustomProfilesDir() string { return filepath.Join(ProfilesDir(), "custom") }
func ServersDir() string        { return filepath.Join(ConfigDir(), "mcp-servers") }
func CustomServersDir() string  { return filepath.Join(ServersDir(), "custom") }
func CacheDir() string          { return filepath.Join(AidevDir(), "cache") }
func LogsDir() string           { return filepath.Join(AidevDir(), "logs") }
func GlobalEnvFile() string     { return filepath.Join(AidevDir(), EnvFileName) }
func SettingsFile() string      { return filepath.Join(ConfigDir(), "settings.json") }
func RegistryCacheFile() string { return filepath.Join(CacheDir(), "mcp-registry.json") }

// EnsureLayout creates the global directory tree. Idempotent.
func EnsureLayout() error {
	dirs := []string{
		AidevDir(),
		ConfigDir(),
		BasesDir(),
		ProfilesDir(),
		CustomProfilesDir(),
		ServersDir(),
		CustomServersDir(),
		CacheDir(),
		LogsDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return nil
}

// Initialized reports whether 'aidev setup' has been run.
func Initialized() bool {
	info, err := os.Stat(BasesDir())
	return err == nil && info.IsDir()
}
