package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// DefaultRegistryURL is where 'aidev mcp' commands look for the server
// registry unless AIDEV_MCP_REGISTRY or settings.json says otherwise.
const DefaultRegistryURL = "https://raw.githubusercontent.com/aidevhq/mcp-registry/main/registry.json"

// Settings holds global CLI settings from config/settings.json, with
// AIDEV_* environment variables and project config layered on top.
type Settings struct {
	DefaultProfile string `json:"defaultProfile,omitempty" env:"AIDEV_PROFILE"`
	DefaultTool    string `json:"defaultTool,omitempty" env:"AIDEV_TOOL"`
	RegistryURL    string `json:"registryUrl,omitempty" env:"AIDEV_MCP_REGISTRY"`
	LogLevel       string `json:"logLevel,omitempty" env:"AIDEV_LOG_LEVEL"`
	Telemetry      *bool  `json:"telemetry,omitempty" env:"AIDEV_TELEMETRY"`
}

type settingsBuilder struct {
	layers []*Settings
	err    error
}

func newSettingsBuilder() *settingsBuilder {
	return &settingsBuilder{layers: make([]*Settings, 0, 4)}
}

// build folds the layers with mergo. Merge only fills empty fields, so
// layers appended earlier win over later ones.
func (b *settingsBuilder) build() (*Settings, error) {
	if b.err != nil {
		return nil, fmt.Errorf("building settings: %w", b.err)
	}

	settings := new(Settings)
	for _, layer := range b.layers {
		if err := mergo.Merge(settings, layer); err != nil {
			return nil, fmt.Errorf("merging settings layers: %w", err)
		}
	}
	return settings, nil
}

func (b *settingsBuilder) withEnv() *settingsBuilder {
	envSettings := &Settings{}
	if err := env.Parse(envSettings); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.layers = append(b.layers, envSettings)
	return b
}

func (b *settingsBuilder) withProject(proj *Project) *settingsBuilder {
	if proj == nil {
		return b
	}
	b.layers = append(b.layers, &Settings{
		DefaultProfile: proj.ActiveProfile(),
		DefaultTool:    proj.Config.DefaultTool,
	})
	return b
}

func (b *settingsBuilder) withFile(path string) *settingsBuilder {
	data, err := os.ReadFile(path)
	if err != nil {
		// A missing settings.json is the common case before 'aidev setup'
		if !os.IsNotExist(err) {
			b.err = errors.Join(b.err, err)
		}
		return b
	}

	fileSettings := &Settings{}
	if err := json.Unmarshal(data, fileSettings); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("parsing %s: %w", path, err))
		return b
	}
	b.layers = append(b.layers, fileSettings)
	return b
}

func (b *settingsBuilder) withDefaults() *settingsBuilder {
	telemetry := false
	b.layers = append(b.layers, &Settings{
		DefaultProfile: "default",
		DefaultTool:    "claude",
		RegistryURL:    DefaultRegistryURL,
		LogLevel:       "info",
		Telemetry:      &telemetry,
	})
	return b
}

// LoadSettings assembles the effective settings for the current invocation.
// Precedence, highest first: AIDEV_* environment variables, project config,
// config/settings.json, built-in defaults.
func LoadSettings(proj *Project) (*Settings, error) {
	return newSettingsBuilder().
		withEnv().
		withProject(proj).
		withFile(SettingsFile()).
		withDefaults().
		build()
}

// SaveSettings writes settings.json under the global config directory.
func SaveSettings(s *Settings) error {
	if err := EnsureLayout(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(SettingsFile(), append(data, '\n'), 0o600)
}

// ActiveProfile applies the final step of profile selection: an explicit
// --profile flag beats everything LoadSettings already folded in.
func ActiveProfile(flagValue string, s *Settings) string {
	if flagValue != "" {
		return flagValue
	}
	if s != nil && s.DefaultProfile != "" {
		return s.DefaultProfile
	}
	return "default"
}

// ActiveTool mirrors ActiveProfile for the tool argument of 'aidev launch'.
func ActiveTool(argValue string, s *Settings) string {
	if argValue != "" {
		return argValue
	}
	if s != nil && s.DefaultTool != "" {
		return s.DefaultTool
	}
	return "claude"
}
