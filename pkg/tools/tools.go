// Package tools is the closed table of supported AI tools: how to find
// each binary, how it receives the resolved MCP config, and how to launch
// it. Unknown tool names are an explicit error, never a fallthrough.
package tools

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/aidevhq/cli/pkg/errors"
	"github.com/aidevhq/cli/pkg/mcpconf"
)

// Mode says how a tool receives the resolved config.
type Mode int

const (
	// ConfigFlagFile tools take a config file path via a flag; the
	// resolved config goes to a fresh temp file.
	ConfigFlagFile Mode = iota
	// ConfigUserFile tools read a fixed config path of their own; the
	// resolved config is merged into that file before launch.
	ConfigUserFile
)

// Tool describes one supported launch target. Name doubles as the binary
// name.
type Tool struct {
	Name        string
	DisplayName string
	Mode        Mode
	ConfigFlag  string
	ConfigPath  func() string
	WriteConfig func(path string, res *mcpconf.Resolved) error
	VersionArgs []string
	InstallURL  string
}

var supported = map[string]*Tool{
	"claude": {
		Name:        "claude",
		DisplayName: "Claude Code",
		Mode:        ConfigFlagFile,
		ConfigFlag:  "--mcp-config",
		VersionArgs: []string{"--version"},
		InstallURL:  "https://docs.anthropic.com/en/docs/claude-code",
	},
	"cursor": {
		Name:        "cursor",
		DisplayName: "Cursor",
		Mode:        ConfigUserFile,
		ConfigPath:  func() string { return filepath.Join(homeDir(), ".cursor", "mcp.json") },
		WriteConfig: mcpconf.WriteCursorConfig,
		VersionArgs: []string{"--version"},
		InstallURL:  "https://cursor.com",
	},
	"codex": {
		Name:        "codex",
		DisplayName: "Codex CLI",
		Mode:        ConfigUserFile,
		ConfigPath:  func() string { return filepath.Join(homeDir(), ".codex", "config.toml") },
		WriteConfig: mcpconf.WriteCodexConfig,
		VersionArgs: []string{"--version"},
		InstallURL:  "https://github.com/openai/codex",
	},
	"gemini": {
		Name:        "gemini",
		DisplayName: "Gemini CLI",
		Mode:        ConfigUserFile,
		ConfigPath:  func() string { return filepath.Join(homeDir(), ".gemini", "settings.json") },
		WriteConfig: mcpconf.WriteGeminiConfig,
		VersionArgs: []string{"--version"},
		InstallURL:  "https://github.com/google-gemini/gemini-cli",
	},
	"zed": {
		Name:        "zed",
		DisplayName: "Zed",
		Mode:        ConfigUserFile,
		ConfigPath:  func() string { return filepath.Join(zedConfigDir(), "settings.json") },
		WriteConfig: mcpconf.WriteZedConfig,
		VersionArgs: []string{"--version"},
		InstallURL:  "https://zed.dev",
	},
}

// names fixes the display and dispatch order.
var names = []string{"claude", "cursor", "codex", "gemini", "zed"}

// Names returns the supported tool names in their canonical order.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Lookup resolves a tool name against the closed table.
func Lookup(name string) (*Tool, error) {
	if t, ok := supported[name]; ok {
		return t, nil
	}
	return nil, &errors.ToolNotFoundError{Name: name, Supported: Names()}
}

// LaunchArgs builds the final argument list: flag-file tools get the
// config flag prepended, pass-through args are forwarded verbatim.
func (t *Tool) LaunchArgs(configPath string, passthrough []string) []string {
	if t.Mode == ConfigFlagFile && configPath != "" {
		return append([]string{t.ConfigFlag, configPath}, passthrough...)
	}
	return append([]string{}, passthrough...)
}

// WriteUserConfig merges the resolved config into the tool's own config
// file. Only valid for ConfigUserFile tools.
func (t *Tool) WriteUserConfig(res *mcpconf.Resolved) error {
	return t.WriteConfig(t.ConfigPath(), res)
}

func homeDir() string {
	home, _ := os.UserHomeDir()
	return home
}

func zedConfigDir() string {
	if runtime.GOOS == "darwin" {
		return filepath.Join(homeDir(), ".config", "zed")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "zed")
	}
	return filepath.Join(homeDir(), ".config", "zed")
}
