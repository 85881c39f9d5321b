// Package mcpconf merges profile fragments into a resolved MCP config and
// writes it where each tool expects it.
package mcpconf

import (
	"encoding/json"
	"fmt"
	"os"
)

// ServerConfig is the typed view of one server descriptor, used by the
// management commands. The merge pipeline itself carries descriptors as
// raw JSON so unknown fields survive untouched.
type ServerConfig struct {
	Command     string            `json:"command,omitempty"`
	Args        []string          `json:"args,omitempty"`
	Env         map[string]string `json:"env,omitempty"`
	Cwd         string            `json:"cwd,omitempty"`
	URL         string            `json:"url,omitempty"`
	HTTPURL     string            `json:"httpUrl,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Timeout     int               `json:"timeout,omitempty"`
	AutoApprove []string          `json:"autoApprove,omitempty"`
	Disabled    bool              `json:"disabled,omitempty"`
	Description string            `json:"description,omitempty"`
}

// HasTransport reports whether the descriptor can actually be started.
func (s *ServerConfig) HasTransport() bool {
	return s.Command != "" || s.URL != "" || s.HTTPURL != ""
}

// Config is a fragment or a resolved config document.
type Config struct {
	MCPServers map[string]json.RawMessage `json:"mcpServers"`
}

// ParseServer decodes a raw descriptor into its typed view.
func ParseServer(raw json.RawMessage) (*ServerConfig, error) {
	var s ServerConfig
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("invalid server descriptor: %w", err)
	}
	return &s, nil
}

// LoadFragment reads one fragment file. A fragment without a mcpServers
// key is valid and contributes nothing. Invalid JSON is a hard error that
// names the file.
func LoadFragment(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	if cfg.MCPServers == nil {
		cfg.MCPServers = map[string]json.RawMessage{}
	}
	return &cfg, nil
}
