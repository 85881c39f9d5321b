package mcpconf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// The user-file writers merge into existing tool configs rather than
// replacing them: enabled servers are upserted, servers disabled by the
// profile are removed, and everything else in the file (sibling settings,
// servers added by hand) is preserved.

// WriteCursorConfig updates the mcpServers section of Cursor's mcp.json.
func WriteCursorConfig(path string, res *Resolved) error {
	return upsertJSONSection(path, "mcpServers", res)
}

// WriteZedConfig updates the context_servers section inside Zed's
// settings.json, leaving the rest of the editor settings alone.
func WriteZedConfig(path string, res *Resolved) error {
	return upsertJSONSection(path, "context_servers", res)
}

// WriteGeminiConfig updates the mcpServers section of Gemini's
// settings.json.
func WriteGeminiConfig(path string, res *Resolved) error {
	return upsertJSONSection(path, "mcpServers", res)
}

func upsertJSONSection(configPath, jsonKey string, res *Resolved) error {
	servers, err := res.serversTable()
	if err != nil {
		return fmt.Errorf("resolved config is not valid JSON after substitution: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return err
	}

	doc := map[string]interface{}{}
	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	section, ok := doc[jsonKey].(map[string]interface{})
	if !ok {
		section = map[string]interface{}{}
	}
	for _, name := range res.Disabled {
		delete(section, name)
	}
	for name, descriptor := range servers {
		section[name] = descriptor
	}
	doc[jsonKey] = section

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(configPath, append(out, '\n'), 0o600)
}

// codexKeys is the descriptor subset Codex understands; other keys are
// dropped to avoid schema warnings on its side.
var codexKeys = []string{"command", "args", "cwd", "url", "env"}

// WriteCodexConfig updates the [mcp_servers] tables of Codex's
// config.toml and enables the rmcp_client feature unless the user already
// set it.
func WriteCodexConfig(path string, res *Resolved) error {
	servers, err := res.serversTable()
	if err != nil {
		return fmt.Errorf("resolved config is not valid JSON after substitution: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	doc := map[string]interface{}{}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	table, ok := doc["mcp_servers"].(map[string]interface{})
	if !ok {
		table = map[string]interface{}{}
	}
	for _, name := range res.Disabled {
		delete(table, name)
	}
	for name, descriptor := range servers {
		filtered := map[string]interface{}{}
		for _, key := range codexKeys {
			if val, found := descriptor[key]; found && val != nil {
				filtered[key] = val
			}
		}
		table[name] = filtered
	}
	doc["mcp_servers"] = table

	features, ok := doc["features"].(map[string]interface{})
	if !ok {
		features = map[string]interface{}{}
	}
	if _, set := features["rmcp_client"]; !set {
		features["rmcp_client"] = true
	}
	doc["features"] = features

	out, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, out, 0o600)
}
