package mcpconf

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func resolvedFixture(t *testing.T) *Resolved {
	t.Helper()
	doc := `{
  "mcpServers": {
    "github": {"command": "npx", "args": ["-y", "@modelcontextprotocol/server-github"], "env": {"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_x"}, "description": "GitHub"},
    "filesystem": {"command": "npx", "args": ["."]}
  }
}`
	return &Resolved{
		JSON:     []byte(doc),
		Servers:  []string{"filesystem", "github"},
		Disabled: []string{"stale"},
	}
}

func TestUpsertPreservesSiblingsAndForeignServers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	existing := `{
  "theme": "dark",
  "context_servers": {
    "stale": {"command": "old"},
    "mine": {"command": "hand-added"}
  }
}`
	if err := os.WriteFile(path, []byte(existing), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := WriteZedConfig(path, resolvedFixture(t)); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse: %v", err)
	}

	if doc["theme"] != "dark" {
		t.Fatal("sibling settings must survive")
	}
	section := doc["context_servers"].(map[string]interface{})
	if _, ok := section["stale"]; ok {
		t.Fatal("disabled server should be pruned")
	}
	if _, ok := section["mine"]; !ok {
		t.Fatal("hand-added servers must survive")
	}
	if _, ok := section["github"]; !ok {
		t.Fatal("enabled server missing")
	}
	if _, ok := section["filesystem"]; !ok {
		t.Fatal("enabled server missing")
	}
}

func TestUpsertCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".cursor", "mcp.json")

	if err := WriteCursorConfig(path, resolvedFixture(t)); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse: %v", err)
	}
	section := doc["mcpServers"].(map[string]interface{})
	if len(section) != 2 {
		t.Fatalf("unexpected section: %v", section)
	}
}

func TestUpsertRejectsCorruptExistingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := WriteGeminiConfig(path, resolvedFixture(t)); err == nil {
		t.Fatal("corrupt user config must not be overwritten")
	}
}

func TestWriteCodexConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	existing := `model = "o3"

[mcp_servers.stale]
command = "old"

[mcp_servers.mine]
command = "hand-added"
`
	if err := os.WriteFile(path, []byte(existing), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := WriteCodexConfig(path, resolvedFixture(t)); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse toml: %v", err)
	}

	if doc["model"] != "o3" {
		t.Fatal("existing settings must survive")
	}

	table := doc["mcp_servers"].(map[string]interface{})
	if _, ok := table["stale"]; ok {
		t.Fatal("disabled server should be pruned")
	}
	if _, ok := table["mine"]; !ok {
		t.Fatal("hand-added servers must survive")
	}

	github := table["github"].(map[string]interface{})
	if github["command"] != "npx" {
		t.Fatalf("unexpected github entry: %v", github)
	}
	if _, ok := github["description"]; ok {
		t.Fatal("non-codex keys should be filtered out")
	}

	features := doc["features"].(map[string]interface{})
	if features["rmcp_client"] != true {
		t.Fatalf("rmcp_client should default on: %v", features)
	}
}

func TestWriteCodexConfigRespectsExplicitFeature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[features]\nrmcp_client = false\n"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := WriteCodexConfig(path, resolvedFixture(t)); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var doc map[string]interface{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parse toml: %v", err)
	}
	features := doc["features"].(map[string]interface{})
	if features["rmcp_client"] != false {
		t.Fatal("explicit user setting must win")
	}
}
