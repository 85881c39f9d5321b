package mcpconf

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFragment(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func noEnv(string) (string, bool) { return "", false }

func mapEnv(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		val, ok := vars[name]
		return val, ok
	}
}

func TestMergeLaterFragmentWins(t *testing.T) {
	dir := t.TempDir()
	base := writeFragment(t, dir, "common.json",
		`{"mcpServers": {"github": {"command": "npx", "timeout": 30}, "git": {"command": "uvx"}}}`)
	profile := writeFragment(t, dir, "profile.json",
		`{"mcpServers": {"github": {"command": "docker"}}}`)

	merged, err := Merge([]string{base, profile})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	var github ServerConfig
	if err := json.Unmarshal(merged.MCPServers["github"], &github); err != nil {
		t.Fatalf("unmarshal github: %v", err)
	}
	// Shallow key-level overwrite: the whole descriptor is replaced
	if github.Command != "docker" {
		t.Fatalf("later fragment should win, got command %q", github.Command)
	}
	if github.Timeout != 0 {
		t.Fatalf("descriptor fields must not deep-merge, timeout = %d", github.Timeout)
	}
	if _, ok := merged.MCPServers["git"]; !ok {
		t.Fatal("untouched keys must survive")
	}
}

func TestMergeSingleFragmentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	content := `{"mcpServers": {
		"filesystem": {"command": "npx", "args": ["-y", "@modelcontextprotocol/server-filesystem", "."]},
		"git": {"command": "uvx", "args": ["mcp-server-git"]},
		"fetch": {"command": "uvx", "args": ["mcp-server-fetch"]}
	}}`
	path := writeFragment(t, dir, "solo.json", content)

	res, err := Generate([]string{path}, noEnv)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var out Config
	if err := json.Unmarshal(res.JSON, &out); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(out.MCPServers) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out.MCPServers))
	}
	for _, name := range []string{"filesystem", "git", "fetch"} {
		if _, ok := out.MCPServers[name]; !ok {
			t.Errorf("entry %s dropped", name)
		}
	}
}

func TestMergeIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	a := writeFragment(t, dir, "a.json", `{"mcpServers": {"zeta": {"command": "z"}, "alpha": {"command": "a"}}}`)
	b := writeFragment(t, dir, "b.json", `{"mcpServers": {"mid": {"command": "m"}}}`)

	first, err := Generate([]string{a, b}, noEnv)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := Generate([]string{a, b}, noEnv)
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}
	if !bytes.Equal(first.JSON, second.JSON) {
		t.Fatal("same inputs must render byte-identical output")
	}
}

func TestMergeFragmentWithoutServersContributesNothing(t *testing.T) {
	dir := t.TempDir()
	envOnly := writeFragment(t, dir, "env.json", `{"description": "env only", "environment": {"A": "1"}}`)
	profile := writeFragment(t, dir, "p.json", `{"mcpServers": {"git": {"command": "uvx"}}}`)

	merged, err := Merge([]string{envOnly, profile})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(merged.MCPServers) != 1 {
		t.Fatalf("expected only the profile server, got %v", merged.MCPServers)
	}
}

func TestMergeInvalidJSONNamesFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeFragment(t, dir, "broken.json", `{"mcpServers": {`)

	_, err := Merge([]string{bad})
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "broken.json") {
		t.Fatalf("error should name the file: %v", err)
	}
}

func TestGenerateSubstitutesPlaceholders(t *testing.T) {
	dir := t.TempDir()
	path := writeFragment(t, dir, "p.json", `{"mcpServers": {
		"github": {"command": "npx", "env": {"GITHUB_PERSONAL_ACCESS_TOKEN": "${GITHUB_PERSONAL_ACCESS_TOKEN}"}},
		"filesystem": {"command": "npx", "args": ["${WORKSPACE_DIR:-.}"]},
		"gone": {"command": "npx", "env": {"X": "${AIDEV_TEST_NOT_SET}"}}
	}}`)

	res, err := Generate([]string{path}, mapEnv(map[string]string{
		"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_abc",
	}))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	out := string(res.JSON)
	if !strings.Contains(out, `"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_abc"`) {
		t.Fatalf("set variable not substituted:\n%s", out)
	}
	if !strings.Contains(out, `"."`) || strings.Contains(out, "WORKSPACE_DIR") {
		t.Fatalf("default not applied:\n%s", out)
	}
	if !strings.Contains(out, `"X": ""`) {
		t.Fatalf("unset variable should become empty:\n%s", out)
	}
}

func TestGenerateDoesNotRescanSubstitutedText(t *testing.T) {
	dir := t.TempDir()
	path := writeFragment(t, dir, "p.json", `{"mcpServers": {"s": {"command": "${SNEAKY}"}}}`)

	res, err := Generate([]string{path}, mapEnv(map[string]string{
		"SNEAKY": "${INNER}",
		"INNER":  "surprise",
	}))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(res.JSON), "${INNER}") {
		t.Fatalf("inserted text must stay literal:\n%s", res.JSON)
	}
}

func TestGeneratePrunesDisabledServers(t *testing.T) {
	dir := t.TempDir()
	base := writeFragment(t, dir, "common.json", `{"mcpServers": {"git": {"command": "uvx"}}}`)
	profile := writeFragment(t, dir, "p.json",
		`{"mcpServers": {"git": {"command": "uvx", "disabled": true}, "github": {"command": "npx"}}}`)

	res, err := Generate([]string{base, profile}, noEnv)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(res.Servers) != 1 || res.Servers[0] != "github" {
		t.Fatalf("unexpected enabled set: %v", res.Servers)
	}
	if len(res.Disabled) != 1 || res.Disabled[0] != "git" {
		t.Fatalf("unexpected disabled set: %v", res.Disabled)
	}
	if strings.Contains(string(res.JSON), `"git"`) {
		t.Fatalf("disabled server leaked into output:\n%s", res.JSON)
	}
}

func TestWriteResolved(t *testing.T) {
	path, err := WriteResolved("claude", []byte(`{"mcpServers": {}}`))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { os.Remove(path) })

	if !strings.Contains(filepath.Base(path), "aidev-mcp-claude-") {
		t.Fatalf("unexpected temp name: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != `{"mcpServers": {}}` {
		t.Fatalf("unexpected content: %s", data)
	}
}
