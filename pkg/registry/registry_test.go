package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/mcpconf"
)

const sampleDoc = `{
  "updated": "2025-06-01",
  "servers": [
    {
      "name": "github",
      "description": "GitHub repositories, issues and pull requests",
      "install": {"type": "npm", "command": "npm install -g @modelcontextprotocol/server-github"},
      "configuration": {"required": ["GITHUB_PERSONAL_ACCESS_TOKEN"]},
      "tags": ["github", "version_control"],
      "server": {"command": "mcp-server-github", "env": {"GITHUB_PERSONAL_ACCESS_TOKEN": "${GITHUB_PERSONAL_ACCESS_TOKEN}"}}
    },
    {
      "name": "sqlite",
      "description": "Query local SQLite databases",
      "install": {"type": "uv", "command": "uv tool install mcp-server-sqlite"},
      "configuration": {},
      "tags": ["database", "sql"],
      "server": {"command": "mcp-server-sqlite", "args": ["--db", "${SQLITE_DB_PATH:-./data.db}"]}
    }
  ]
}`

func testClient(t *testing.T, url string) *Client {
	t.Helper()
	t.Setenv("AIDEV_DIR", t.TempDir())
	return NewClient(url)
}

func TestFetchRemoteWritesCache(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleDoc))
	}))
	defer ts.Close()

	c := testClient(t, ts.URL)
	reg, err := c.Fetch(context.Background(), false)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if reg.Source != SourceRemote {
		t.Fatalf("Source = %q, want %q", reg.Source, SourceRemote)
	}
	if len(reg.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(reg.Entries))
	}
	if reg.Find("sqlite") == nil {
		t.Fatal("Find(sqlite) = nil")
	}
	if _, err := os.Stat(c.cachePath); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
}

func TestFetchPrefersCacheUnlessForced(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(sampleDoc))
	}))
	defer ts.Close()

	c := testClient(t, ts.URL)
	if _, err := c.Fetch(context.Background(), false); err != nil {
		t.Fatalf("priming Fetch() error = %v", err)
	}

	reg, err := c.Fetch(context.Background(), false)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if reg.Source != SourceCache {
		t.Fatalf("Source = %q, want %q", reg.Source, SourceCache)
	}
	if hits != 1 {
		t.Fatalf("remote hit %d times, want 1", hits)
	}

	reg, err = c.Fetch(context.Background(), true)
	if err != nil {
		t.Fatalf("forced Fetch() error = %v", err)
	}
	if reg.Source != SourceRemote {
		t.Fatalf("forced Source = %q, want %q", reg.Source, SourceRemote)
	}
	if hits != 2 {
		t.Fatalf("remote hit %d times after force, want 2", hits)
	}
}

func TestFetchFallsBackToCacheWhenRemoteFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := testClient(t, ts.URL)
	if err := os.MkdirAll(filepath.Dir(c.cachePath), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.cachePath, []byte(sampleDoc), 0o600); err != nil {
		t.Fatal(err)
	}

	reg, err := c.Fetch(context.Background(), true)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if reg.Source != SourceCache {
		t.Fatalf("Source = %q, want %q", reg.Source, SourceCache)
	}
}

func TestFetchFallsBackToEmbeddedCopy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := testClient(t, ts.URL)
	reg, err := c.Fetch(context.Background(), false)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if reg.Source != SourceEmbedded {
		t.Fatalf("Source = %q, want %q", reg.Source, SourceEmbedded)
	}
	if reg.Find("github") == nil {
		t.Fatal("embedded registry has no github entry")
	}
}

func TestSearch(t *testing.T) {
	entries := []Entry{
		{Name: "github", Description: "GitHub repositories and issues", Tags: []string{"github", "version_control"}},
		{Name: "gitlab", Description: "GitLab projects", Tags: []string{"gitlab", "version_control"}},
		{Name: "postgres", Description: "PostgreSQL queries", Tags: []string{"database", "sql"}},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"github", "gitlab", "postgres"}},
		{"git", []string{"github", "gitlab"}},
		{"ISSUES", []string{"github"}},
		{"version control", []string{"github", "gitlab"}},
		{"database", []string{"postgres"}},
		{"git*", []string{"github", "gitlab"}},
		{"*sql*", []string{"postgres"}},
		{"nothing-matches", nil},
	}
	for _, tt := range tests {
		got := Search(entries, tt.query)
		if len(got) != len(tt.want) {
			t.Fatalf("Search(%q) returned %d entries, want %d", tt.query, len(got), len(tt.want))
		}
		for i, e := range got {
			if e.Name != tt.want[i] {
				t.Errorf("Search(%q)[%d] = %q, want %q", tt.query, i, e.Name, tt.want[i])
			}
		}
	}
}

func TestFilterDefinitions(t *testing.T) {
	defs := []Definition{
		{Name: "github"},
		{Name: "gitlab"},
		{Name: "postgres"},
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"", []string{"github", "gitlab", "postgres"}},
		{"git", []string{"github", "gitlab"}},
		{"GIT*", []string{"github", "gitlab"}},
		{"*hub", []string{"github"}},
		{"nothing", nil},
	}
	for _, tt := range tests {
		got := FilterDefinitions(defs, tt.pattern)
		if len(got) != len(tt.want) {
			t.Fatalf("FilterDefinitions(%q) returned %d entries, want %d", tt.pattern, len(got), len(tt.want))
		}
		for i, d := range got {
			if d.Name != tt.want[i] {
				t.Errorf("FilterDefinitions(%q)[%d] = %q, want %q", tt.pattern, i, d.Name, tt.want[i])
			}
		}
	}
}

func TestSaveAndRemoveDefinition(t *testing.T) {
	t.Setenv("AIDEV_DIR", t.TempDir())
	if err := config.EnsureLayout(); err != nil {
		t.Fatal(err)
	}

	entry := &Entry{
		Name:   "sqlite",
		Server: []byte(`{"command": "mcp-server-sqlite", "args": ["--db", "${SQLITE_DB_PATH:-./data.db}"]}`),
	}
	if err := SaveDefinition(entry); err != nil {
		t.Fatalf("SaveDefinition() error = %v", err)
	}

	def, err := FindDefinition("sqlite")
	if err != nil {
		t.Fatalf("FindDefinition() error = %v", err)
	}
	if def == nil {
		t.Fatal("FindDefinition(sqlite) = nil after SaveDefinition")
	}
	if !def.Custom {
		t.Error("saved definition should be custom")
	}
	if def.Server.Command != "mcp-server-sqlite" {
		t.Errorf("Command = %q", def.Server.Command)
	}

	if err := Remove("sqlite"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	def, err = FindDefinition("sqlite")
	if err != nil {
		t.Fatal(err)
	}
	if def != nil {
		t.Fatal("definition still present after Remove")
	}

	if err := Remove("sqlite"); err == nil {
		t.Fatal("removing a missing definition should fail")
	}
}

func TestRemoveProtectsBuiltinDefinitions(t *testing.T) {
	t.Setenv("AIDEV_DIR", t.TempDir())
	if err := config.EnsureLayout(); err != nil {
		t.Fatal(err)
	}

	builtin := filepath.Join(config.ServersDir(), "github.json")
	frag := `{"mcpServers": {"github": {"command": "mcp-server-github"}}}`
	if err := os.WriteFile(builtin, []byte(frag), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Remove("github"); err == nil {
		t.Fatal("removing a built-in definition should fail")
	}

	// A custom shadow of the same name is removable and leaves the
	// built-in definition in place.
	entry := &Entry{Name: "github", Server: []byte(`{"command": "my-github"}`)}
	if err := SaveDefinition(entry); err != nil {
		t.Fatal(err)
	}
	def, err := FindDefinition("github")
	if err != nil {
		t.Fatal(err)
	}
	if def == nil || !def.Custom || !def.Shadowed {
		t.Fatalf("expected a shadowing custom definition, got %+v", def)
	}
	if err := Remove("github"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	def, err = FindDefinition("github")
	if err != nil {
		t.Fatal(err)
	}
	if def == nil || def.Custom {
		t.Fatalf("built-in definition should remain, got %+v", def)
	}
}

func TestRequiredVars(t *testing.T) {
	entry := &Entry{Configuration: Configuration{Required: []string{"GITHUB_PERSONAL_ACCESS_TOKEN"}}}
	got := RequiredVars(entry, nil)
	if len(got) != 1 || got[0] != "GITHUB_PERSONAL_ACCESS_TOKEN" {
		t.Fatalf("RequiredVars from entry = %v", got)
	}

	def := &Definition{
		Name: "example",
		Server: &mcpconf.ServerConfig{
			Command: "example-server",
			Env: map[string]string{
				"API_TOKEN": "${API_TOKEN}",
				"WORKSPACE": "${WORKSPACE:-.}",
				"MODE":      "plain",
			},
		},
	}
	got = RequiredVars(nil, def)
	want := []string{"API_TOKEN", "WORKSPACE"}
	if len(got) != len(want) {
		t.Fatalf("RequiredVars inferred = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RequiredVars[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
