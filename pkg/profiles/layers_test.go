package profiles

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/errors"
)

// installLayout writes a full set of bases and profile fragments under a
// temporary AIDEV_DIR.
func installLayout(t *testing.T) {
	t.Helper()
	t.Setenv("AIDEV_DIR", t.TempDir())
	if err := config.EnsureLayout(); err != nil {
		t.Fatalf("ensure layout: %v", err)
	}

	fragments := map[string]string{
		filepath.Join(config.BasesDir(), "common.json"):         `{"mcpServers": {"filesystem": {"command": "npx"}, "git": {"command": "uvx"}}}`,
		filepath.Join(config.BasesDir(), "conversational.json"): `{"mcpServers": {"fetch": {"command": "uvx"}}}`,
		filepath.Join(config.BasesDir(), "persistent.json"):     `{"mcpServers": {"memory": {"command": "npx"}}}`,
		filepath.Join(config.ProfilesDir(), "default.json"):     `{"description": "Default", "mcpServers": {"github": {"command": "npx"}}}`,
		filepath.Join(config.ProfilesDir(), "minimal.json"):     `{"description": "Minimal", "mcpServers": {}}`,
		filepath.Join(config.ProfilesDir(), "persistent.json"):  `{"description": "Persistent", "mcpServers": {}}`,
		filepath.Join(config.ProfilesDir(), "research.json"):    `{"description": "Research", "mcpServers": {"github": {"command": "npx"}}}`,
	}
	for path, content := range fragments {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
}

func layerNames(t *testing.T, layers *Layers) []string {
	t.Helper()
	names := make([]string, 0, len(layers.Paths))
	for _, p := range layers.Paths {
		names = append(names, filepath.Base(p))
	}
	return names
}

func TestResolveLayersDefaultSkipsConversational(t *testing.T) {
	installLayout(t)

	layers, err := ResolveLayers("default")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	got := strings.Join(layerNames(t, layers), ",")
	if got != "common.json,default.json" {
		t.Fatalf("unexpected chain for default: %s", got)
	}
}

func TestResolveLayersEmptyNameIsDefault(t *testing.T) {
	installLayout(t)

	layers, err := ResolveLayers("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if layers.Profile != "default" {
		t.Fatalf("empty name should resolve to default, got %s", layers.Profile)
	}
}

func TestResolveLayersPersistentAllowList(t *testing.T) {
	installLayout(t)

	tests := []struct {
		profile string
		want    string
	}{
		{"minimal", "common.json,conversational.json,minimal.json"},
		{"persistent", "common.json,conversational.json,persistent.json,persistent.json"},
		{"research", "common.json,conversational.json,persistent.json,research.json"},
	}
	for _, tt := range tests {
		layers, err := ResolveLayers(tt.profile)
		if err != nil {
			t.Fatalf("resolve %s: %v", tt.profile, err)
		}
		if got := strings.Join(layerNames(t, layers), ","); got != tt.want {
			t.Errorf("chain for %s = %s, want %s", tt.profile, got, tt.want)
		}
		if layers.ProfilePath != layers.Paths[len(layers.Paths)-1] {
			t.Errorf("profile fragment must be last for %s", tt.profile)
		}
	}
}

func TestResolveLayersUnknownProfileNamesBothPaths(t *testing.T) {
	installLayout(t)

	_, err := ResolveLayers("nope")
	if err == nil {
		t.Fatal("expected error for unknown profile")
	}

	var notFound *errors.ProfileNotFoundError
	if !stderrors.As(err, &notFound) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if notFound.Name != "nope" {
		t.Fatalf("unexpected name: %s", notFound.Name)
	}
	if len(notFound.SearchedPaths) != 2 {
		t.Fatalf("expected both searched paths, got %v", notFound.SearchedPaths)
	}
	for _, p := range notFound.SearchedPaths {
		if !strings.HasSuffix(p, "nope.json") {
			t.Fatalf("searched path should name the fragment file: %s", p)
		}
	}
}

func TestResolveLayersCustomShadowsBuiltin(t *testing.T) {
	installLayout(t)

	customPath := filepath.Join(config.CustomProfilesDir(), "research.json")
	if err := os.WriteFile(customPath, []byte(`{"mcpServers": {}}`), 0o600); err != nil {
		t.Fatalf("write custom: %v", err)
	}

	layers, err := ResolveLayers("research")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !layers.Custom {
		t.Fatal("custom fragment should win")
	}
	if layers.ProfilePath != customPath {
		t.Fatalf("unexpected profile path: %s", layers.ProfilePath)
	}
}

func TestResolveLayersMissingBasesAreSkipped(t *testing.T) {
	t.Setenv("AIDEV_DIR", t.TempDir())
	if err := config.EnsureLayout(); err != nil {
		t.Fatalf("ensure layout: %v", err)
	}
	path := filepath.Join(config.ProfilesDir(), "bare.json")
	if err := os.WriteFile(path, []byte(`{"mcpServers": {}}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	layers, err := ResolveLayers("bare")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(layers.Paths) != 1 || layers.Paths[0] != path {
		t.Fatalf("only the profile fragment should remain: %v", layers.Paths)
	}
}
