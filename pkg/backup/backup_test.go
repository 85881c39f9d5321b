package backup

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aidevhq/cli/pkg/config"
)

func seedConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("AIDEV_DIR", dir)
	if err := config.EnsureLayout(); err != nil {
		t.Fatal(err)
	}

	write := func(path, body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	write(filepath.Join(config.BasesDir(), "common.json"), `{"mcpServers": {"filesystem": {"command": "fs"}}}`)
	write(filepath.Join(config.ProfilesDir(), "default.json"), `{"mcpServers": {}}`)
	write(filepath.Join(config.CustomProfilesDir(), "team.json"), `{"mcpServers": {"github": {"command": "gh"}}}`)
	write(filepath.Join(config.CustomServersDir(), "sqlite.json"), `{"mcpServers": {"sqlite": {"command": "sq"}}}`)
	write(config.GlobalEnvFile(), "GITHUB_PERSONAL_ACCESS_TOKEN=tok\n")
	return dir
}

func TestCreateAndReadManifest(t *testing.T) {
	seedConfig(t)

	archive := filepath.Join(t.TempDir(), "test"+Extension)
	manifest, err := Create(archive, "1.2.3")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if manifest.Version != "1.2.3" {
		t.Errorf("Version = %q", manifest.Version)
	}
	if len(manifest.Profiles) != 1 || manifest.Profiles[0] != "team" {
		t.Errorf("Profiles = %v, want [team]", manifest.Profiles)
	}
	if len(manifest.MCPServers) != 1 || manifest.MCPServers[0] != "sqlite" {
		t.Errorf("MCPServers = %v, want [sqlite]", manifest.MCPServers)
	}
	if !manifest.HasEnv {
		t.Error("HasEnv = false, want true")
	}

	read, err := ReadManifest(archive)
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	if read.Version != "1.2.3" || read.Hostname != manifest.Hostname {
		t.Errorf("round-tripped manifest = %+v", read)
	}
}

func TestCreateRequiresInitializedConfig(t *testing.T) {
	t.Setenv("AIDEV_DIR", t.TempDir())

	_, err := Create(filepath.Join(t.TempDir(), "x"+Extension), "dev")
	if err == nil {
		t.Fatal("Create() on an uninitialized directory should fail")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	seedConfig(t)

	archive := filepath.Join(t.TempDir(), "roundtrip"+Extension)
	if _, err := Create(archive, "dev"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Restore into a fresh directory.
	t.Setenv("AIDEV_DIR", t.TempDir())
	manifest, err := Restore(archive)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if len(manifest.Profiles) != 1 {
		t.Fatalf("manifest.Profiles = %v", manifest.Profiles)
	}

	restored := []string{
		filepath.Join(config.BasesDir(), "common.json"),
		filepath.Join(config.CustomProfilesDir(), "team.json"),
		filepath.Join(config.CustomServersDir(), "sqlite.json"),
		config.GlobalEnvFile(),
	}
	for _, path := range restored {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing after restore: %s", path)
		}
	}

	body, err := os.ReadFile(config.GlobalEnvFile())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "GITHUB_PERSONAL_ACCESS_TOKEN=tok") {
		t.Errorf("env file content = %q", body)
	}
}

func TestRestoreRejectsEscapingEntries(t *testing.T) {
	t.Setenv("AIDEV_DIR", t.TempDir())

	archive := filepath.Join(t.TempDir(), "evil"+Extension)
	f, err := os.Create(archive)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	manifest := []byte(`{"version": "x", "created_at": "now", "hostname": "h", "profiles": [], "mcp_servers": [], "has_env": false}`)
	if err := tw.WriteHeader(&tar.Header{Name: "manifest.json", Mode: 0o600, Size: int64(len(manifest))}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(manifest); err != nil {
		t.Fatal(err)
	}
	payload := []byte("owned")
	if err := tw.WriteHeader(&tar.Header{Name: "../escape.txt", Mode: 0o600, Size: int64(len(payload))}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := Restore(archive); err == nil {
		t.Fatal("Restore() should reject entries that escape the target directory")
	}
}

func TestReadManifestRejectsPlainFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-archive.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadManifest(path); err == nil {
		t.Fatal("ReadManifest() should fail on a non-archive file")
	}
}

func TestDefaultPathShape(t *testing.T) {
	p := DefaultPath()
	if !strings.HasPrefix(p, "aidev-") || !strings.HasSuffix(p, Extension) {
		t.Fatalf("DefaultPath() = %q", p)
	}
}
