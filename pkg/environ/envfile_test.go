package environ

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# comment line
GITHUB_TOKEN=abc123

QUOTED="with spaces"
SINGLE='single quoted'
EQUALS=a=b=c
  PADDED  =  padded value
no_equals_sign_is_skipped
lowercase_key=kept
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	vars, err := ParseEnvFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := map[string]string{
		"GITHUB_TOKEN":  "abc123",
		"QUOTED":        "with spaces",
		"SINGLE":        "single quoted",
		"EQUALS":        "a=b=c",
		"PADDED":        "padded value",
		"lowercase_key": "kept",
	}
	if len(vars) != len(want) {
		t.Fatalf("got %d vars, want %d: %v", len(vars), len(want), vars)
	}
	for key, val := range want {
		if vars[key] != val {
			t.Errorf("vars[%s] = %q, want %q", key, vars[key], val)
		}
	}
}

func TestParseEnvFileMissing(t *testing.T) {
	_, err := ParseEnvFile(filepath.Join(t.TempDir(), "nope.env"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestSetAndUnsetFileVar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", ".env")

	if err := SetFileVar(path, "B_KEY", "two"); err != nil {
		t.Fatalf("set on missing file: %v", err)
	}
	if err := SetFileVar(path, "A_KEY", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := SetFileVar(path, "B_KEY", "updated"); err != nil {
		t.Fatalf("update: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "A_KEY=one\nB_KEY=updated\n" {
		t.Fatalf("unexpected file content:\n%s", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("unexpected permissions: %o", perm)
	}

	removed, err := UnsetFileVar(path, "A_KEY")
	if err != nil || !removed {
		t.Fatalf("unset: removed=%v err=%v", removed, err)
	}
	removed, err = UnsetFileVar(path, "A_KEY")
	if err != nil || removed {
		t.Fatalf("second unset should be a no-op: removed=%v err=%v", removed, err)
	}

	vars, err := ParseEnvFile(path)
	if err != nil {
		t.Fatalf("parse after unset: %v", err)
	}
	if _, ok := vars["A_KEY"]; ok {
		t.Fatal("A_KEY should be gone")
	}
	if vars["B_KEY"] != "updated" {
		t.Fatalf("B_KEY lost: %v", vars)
	}
}

func TestUnsetFileVarMissingFile(t *testing.T) {
	removed, err := UnsetFileVar(filepath.Join(t.TempDir(), "nope.env"), "KEY")
	if err != nil || removed {
		t.Fatalf("missing file should be a no-op: removed=%v err=%v", removed, err)
	}
}
