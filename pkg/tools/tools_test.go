package tools

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aidevhq/cli/pkg/errors"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		tool, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if tool.Name != name {
			t.Fatalf("lookup %s returned %s", name, tool.Name)
		}
		if tool.Mode == ConfigUserFile {
			if tool.ConfigPath == nil || tool.WriteConfig == nil {
				t.Fatalf("%s must carry a config path and writer", name)
			}
		}
		if tool.Mode == ConfigFlagFile && tool.ConfigFlag == "" {
			t.Fatalf("%s must carry a config flag", name)
		}
	}
}

func TestLookupUnknownToolListsSupported(t *testing.T) {
	_, err := Lookup("vim")
	if err == nil {
		t.Fatal("expected error")
	}

	var notFound *errors.ToolNotFoundError
	if !stderrors.As(err, &notFound) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if notFound.Name != "vim" {
		t.Fatalf("unexpected name: %s", notFound.Name)
	}
	if len(notFound.Supported) != len(Names()) {
		t.Fatalf("supported set should be complete: %v", notFound.Supported)
	}
}

func TestLaunchArgs(t *testing.T) {
	claude, _ := Lookup("claude")
	args := claude.LaunchArgs("/tmp/resolved.json", []string{"--continue", "hello"})
	want := []string{"--mcp-config", "/tmp/resolved.json", "--continue", "hello"}
	if len(args) != len(want) {
		t.Fatalf("args = %v", args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}

	zed, _ := Lookup("zed")
	args = zed.LaunchArgs("/tmp/resolved.json", []string{"."})
	if len(args) != 1 || args[0] != "." {
		t.Fatalf("user-file tools must not get the flag: %v", args)
	}
}

func TestResolveBinaryPath(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "aidev-test-tool")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PATH", dir)

	res, err := ResolveBinary("aidev-test-tool")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Strategy != StrategyPath || res.Path != bin {
		t.Fatalf("unexpected resolution: %+v", res)
	}
}

func TestResolveBinaryFallbackDirs(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "aidev-fallback-tool")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("PATH", t.TempDir())
	orig := fallbackDirs
	fallbackDirs = []string{dir}
	t.Cleanup(func() { fallbackDirs = orig })

	res, err := ResolveBinary("aidev-fallback-tool")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Strategy != StrategyKnownDir {
		t.Fatalf("unexpected strategy: %s", res.Strategy)
	}
}

func TestResolveBinaryMissing(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	orig := fallbackDirs
	fallbackDirs = nil
	t.Cleanup(func() { fallbackDirs = orig })

	_, err := ResolveBinary("aidev-no-such-tool")
	var notFound *errors.ExecutableNotFoundError
	if !stderrors.As(err, &notFound) {
		t.Fatalf("unexpected error: %v", err)
	}
	if notFound.Name != "aidev-no-such-tool" {
		t.Fatalf("unexpected name: %s", notFound.Name)
	}
}

func TestResolveBinarySkipsNonExecutable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "aidev-plain-file"), []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("PATH", t.TempDir())
	orig := fallbackDirs
	fallbackDirs = []string{dir}
	t.Cleanup(func() { fallbackDirs = orig })

	if _, err := ResolveBinary("aidev-plain-file"); err == nil {
		t.Fatal("non-executable files must not resolve")
	}
}
