package cmd

import (
	"testing"

	"github.com/aidevhq/cli/pkg/environ"
)

func TestRunCommandRequiresAtLeastOneArg(t *testing.T) {
	if err := runCmd.Args(runCmd, []string{}); err == nil {
		t.Fatal("expected error when no command args are provided")
	}
	if err := runCmd.Args(runCmd, []string{"env"}); err != nil {
		t.Fatalf("expected no error for one arg, got %v", err)
	}
}

func TestToolCommandsRegistered(t *testing.T) {
	for _, name := range []string{"launch", "claude", "cursor", "codex", "gemini", "zed", "run", "generate"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("command %s is not registered on the root command", name)
		}
	}
}

func TestInjectionStatsCountsWinningKeysPerSource(t *testing.T) {
	env := environ.NewEnv(
		environ.Source{Name: environ.SourceProject, Vars: map[string]string{"A": "1", "B": "2"}},
		environ.Source{Name: environ.SourceProfile, Vars: map[string]string{"B": "shadowed", "C": "3"}},
		environ.Source{Name: environ.SourceProcess, Vars: map[string]string{"PATH": "/bin", "C": "overridden"}},
	)

	count, sources := injectionStats(env)
	if count != 3 {
		t.Fatalf("unexpected count: got %d want 3", count)
	}
	want := []string{environ.SourceProject, environ.SourceProfile}
	if len(sources) != len(want) || sources[0] != want[0] || sources[1] != want[1] {
		t.Fatalf("unexpected sources: got %v want %v", sources, want)
	}
}

func TestInjectionStatsFallsBackToProcessEnvironment(t *testing.T) {
	env := environ.NewEnv(
		environ.Source{Name: environ.SourceProcess, Vars: map[string]string{"PATH": "/bin"}},
	)

	count, sources := injectionStats(env)
	if count != 0 {
		t.Fatalf("unexpected count: got %d want 0", count)
	}
	if len(sources) != 1 || sources[0] != "process environment" {
		t.Fatalf("unexpected sources: %v", sources)
	}
}
