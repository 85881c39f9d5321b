package environ

import (
	stderrors "errors"
	"testing"

	"github.com/aidevhq/cli/pkg/errors"
)

func TestCheckListsEveryMissingVariable(t *testing.T) {
	env := NewEnv(Source{Name: SourceProcess, Vars: map[string]string{}})

	err := Check("research", nil, env)
	if err == nil {
		t.Fatal("expected error with both research requirements unset")
	}

	var missingErr *errors.MissingEnvVarsError
	if !stderrors.As(err, &missingErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if len(missingErr.Missing) != 2 {
		t.Fatalf("expected 2 missing vars, got %d: %v", len(missingErr.Missing), missingErr.Missing)
	}
	if missingErr.Missing[0].Name != "MEMORY_FILE_PATH" || missingErr.Missing[1].Name != "GITHUB_PERSONAL_ACCESS_TOKEN" {
		t.Fatalf("unexpected names: %v", missingErr.Missing)
	}
	if missingErr.Profile != "research" {
		t.Fatalf("unexpected profile: %s", missingErr.Profile)
	}
}

func TestCheckEmptyValueCountsAsMissing(t *testing.T) {
	env := NewEnv(Source{Name: SourceProcess, Vars: map[string]string{
		"MEMORY_FILE_PATH": "",
	}})

	err := Check("persistent", nil, env)
	if err == nil {
		t.Fatal("empty value should count as missing")
	}
}

func TestCheckPassesWhenSatisfied(t *testing.T) {
	env := NewEnv(Source{Name: SourceProcess, Vars: map[string]string{
		"MEMORY_FILE_PATH":             "/tmp/memory.json",
		"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_x",
	}})

	if err := Check("research", nil, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckAcceptsGithubTokenAlias(t *testing.T) {
	env := NewEnv(Source{Name: SourceProcess, Vars: map[string]string{
		"MEMORY_FILE_PATH": "/tmp/memory.json",
		"GITHUB_TOKEN":     "ghp_alias",
	}})

	if err := Check("research", nil, env); err != nil {
		t.Fatalf("alias should satisfy requirement: %v", err)
	}
}

func TestSatisfyingKeyPrefersCanonicalName(t *testing.T) {
	env := NewEnv(Source{Name: SourceProcess, Vars: map[string]string{
		"GITHUB_PERSONAL_ACCESS_TOKEN": "ghp_canonical",
		"GITHUB_TOKEN":                 "ghp_alias",
	}})

	key, ok := SatisfyingKey("GITHUB_PERSONAL_ACCESS_TOKEN", env)
	if !ok || key != "GITHUB_PERSONAL_ACCESS_TOKEN" {
		t.Fatalf("SatisfyingKey = %q, %v; want canonical name", key, ok)
	}

	env = NewEnv(Source{Name: SourceProcess, Vars: map[string]string{
		"GITHUB_TOKEN": "ghp_alias",
	}})
	key, ok = SatisfyingKey("GITHUB_PERSONAL_ACCESS_TOKEN", env)
	if !ok || key != "GITHUB_TOKEN" {
		t.Fatalf("SatisfyingKey = %q, %v; want alias", key, ok)
	}

	if _, ok := SatisfyingKey("NOT_SET_ANYWHERE", env); ok {
		t.Fatal("unset variable must not be satisfied")
	}
}

func TestCheckUnionsExplicitNames(t *testing.T) {
	env := NewEnv(Source{Name: SourceProcess, Vars: map[string]string{
		"MEMORY_FILE_PATH": "/tmp/memory.json",
	}})

	err := Check("persistent", []string{"CUSTOM_VAR", "MEMORY_FILE_PATH"}, env)
	if err == nil {
		t.Fatal("expected CUSTOM_VAR to be missing")
	}

	var missingErr *errors.MissingEnvVarsError
	if !stderrors.As(err, &missingErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if len(missingErr.Missing) != 1 || missingErr.Missing[0].Name != "CUSTOM_VAR" {
		t.Fatalf("unexpected missing list: %v", missingErr.Missing)
	}
}

func TestCheckUnknownProfileHasNoRequirements(t *testing.T) {
	env := NewEnv(Source{Name: SourceProcess, Vars: map[string]string{}})
	if err := Check("default", nil, env); err != nil {
		t.Fatalf("profiles without requirements must pass: %v", err)
	}
}

func TestIsSensitiveKey(t *testing.T) {
	sensitive := []string{
		"GITHUB_PERSONAL_ACCESS_TOKEN",
		"GITHUB_TOKEN",
		"MY_API_KEY",
		"DB_PASSWORD",
		"POSTGRES_URL",
		"stripe_webhook_secret",
	}
	for _, key := range sensitive {
		if !IsSensitiveKey(key) {
			t.Errorf("IsSensitiveKey(%s) = false, want true", key)
		}
	}

	plain := []string{"MEMORY_FILE_PATH", "WORKSPACE_DIR", "HOME", "EDITOR"}
	for _, key := range plain {
		if IsSensitiveKey(key) {
			t.Errorf("IsSensitiveKey(%s) = true, want false", key)
		}
	}
}

func TestMaskValue(t *testing.T) {
	if got := MaskValue("abc"); got != "***" {
		t.Fatalf("short values fully masked, got %q", got)
	}
	got := MaskValue("ghp_1234567890abcdef")
	if got[:3] != "ghp" || got[len(got)-3:] != "def" {
		t.Fatalf("mask should keep edges, got %q", got)
	}
	for _, c := range got[3 : len(got)-3] {
		if c != '*' {
			t.Fatalf("middle should be stars, got %q", got)
		}
	}
}

func TestValidateKeyName(t *testing.T) {
	for _, valid := range []string{"PATH", "_HIDDEN", "Db2_URL", "lowercase"} {
		if err := ValidateKeyName(valid); err != nil {
			t.Errorf("ValidateKeyName(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "1LEADING", "WITH-DASH", "WITH SPACE", "DOT.TED"} {
		if err := ValidateKeyName(invalid); err == nil {
			t.Errorf("ValidateKeyName(%q) = nil, want error", invalid)
		}
	}
}
