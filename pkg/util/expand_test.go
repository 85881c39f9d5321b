package util

import (
	"reflect"
	"testing"
)

func TestExpandVars(t *testing.T) {
	env := map[string]string{
		"HOST":  "db.internal",
		"EMPTY": "",
	}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple reference",
			input:    "postgres://${HOST}/app",
			expected: "postgres://db.internal/app",
		},
		{
			name:     "unset variable becomes empty",
			input:    "token=${MISSING}",
			expected: "token=",
		},
		{
			name:     "default used when unset",
			input:    "${MISSING:-fallback}",
			expected: "fallback",
		},
		{
			name:     "default used when set but empty",
			input:    "${EMPTY:-fallback}",
			expected: "fallback",
		},
		{
			name:     "set variable beats default",
			input:    "${HOST:-other}",
			expected: "db.internal",
		},
		{
			name:     "multiple references in one string",
			input:    "${HOST}:${MISSING:-5432}",
			expected: "db.internal:5432",
		},
		{
			name:     "no references",
			input:    "plain text $HOST ${not-a-ref",
			expected: "plain text $HOST ${not-a-ref",
		},
		{
			name:     "empty default",
			input:    "x${MISSING:-}y",
			expected: "xy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandVars(tt.input, lookup); got != tt.expected {
				t.Fatalf("ExpandVars(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExpandVarsDoesNotRescanInsertedText(t *testing.T) {
	env := map[string]string{"A": "${B}", "B": "resolved"}
	lookup := func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
	if got := ExpandVars("${A}", lookup); got != "${B}" {
		t.Fatalf("expected single-pass expansion, got %q", got)
	}
}

func TestVarRefs(t *testing.T) {
	input := `{"env": {"TOKEN": "${GITHUB_PERSONAL_ACCESS_TOKEN}", "URL": "${GITLAB_API_URL:-https://gitlab.com}", "AGAIN": "${GITHUB_PERSONAL_ACCESS_TOKEN}"}}`
	got := VarRefs(input)
	want := []string{"GITHUB_PERSONAL_ACCESS_TOKEN", "GITLAB_API_URL"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("VarRefs = %v, want %v", got, want)
	}

	if ContainsVarRef("nothing here") {
		t.Fatal("expected no reference detected")
	}
	if !ContainsVarRef("${X}") {
		t.Fatal("expected reference detected")
	}
}
