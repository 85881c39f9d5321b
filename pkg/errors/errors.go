package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ProfileNotFoundError is returned when a profile name cannot be resolved
// to a fragment file. SearchedPaths lists every location that was checked.
type ProfileNotFoundError struct {
	Name          string
	SearchedPaths []string
}

func (e *ProfileNotFoundError) Error() string {
	if len(e.SearchedPaths) == 0 {
		return fmt.Sprintf("profile %q not found", e.Name)
	}
	return fmt.Sprintf("profile %q not found (expected %s)", e.Name, strings.Join(e.SearchedPaths, " or "))
}

// MissingVar describes one required environment variable that is unset or
// empty, with enough metadata to tell the user how to obtain it.
type MissingVar struct {
	Name        string
	Description string
	URL         string
}

// MissingEnvVarsError reports every missing required variable at once.
type MissingEnvVarsError struct {
	Profile string
	Missing []MissingVar
}

func (e *MissingEnvVarsError) Error() string {
	names := make([]string, len(e.Missing))
	for i, v := range e.Missing {
		names[i] = v.Name
	}
	return fmt.Sprintf("missing required environment variables: %s", strings.Join(names, ", "))
}

// ToolNotFoundError is returned when a launch target is not in the
// supported tool table.
type ToolNotFoundError struct {
	Name      string
	Supported []string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("unsupported tool %q (supported: %s)", e.Name, strings.Join(e.Supported, ", "))
}

// ExecutableNotFoundError is returned when a tool is supported but its
// binary cannot be located on this machine.
type ExecutableNotFoundError struct {
	Name string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("executable %q not found in PATH or known install locations", e.Name)
}

// RegistryUnavailableError is returned when the MCP server registry cannot
// be reached and no cached or bundled copy is usable.
type RegistryUnavailableError struct {
	URL string
	Err error
}

func (e *RegistryUnavailableError) Error() string {
	return fmt.Sprintf("mcp server registry unavailable (%s): %v", e.URL, e.Err)
}

func (e *RegistryUnavailableError) Unwrap() error { return e.Err }

// NotInitializedError is returned by commands that need the aidev
// configuration directory before 'aidev setup' has been run.
type NotInitializedError struct {
	Dir string
}

func (e *NotInitializedError) Error() string {
	return fmt.Sprintf("aidev is not set up yet (missing %s)", e.Dir)
}

// Format wraps known CLI errors with user-facing presentation (emoji, hints).
// Unknown errors pass through unchanged.
func Format(err error) string {
	var profErr *ProfileNotFoundError
	if errors.As(err, &profErr) {
		return fmt.Sprintf("🔍 %s\nRun 'aidev profile list' to see available profiles, or 'aidev profile create %s' to create it", profErr.Error(), profErr.Name)
	}

	var envErr *MissingEnvVarsError
	if errors.As(err, &envErr) {
		var b strings.Builder
		if envErr.Profile != "" {
			fmt.Fprintf(&b, "🔑 Profile '%s' requires environment variables that are not set:\n", envErr.Profile)
		} else {
			b.WriteString("🔑 Required environment variables are not set:\n")
		}
		for _, v := range envErr.Missing {
			fmt.Fprintf(&b, "  - %s", v.Name)
			if v.Description != "" {
				fmt.Fprintf(&b, ": %s", v.Description)
			}
			if v.URL != "" {
				fmt.Fprintf(&b, " (%s)", v.URL)
			}
			b.WriteString("\n")
		}
		b.WriteString("Set them with 'aidev env set <NAME>' or add them to your .env file")
		return b.String()
	}

	var toolErr *ToolNotFoundError
	if errors.As(err, &toolErr) {
		return fmt.Sprintf("🤷 %s", toolErr.Error())
	}

	var execErr *ExecutableNotFoundError
	if errors.As(err, &execErr) {
		return fmt.Sprintf("📦 %s. Install it first, then re-run 'aidev doctor' to verify", execErr.Error())
	}

	var regErr *RegistryUnavailableError
	if errors.As(err, &regErr) {
		return fmt.Sprintf("🗿 %s\nCheck your connection, or set AIDEV_MCP_REGISTRY to an alternative registry URL", regErr.Error())
	}

	var initErr *NotInitializedError
	if errors.As(err, &initErr) {
		return fmt.Sprintf("🏗️ %s\nRun 'aidev setup' to create the configuration directory", initErr.Error())
	}

	return err.Error()
}
