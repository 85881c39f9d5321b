package util

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// GetDefaultShell returns the user's shell as an argv prefix, falling back
// through common locations. Returns nil when no shell can be found.
func GetDefaultShell() []string {
	if runtime.GOOS == "windows" {
		if _, err := exec.LookPath("pwsh"); err == nil {
			return []string{"pwsh"}
		}
		if _, err := exec.LookPath("powershell"); err == nil {
			return []string{"powershell"}
		}
		return []string{"cmd"}
	}

	shell := os.Getenv("SHELL")
	if shell != "" {
		if _, err := os.Stat(shell); err == nil {
			return []string{shell}
		}
	}

	for _, sh := range []string{"/bin/zsh", "/bin/bash", "/bin/sh"} {
		if _, err := os.Stat(sh); err == nil {
			return []string{sh}
		}
	}
	return nil
}

// OpenBrowser opens url with the platform's default browser.
func OpenBrowser(url string) error {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		c = exec.Command("open", url)
	case "windows":
		c = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	if err := c.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// NormalizeTag lowercases a tag and treats underscores as spaces so user
// input matches loosely.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.ReplaceAll(tag, "_", " "))
}

// TagMatches reports whether any tag loosely contains the user's query.
func TagMatches(tags []string, query string) bool {
	normalizedQuery := NormalizeTag(query)
	for _, tag := range tags {
		if strings.Contains(NormalizeTag(tag), normalizedQuery) {
			return true
		}
	}
	return false
}
