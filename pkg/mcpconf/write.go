package mcpconf

import (
	"fmt"
	"os"
)

// WriteResolved writes the resolved document to a fresh temporary file for
// tools that take a config-file flag. The caller owns the file's
// lifecycle; nothing here deletes it. No file exists if an earlier
// pipeline stage failed, since Generate runs first.
func WriteResolved(tool string, data []byte) (string, error) {
	f, err := os.CreateTemp("", fmt.Sprintf("aidev-mcp-%s-*.json", tool))
	if err != nil {
		return "", fmt.Errorf("creating resolved config file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing resolved config: %w", err)
	}
	return f.Name(), nil
}
