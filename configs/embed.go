// Package configs bundles the built-in base layers, profiles, MCP server
// definitions, and the fallback registry into the binary. 'aidev setup'
// installs them into the aidev home directory so users can edit them.
package configs

import (
	"embed"
	"io/fs"
)

//go:embed bases profiles mcp-servers registry.json
var assets embed.FS

// FallbackRegistry returns the bundled registry snapshot, used when the
// remote registry and the local cache are both unavailable.
func FallbackRegistry() ([]byte, error) {
	return assets.ReadFile("registry.json")
}

// Bases returns the built-in base layer fragments keyed by file name.
func Bases() (map[string][]byte, error) {
	return readDir("bases")
}

// Profiles returns the built-in profile fragments keyed by file name.
func Profiles() (map[string][]byte, error) {
	return readDir("profiles")
}

// Servers returns the built-in MCP server definitions keyed by file name.
func Servers() (map[string][]byte, error) {
	return readDir("mcp-servers")
}

func readDir(dir string) (map[string][]byte, error) {
	entries, err := fs.ReadDir(assets, dir)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := assets.ReadFile(dir + "/" + e.Name())
		if err != nil {
			return nil, err
		}
		out[e.Name()] = data
	}
	return out, nil
}
