package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ProjectConfig is the content of .aidev/config.json.
type ProjectConfig struct {
	Profile     string            `json:"profile,omitempty"`
	DefaultTool string            `json:"defaultTool,omitempty"`
	Environment map[string]string `json:"environment,omitempty"`
}

// Project is a located project directory with its parsed configuration.
type Project struct {
	// Root is the directory containing .aidev.
	Root   string
	Config ProjectConfig
}

// Dir returns the project's .aidev directory.
func (p *Project) Dir() string {
	return filepath.Join(p.Root, ProjectDirName)
}

// EnvFile returns the project's .aidev/.env path.
func (p *Project) EnvFile() string {
	return filepath.Join(p.Dir(), EnvFileName)
}

// ActiveProfile returns the project profile: the plain-text profile file
// written by 'aidev use' wins over the config.json field.
func (p *Project) ActiveProfile() string {
	data, err := os.ReadFile(filepath.Join(p.Dir(), ProjectProfileFile))
	if err == nil {
		if name := strings.TrimSpace(string(data)); name != "" {
			return name
		}
	}
	return p.Config.Profile
}

// FindProject walks up from the working directory looking for a .aidev
// directory, up to maxDepth parents. Returns nil when none is found.
func FindProject(maxDepth int) *Project {
	// Check env var override for search depth
	if envDepth := os.Getenv("AIDEV_CONFIG_SEARCH_DEPTH"); envDepth != "" {
		if d, err := strconv.Atoi(envDepth); err == nil {
			maxDepth = d
		}
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return nil
	}

	home := homeDir()
	for i := 0; i <= maxDepth; i++ {
		marker := filepath.Join(currentDir, ProjectDirName)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			proj := &Project{Root: currentDir}
			data, err := os.ReadFile(filepath.Join(marker, ProjectConfigFile))
			if err == nil {
				// Tolerate a malformed config.json: the directory still marks a project
				_ = json.Unmarshal(data, &proj.Config)
			}
			return proj
		}

		// The home directory holds global aidev state, never project state
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir || currentDir == home {
			break
		}
		currentDir = parentDir
	}
	return nil
}

// WriteProjectConfig writes .aidev/config.json under root, creating the
// project directory if needed.
func WriteProjectConfig(root string, cfg ProjectConfig) error {
	dir := filepath.Join(root, ProjectDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, ProjectConfigFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteProjectProfile records the active profile name for a project.
func WriteProjectProfile(root, profile string) error {
	dir := filepath.Join(root, ProjectDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ProjectProfileFile), []byte(profile+"\n"), 0o600)
}
