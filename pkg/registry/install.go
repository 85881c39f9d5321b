package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/mcpconf"
	"github.com/aidevhq/cli/pkg/util"
)

// Install runs the entry's install command through the user's shell and then
// saves the entry's server definition so profiles can reference it by name.
func Install(ctx context.Context, entry *Entry, stdout, stderr io.Writer) error {
	if entry.Install.Command != "" {
		shell := util.GetDefaultShell()
		if shell == nil {
			return fmt.Errorf("no shell available to run the install command")
		}
		argv := append(shell, "-c", entry.Install.Command)

		c := exec.CommandContext(ctx, argv[0], argv[1:]...)
		c.Stdout = stdout
		c.Stderr = stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("install command for %s failed: %w", entry.Name, err)
		}
	}
	return SaveDefinition(entry)
}

// SaveDefinition writes the entry's server descriptor as a custom fragment
// under the servers directory.
func SaveDefinition(entry *Entry) error {
	if len(entry.Server) == 0 {
		return fmt.Errorf("registry entry %s has no server definition", entry.Name)
	}
	srv, err := mcpconf.ParseServer(entry.Server)
	if err != nil {
		return fmt.Errorf("registry entry %s: %w", entry.Name, err)
	}
	if !srv.HasTransport() {
		return fmt.Errorf("registry entry %s has neither a command nor a URL", entry.Name)
	}

	frag := mcpconf.Config{MCPServers: map[string]json.RawMessage{entry.Name: entry.Server}}
	data, err := json.MarshalIndent(frag, "", "  ")
	if err != nil {
		return err
	}

	dir := config.CustomServersDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, entry.Name+".json"), append(data, '\n'), 0o600)
}

// Remove deletes a custom server definition. Definitions shipped with the
// CLI cannot be removed, only shadowed copies of them.
func Remove(name string) error {
	custom := filepath.Join(config.CustomServersDir(), name+".json")
	if _, err := os.Stat(custom); err != nil {
		if os.IsNotExist(err) {
			if _, berr := os.Stat(filepath.Join(config.ServersDir(), name+".json")); berr == nil {
				return fmt.Errorf("%s is a built-in server definition and cannot be removed", name)
			}
			return fmt.Errorf("no installed server definition named %s", name)
		}
		return err
	}
	return os.Remove(custom)
}
