package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/mcpconf"
)

// Definition is an installed server definition on disk.
type Definition struct {
	Name     string
	Path     string
	Custom   bool
	Shadowed bool
	Server   *mcpconf.ServerConfig
}

// ListDefinitions returns the installed server definitions, sorted by name.
// A custom definition shadows a built-in one of the same name.
func ListDefinitions() ([]Definition, error) {
	builtin, err := readDefinitionDir(config.ServersDir(), false)
	if err != nil {
		return nil, err
	}
	custom, err := readDefinitionDir(config.CustomServersDir(), true)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]Definition, len(builtin)+len(custom))
	for _, d := range builtin {
		byName[d.Name] = d
	}
	for _, d := range custom {
		if _, ok := byName[d.Name]; ok {
			d.Shadowed = true
		}
		byName[d.Name] = d
	}

	out := make([]Definition, 0, len(byName))
	for _, d := range byName {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// FindDefinition returns the installed definition with the given name, or
// nil when none exists.
func FindDefinition(name string) (*Definition, error) {
	defs, err := ListDefinitions()
	if err != nil {
		return nil, err
	}
	for i := range defs {
		if defs[i].Name == name {
			return &defs[i], nil
		}
	}
	return nil, nil
}

func readDefinitionDir(dir string, custom bool) ([]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []Definition
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		frag, err := mcpconf.LoadFragment(path)
		if err != nil {
			continue
		}
		for name, raw := range frag.MCPServers {
			svc, err := mcpconf.ParseServer(raw)
			if err != nil {
				continue
			}
			out = append(out, Definition{Name: name, Path: path, Custom: custom, Server: svc})
		}
	}
	return out, nil
}

// RequiredVars returns the env vars a definition expects, read from its
// registry entry when available and otherwise inferred from its env map.
func RequiredVars(entry *Entry, def *Definition) []string {
	if entry != nil && len(entry.Configuration.Required) > 0 {
		return entry.Configuration.Required
	}
	if def == nil || def.Server == nil {
		return nil
	}
	var out []string
	for _, v := range def.Server.Env {
		if name, ok := placeholderName(v); ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func placeholderName(value string) (string, bool) {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return "", false
	}
	name := value[2 : len(value)-1]
	if i := strings.Index(name, ":-"); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return "", false
	}
	return name, true
}
