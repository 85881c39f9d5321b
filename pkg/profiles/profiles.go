package profiles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/aidevhq/cli/pkg/config"
)

// builtinNames are protected from deletion. A custom profile may shadow
// them; deleting the shadow restores the built-in.
var builtinNames = map[string]bool{
	"default":    true,
	"minimal":    true,
	"persistent": true,
	"research":   true,
}

var profileNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// File is the on-disk shape of a profile fragment.
type File struct {
	Description string                     `json:"description,omitempty"`
	Environment map[string]string          `json:"environment,omitempty"`
	MCPServers  map[string]json.RawMessage `json:"mcpServers"`
}

// Info summarizes one available profile for listings.
type Info struct {
	Name        string
	Description string
	Path        string
	Custom      bool
	Shadowed    bool // a custom profile hides a built-in of the same name
}

// LoadFile parses a profile fragment. A fragment without mcpServers is
// valid and contributes no servers.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return &f, nil
}

// Load resolves and parses a profile by name.
func Load(name string) (*File, *Layers, error) {
	layers, err := ResolveLayers(name)
	if err != nil {
		return nil, nil, err
	}
	f, err := LoadFile(layers.ProfilePath)
	if err != nil {
		return nil, nil, err
	}
	return f, layers, nil
}

// List returns every available profile sorted by name. Custom profiles
// shadow built-ins of the same name.
func List() ([]Info, error) {
	builtin, err := listDir(config.ProfilesDir(), false)
	if err != nil {
		return nil, err
	}
	custom, err := listDir(config.CustomProfilesDir(), true)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]Info, len(builtin)+len(custom))
	for _, info := range builtin {
		byName[info.Name] = info
	}
	for _, info := range custom {
		if _, exists := byName[info.Name]; exists {
			info.Shadowed = true
		}
		byName[info.Name] = info
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make([]Info, 0, len(names))
	for _, name := range names {
		infos = append(infos, byName[name])
	}
	return infos, nil
}

func listDir(dir string, custom bool) ([]Info, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		path := filepath.Join(dir, entry.Name())
		info := Info{Name: name, Path: path, Custom: custom}
		if f, err := LoadFile(path); err == nil {
			info.Description = f.Description
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ValidateName guards file names derived from user input.
func ValidateName(name string) error {
	if !profileNamePattern.MatchString(name) {
		return fmt.Errorf("invalid profile name %q: use letters, digits, '-' and '_'", name)
	}
	return nil
}

// Create writes a new custom profile and returns its path. With from set,
// the source profile's fragment is cloned (flattened, not linked), the
// original's cloning behavior.
func Create(name, from, description string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if _, err := ResolveLayers(name); err == nil {
		return "", fmt.Errorf("profile %q already exists", name)
	}

	f := &File{
		Description: description,
		MCPServers:  map[string]json.RawMessage{},
	}
	if from != "" {
		src, _, err := Load(from)
		if err != nil {
			return "", err
		}
		f = src
		if description != "" {
			f.Description = description
		} else {
			f.Description = fmt.Sprintf("Cloned from %s", from)
		}
		if f.MCPServers == nil {
			f.MCPServers = map[string]json.RawMessage{}
		}
	}

	path := filepath.Join(config.CustomProfilesDir(), name+".json")
	if err := writeFragment(path, f); err != nil {
		return "", err
	}
	return path, nil
}

// Delete removes a custom profile. Built-in profiles cannot be deleted,
// only shadowed.
func Delete(name string) error {
	path := filepath.Join(config.CustomProfilesDir(), name+".json")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			if builtinNames[name] {
				return fmt.Errorf("%q is a built-in profile and cannot be deleted", name)
			}
			return fmt.Errorf("no custom profile named %q", name)
		}
		return err
	}
	return os.Remove(path)
}

// Export writes the profile's fragment JSON, pretty-printed.
func Export(name string) ([]byte, error) {
	f, _, err := Load(name)
	if err != nil {
		return nil, err
	}
	return marshalFragment(f)
}

// Import validates data as a profile fragment and installs it as a custom
// profile under name.
func Import(name string, data []byte) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return "", fmt.Errorf("not a valid profile fragment: %w", err)
	}
	if f.MCPServers == nil {
		f.MCPServers = map[string]json.RawMessage{}
	}

	path := filepath.Join(config.CustomProfilesDir(), name+".json")
	if err := writeFragment(path, &f); err != nil {
		return "", err
	}
	return path, nil
}

// PruneServer removes a server entry from every custom profile fragment
// that carries it and returns the names of the profiles touched. Built-in
// profiles are embedded assets and stay as shipped.
func PruneServer(server string) ([]string, error) {
	infos, err := listDir(config.CustomProfilesDir(), true)
	if err != nil {
		return nil, err
	}

	var touched []string
	for _, info := range infos {
		f, err := LoadFile(info.Path)
		if err != nil {
			continue
		}
		if _, ok := f.MCPServers[server]; !ok {
			continue
		}
		delete(f.MCPServers, server)
		if err := writeFragment(info.Path, f); err != nil {
			return touched, err
		}
		touched = append(touched, info.Name)
	}
	sort.Strings(touched)
	return touched, nil
}

// DiffResult compares the server sets of two profiles.
type DiffResult struct {
	OnlyA   []string
	OnlyB   []string
	Changed []string
	Same    []string
}

// Diff compares two merged server maps key by key. Descriptor equality is
// byte-level on compacted JSON.
func Diff(a, b map[string]json.RawMessage) DiffResult {
	var result DiffResult
	for name, descA := range a {
		descB, ok := b[name]
		if !ok {
			result.OnlyA = append(result.OnlyA, name)
			continue
		}
		if jsonEqual(descA, descB) {
			result.Same = append(result.Same, name)
		} else {
			result.Changed = append(result.Changed, name)
		}
	}
	for name := range b {
		if _, ok := a[name]; !ok {
			result.OnlyB = append(result.OnlyB, name)
		}
	}
	sort.Strings(result.OnlyA)
	sort.Strings(result.OnlyB)
	sort.Strings(result.Changed)
	sort.Strings(result.Same)
	return result
}

func jsonEqual(a, b json.RawMessage) bool {
	var bufA, bufB bytes.Buffer
	if err := json.Compact(&bufA, a); err != nil {
		return false
	}
	if err := json.Compact(&bufB, b); err != nil {
		return false
	}
	return bytes.Equal(bufA.Bytes(), bufB.Bytes())
}

func writeFragment(path string, f *File) error {
	data, err := marshalFragment(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func marshalFragment(f *File) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
