package environ

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ParseEnvFile reads a NAME=value env file. Blank lines and lines starting
// with '#' are skipped; surrounding single or double quotes are stripped
// from values. Key case is preserved as written.
func ParseEnvFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	vars := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return vars, nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// WriteEnvFile writes vars as NAME=value lines, sorted by key, replacing
// the file. The file is created 0600 since it commonly holds secrets.
func WriteEnvFile(path string, vars map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%s\n", key, vars[key])
	}
	return os.WriteFile(path, []byte(b.String()), 0o600)
}

// SetFileVar upserts one variable in an env file, creating the file if
// needed.
func SetFileVar(path, key, value string) error {
	vars, err := ParseEnvFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		vars = make(map[string]string)
	}
	vars[key] = value
	return WriteEnvFile(path, vars)
}

// UnsetFileVar removes one variable from an env file. Removing a missing
// key or a missing file is not an error; it reports whether the key
// existed.
func UnsetFileVar(path, key string) (bool, error) {
	vars, err := ParseEnvFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if _, ok := vars[key]; !ok {
		return false, nil
	}
	delete(vars, key)
	return true, WriteEnvFile(path, vars)
}
