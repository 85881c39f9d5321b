// Package backup archives and restores the aidev configuration directory.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/errors"
)

// Extension is the suffix of every backup archive.
const Extension = ".aidev-backup.tar.gz"

const manifestName = "manifest.json"

// Manifest is the first entry in every archive and describes its contents.
type Manifest struct {
	Version    string   `json:"version"`
	CreatedAt  string   `json:"created_at"`
	Hostname   string   `json:"hostname"`
	Profiles   []string `json:"profiles"`
	MCPServers []string `json:"mcp_servers"`
	HasEnv     bool     `json:"has_env"`
}

// DefaultPath returns the archive path used when the user gives none:
// aidev-<host>-<timestamp> with Extension, in the current directory.
func DefaultPath() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "local"
	}
	if i := strings.IndexByte(hostname, '.'); i > 0 {
		hostname = hostname[:i]
	}
	stamp := time.Now().Format("20060102-150405")
	return fmt.Sprintf("aidev-%s-%s%s", hostname, stamp, Extension)
}

// Create writes a tar.gz of the configured profiles, server definitions and
// the global env file to path. The manifest is the archive's first entry.
// A partial archive is removed when writing fails.
func Create(path, version string) (*Manifest, error) {
	if !config.Initialized() {
		return nil, &errors.NotInitializedError{Dir: config.AidevDir()}
	}

	manifest := buildManifest(version)
	files := collectFiles()

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	if err := writeArchive(f, manifest, files); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}
	return manifest, nil
}

func writeArchive(w io.Writer, manifest *Manifest, files []string) error {
	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	hdr := &tar.Header{
		Name:    manifestName,
		Mode:    0o600,
		Size:    int64(len(manifestJSON)),
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if _, err := tw.Write(manifestJSON); err != nil {
		return err
	}

	root := config.AidevDir()
	for _, rel := range files {
		if err := addFile(tw, root, rel); err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}

func addFile(tw *tar.Writer, root, rel string) error {
	full := filepath.Join(root, rel)
	info, err := os.Stat(full)
	if err != nil {
		return err
	}
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = filepath.ToSlash(rel)

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	f, err := os.Open(full)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(tw, f)
	return err
}

// ReadManifest returns the manifest of an archive without extracting it.
func ReadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("not a backup archive: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if hdr.Name != manifestName {
			continue
		}
		var m Manifest
		if err := json.NewDecoder(tr).Decode(&m); err != nil {
			return nil, fmt.Errorf("invalid backup manifest: %w", err)
		}
		return &m, nil
	}
	return nil, fmt.Errorf("backup archive has no manifest")
}

// Restore extracts an archive into the configuration directory, overwriting
// existing files. Entry names must stay inside the directory; anything that
// escapes it aborts the restore.
func Restore(path string) (*Manifest, error) {
	manifest, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	root := config.AidevDir()
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if hdr.Name == manifestName {
			continue
		}

		target, err := securePath(root, hdr.Name)
		if err != nil {
			return nil, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o700); err != nil {
				return nil, err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
				return nil, err
			}
			if err := extractFile(target, tr, hdr); err != nil {
				return nil, err
			}
		default:
			// Symlinks and other special entries never appear in our
			// archives and are not restored.
		}
	}
	return manifest, nil
}

func extractFile(target string, r io.Reader, hdr *tar.Header) error {
	mode := os.FileMode(hdr.Mode).Perm()
	if mode == 0 {
		mode = 0o600
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func securePath(root, name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("backup entry %q escapes the configuration directory", name)
	}
	return filepath.Join(root, clean), nil
}

func buildManifest(version string) *Manifest {
	hostname, _ := os.Hostname()
	hasEnv := false
	if _, err := os.Stat(config.GlobalEnvFile()); err == nil {
		hasEnv = true
	}
	return &Manifest{
		Version:    version,
		CreatedAt:  time.Now().Format(time.RFC3339),
		Hostname:   hostname,
		Profiles:   jsonStems(config.CustomProfilesDir()),
		MCPServers: jsonStems(config.CustomServersDir()),
		HasEnv:     hasEnv,
	}
}

// collectFiles returns the archive members relative to the aidev directory.
func collectFiles() []string {
	root := config.AidevDir()
	dirs := []string{
		config.BasesDir(),
		config.ProfilesDir(),
		config.CustomProfilesDir(),
		config.ServersDir(),
		config.CustomServersDir(),
	}

	var files []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			rel, err := filepath.Rel(root, filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			files = append(files, rel)
		}
	}

	if rel, err := filepath.Rel(root, config.GlobalEnvFile()); err == nil {
		if _, err := os.Stat(config.GlobalEnvFile()); err == nil {
			files = append(files, rel)
		}
	}
	if _, err := os.Stat(config.SettingsFile()); err == nil {
		if rel, err := filepath.Rel(root, config.SettingsFile()); err == nil {
			files = append(files, rel)
		}
	}

	sort.Strings(files)
	return files
}

func jsonStems(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}
	var stems []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		stems = append(stems, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(stems)
	if stems == nil {
		stems = []string{}
	}
	return stems
}
