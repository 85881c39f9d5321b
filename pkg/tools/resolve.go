package tools

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/aidevhq/cli/pkg/errors"
)

// Strategy names which resolution step located a binary.
type Strategy string

const (
	StrategyPath     Strategy = "PATH"
	StrategyKnownDir Strategy = "known install dir"
)

// fallbackDirs are probed in order when PATH lookup fails. npm and
// Homebrew installs commonly live here without being on PATH in GUI
// sessions. Tests override this.
var fallbackDirs = defaultFallbackDirs()

func defaultFallbackDirs() []string {
	home, _ := os.UserHomeDir()
	return []string{
		"/opt/homebrew/bin",
		"/usr/local/bin",
		filepath.Join(home, ".local", "bin"),
		filepath.Join(home, ".npm-global", "bin"),
	}
}

// Resolution is the typed outcome of a binary lookup.
type Resolution struct {
	Path     string
	Strategy Strategy
}

// ResolveBinary locates an executable: PATH first, then the well-known
// install directories.
func ResolveBinary(name string) (*Resolution, error) {
	if path, err := exec.LookPath(name); err == nil {
		return &Resolution{Path: path, Strategy: StrategyPath}, nil
	}

	for _, dir := range fallbackDirs {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode().Perm()&0o111 == 0 {
			continue
		}
		return &Resolution{Path: candidate, Strategy: StrategyKnownDir}, nil
	}
	return nil, &errors.ExecutableNotFoundError{Name: name}
}

// Detection is a tool's install status for status and doctor output.
type Detection struct {
	Tool      *Tool
	Installed bool
	Path      string
	Strategy  Strategy
	Version   string
}

// Detect checks whether a tool's binary is present and probes its version.
func Detect(ctx context.Context, name string) (*Detection, error) {
	tool, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	det := &Detection{Tool: tool}
	res, err := ResolveBinary(tool.Name)
	if err != nil {
		return det, nil
	}
	det.Installed = true
	det.Path = res.Path
	det.Strategy = res.Strategy
	det.Version = probeVersion(ctx, res.Path, tool.VersionArgs)
	return det, nil
}

// DetectAll probes every supported tool in canonical order.
func DetectAll(ctx context.Context) []*Detection {
	detections := make([]*Detection, 0, len(names))
	for _, name := range names {
		det, err := Detect(ctx, name)
		if err != nil {
			continue
		}
		detections = append(detections, det)
	}
	return detections
}

func probeVersion(ctx context.Context, path string, args []string) string {
	if len(args) == 0 {
		return ""
	}
	out, err := exec.CommandContext(ctx, path, args...).Output()
	if err != nil {
		return ""
	}
	version := strings.TrimSpace(string(out))
	if i := strings.IndexByte(version, '\n'); i >= 0 {
		version = version[:i]
	}
	return version
}
