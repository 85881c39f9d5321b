// Package quickstart inspects a project tree, scores stack signals and
// recommends a profile to initialize the project with.
package quickstart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aidevhq/cli/pkg/config"
)

// Detection is one stack signal with a confidence score in [0, 1].
type Detection struct {
	Stack      string
	Confidence float64
	Reasons    []string
}

// Recommendation maps detections to a profile and suggested servers.
type Recommendation struct {
	Profile    string
	Confidence float64
	Rationale  string
	Servers    []string
}

// Detect runs every stack detector against dir and returns the non-zero
// signals sorted by confidence, strongest first.
func Detect(dir string) []Detection {
	detectors := []func(string) Detection{
		detectJavaScript,
		detectPython,
		detectGo,
		detectDocker,
		detectKubernetes,
	}

	var out []Detection
	for _, detect := range detectors {
		if d := detect(dir); d.Confidence > 0 {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].Stack < out[j].Stack
	})
	return out
}

// stackServers suggests registry servers per detected stack.
var stackServers = map[string][]string{
	"javascript": {"git", "github"},
	"python":     {"git", "github", "fetch"},
	"go":         {"git", "github"},
	"docker":     {"git", "filesystem"},
	"kubernetes": {"git", "filesystem", "fetch"},
}

// Recommend picks a profile for the detections. Infrastructure-heavy
// projects get the persistent profile so session memory carries across
// long-running operational work; everything else gets default.
func Recommend(detections []Detection) Recommendation {
	if len(detections) == 0 {
		return Recommendation{
			Profile:   "default",
			Rationale: "no stack signals found",
		}
	}

	top := detections[0]
	profile := "default"
	if top.Stack == "docker" || top.Stack == "kubernetes" {
		profile = "persistent"
	}

	seen := make(map[string]bool)
	var servers []string
	for _, d := range detections {
		for _, s := range stackServers[d.Stack] {
			if !seen[s] {
				seen[s] = true
				servers = append(servers, s)
			}
		}
	}

	return Recommendation{
		Profile:    profile,
		Confidence: top.Confidence,
		Rationale:  strings.Join(top.Reasons, "; "),
		Servers:    servers,
	}
}

// Apply initializes the project directory with the chosen profile and
// returns the path of the created config directory.
func Apply(dir, profile string) (string, error) {
	cfg := config.ProjectConfig{Profile: profile}
	if existing := readExistingConfig(dir); existing != nil {
		cfg = *existing
		cfg.Profile = profile
	}
	if err := config.WriteProjectConfig(dir, cfg); err != nil {
		return "", err
	}
	if err := config.WriteProjectProfile(dir, profile); err != nil {
		return "", err
	}
	return filepath.Join(dir, config.ProjectDirName), nil
}

// readExistingConfig keeps an already initialized project's settings so a
// re-run only switches the profile.
func readExistingConfig(dir string) *config.ProjectConfig {
	path := filepath.Join(dir, config.ProjectDirName, config.ProjectConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var cfg config.ProjectConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil
	}
	return &cfg
}

func detectJavaScript(dir string) Detection {
	d := Detection{Stack: "javascript"}
	if fileExists(dir, "package.json") {
		d.add(0.6, "Found package.json")
	}
	if fileExists(dir, "tsconfig.json") {
		d.add(0.1, "Found tsconfig.json")
	}
	if hasSources(dir, ".js") {
		d.add(0.1, "JavaScript sources present")
	}
	if hasSources(dir, ".ts") {
		d.add(0.1, "TypeScript sources present")
	}
	if fileExists(dir, "next.config.js") || fileExists(dir, "next.config.mjs") {
		d.add(0.1, "Found Next.js config")
	}
	return d.capped()
}

func detectPython(dir string) Detection {
	d := Detection{Stack: "python"}
	for _, marker := range []string{"requirements.txt", "pyproject.toml", "Pipfile", "setup.py"} {
		if fileExists(dir, marker) {
			d.add(0.5, "Found "+marker)
			break
		}
	}
	if hasSources(dir, ".py") {
		d.add(0.2, "Python sources present")
	}
	if dirExists(dir, ".venv") || dirExists(dir, "venv") {
		d.add(0.1, "Virtual environment present")
	}
	return d.capped()
}

func detectGo(dir string) Detection {
	d := Detection{Stack: "go"}
	if fileExists(dir, "go.mod") {
		d.add(0.6, "Found go.mod")
	}
	if hasSources(dir, ".go") {
		d.add(0.2, "Go sources present")
	}
	if fileExists(dir, "go.sum") {
		d.add(0.1, "Found go.sum")
	}
	return d.capped()
}

func detectDocker(dir string) Detection {
	d := Detection{Stack: "docker"}
	if fileExists(dir, "docker-compose.yml") || fileExists(dir, "docker-compose.yaml") {
		d.add(0.5, "Found docker-compose file")
	}
	if fileExists(dir, "Dockerfile") {
		d.add(0.4, "Found Dockerfile")
	}
	return d.capped()
}

func detectKubernetes(dir string) Detection {
	d := Detection{Stack: "kubernetes"}
	for _, name := range []string{"k8s", "kubernetes", "manifests", "deploy"} {
		if dirExists(dir, name) {
			d.add(0.5, "Found "+name+"/ directory")
			break
		}
	}
	if globMatches(dir, "*.k8s.yaml") || globMatches(dir, "*.k8s.yml") {
		d.add(0.2, "Found *.k8s.yaml manifests")
	}
	return d.capped()
}

func (d *Detection) add(score float64, reason string) {
	d.Confidence += score
	d.Reasons = append(d.Reasons, reason)
}

func (d Detection) capped() Detection {
	if d.Confidence > 1.0 {
		d.Confidence = 1.0
	}
	return d
}

func fileExists(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && !info.IsDir()
}

func dirExists(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && info.IsDir()
}

func globMatches(dir, pattern string) bool {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	return err == nil && len(matches) > 0
}

// hasSources checks the top level and src/ for files with the extension.
func hasSources(dir, ext string) bool {
	if globMatches(dir, "*"+ext) {
		return true
	}
	src := filepath.Join(dir, "src")
	found := false
	filepath.WalkDir(src, func(path string, entry os.DirEntry, err error) error {
		if err != nil || found {
			return filepath.SkipAll
		}
		if entry.IsDir() && entry.Name() == "node_modules" {
			return filepath.SkipDir
		}
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ext) {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
