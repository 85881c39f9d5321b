// Package profiles resolves profile names to their layered fragment chain
// and manages the profile files themselves.
package profiles

import (
	"os"
	"path/filepath"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/errors"
)

// persistentAllowList names the only profiles that may include the
// persistent base layer.
var persistentAllowList = map[string]bool{
	"persistent": true,
	"research":   true,
}

// Layers is the resolved fragment chain for one profile. Paths are ordered
// lowest precedence first; the profile's own fragment is always last.
type Layers struct {
	Profile     string
	Paths       []string
	ProfilePath string
	Custom      bool
}

// ResolveLayers maps a profile name to its ordered fragment files:
// the common base when present, the conversational base for every profile
// except "default", the persistent base only for allow-listed profiles,
// then the profile fragment itself. A custom fragment shadows the built-in
// one of the same name. A missing profile fragment is the pipeline's one
// hard failure and names both searched paths.
func ResolveLayers(profile string) (*Layers, error) {
	if profile == "" {
		profile = "default"
	}

	var paths []string
	if p := filepath.Join(config.BasesDir(), "common.json"); fileExists(p) {
		paths = append(paths, p)
	}
	if profile != "default" {
		if p := filepath.Join(config.BasesDir(), "conversational.json"); fileExists(p) {
			paths = append(paths, p)
		}
	}
	if persistentAllowList[profile] {
		if p := filepath.Join(config.BasesDir(), "persistent.json"); fileExists(p) {
			paths = append(paths, p)
		}
	}

	customPath := filepath.Join(config.CustomProfilesDir(), profile+".json")
	builtinPath := filepath.Join(config.ProfilesDir(), profile+".json")

	switch {
	case fileExists(customPath):
		paths = append(paths, customPath)
		return &Layers{Profile: profile, Paths: paths, ProfilePath: customPath, Custom: true}, nil
	case fileExists(builtinPath):
		paths = append(paths, builtinPath)
		return &Layers{Profile: profile, Paths: paths, ProfilePath: builtinPath}, nil
	default:
		return nil, &errors.ProfileNotFoundError{
			Name:          profile,
			SearchedPaths: []string{customPath, builtinPath},
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
