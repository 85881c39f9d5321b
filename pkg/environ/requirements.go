package environ

import (
	"github.com/aidevhq/cli/pkg/errors"
)

// VarMetadata describes a known variable for prompts and error messages.
type VarMetadata struct {
	Description string
	URL         string
	Secret      bool
}

var varMetadata = map[string]VarMetadata{
	"GITHUB_PERSONAL_ACCESS_TOKEN": {
		Description: "GitHub personal access token used by the github server",
		URL:         "https://github.com/settings/tokens",
		Secret:      true,
	},
	"GITLAB_PERSONAL_ACCESS_TOKEN": {
		Description: "GitLab personal access token used by the gitlab server",
		URL:         "https://gitlab.com/-/user_settings/personal_access_tokens",
		Secret:      true,
	},
	"POSTGRES_URL": {
		Description: "PostgreSQL connection string used by the postgres server",
		Secret:      true,
	},
	"ATLASSIAN_API_TOKEN": {
		Description: "Atlassian API token used by the atlassian server",
		URL:         "https://id.atlassian.com/manage-profile/security/api-tokens",
		Secret:      true,
	},
	"MEMORY_FILE_PATH": {
		Description: "Path where the memory server persists its knowledge graph",
	},
}

// profileRequirements maps profiles to the variables they cannot run
// without.
var profileRequirements = map[string][]string{
	"persistent": {"MEMORY_FILE_PATH"},
	"research":   {"MEMORY_FILE_PATH", "GITHUB_PERSONAL_ACCESS_TOKEN"},
}

// serverRequirements maps server names to the variables their descriptors
// reference, consulted by status and doctor.
var serverRequirements = map[string][]string{
	"github":    {"GITHUB_PERSONAL_ACCESS_TOKEN"},
	"gitlab":    {"GITLAB_PERSONAL_ACCESS_TOKEN"},
	"postgres":  {"POSTGRES_URL"},
	"atlassian": {"ATLASSIAN_API_TOKEN"},
}

// aliases lists alternative names that satisfy a requirement.
var aliases = map[string][]string{
	"GITHUB_PERSONAL_ACCESS_TOKEN": {"GITHUB_TOKEN"},
}

// Metadata returns what is known about a variable name. The zero value is
// returned for unknown names.
func Metadata(name string) VarMetadata {
	return varMetadata[name]
}

// ProfileRequirements returns the mandatory variables for a profile, nil
// for profiles with no requirements.
func ProfileRequirements(profile string) []string {
	return profileRequirements[profile]
}

// ServerRequirements returns the variables a server descriptor needs, nil
// for servers with none.
func ServerRequirements(server string) []string {
	return serverRequirements[server]
}

// SatisfyingKey returns the key whose non-empty value satisfies the
// requirement: name itself, or the first alias that is set.
func SatisfyingKey(name string, env *Env) (string, bool) {
	if env.Get(name) != "" {
		return name, true
	}
	for _, alias := range aliases[name] {
		if env.Get(alias) != "" {
			return alias, true
		}
	}
	return "", false
}

// Satisfied reports whether name (or one of its aliases) is set and
// non-empty in env.
func Satisfied(name string, env *Env) bool {
	_, ok := SatisfyingKey(name, env)
	return ok
}

// Check unions the profile's mandatory variables with the explicitly
// required names and verifies each is set and non-empty. Every missing
// variable is reported in one error rather than failing on the first.
func Check(profile string, required []string, env *Env) error {
	names := make([]string, 0, len(required)+2)
	seen := make(map[string]struct{})
	for _, name := range append(append([]string{}, profileRequirements[profile]...), required...) {
		if _, dup := seen[name]; dup || name == "" {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	var missing []errors.MissingVar
	for _, name := range names {
		if Satisfied(name, env) {
			continue
		}
		meta := varMetadata[name]
		missing = append(missing, errors.MissingVar{
			Name:        name,
			Description: meta.Description,
			URL:         meta.URL,
		})
	}
	if len(missing) > 0 {
		return &errors.MissingEnvVarsError{Profile: profile, Missing: missing}
	}
	return nil
}
