package util

import "regexp"

// envVarPattern matches ${VAR} and ${VAR:-default} references.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandVars replaces ${VAR} and ${VAR:-default} references in input using
// lookup. A reference to an unset variable expands to the empty string; the
// default applies when the variable is unset or empty. The replacement is
// purely textual and inserted values are not re-scanned.
func ExpandVars(input string, lookup func(string) (string, bool)) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if submatch == nil {
			return match
		}
		name := submatch[1]
		defaultVal := submatch[2]

		if val, ok := lookup(name); ok && val != "" {
			return val
		}
		return defaultVal
	})
}

// ContainsVarRef reports whether input holds at least one ${VAR} reference.
func ContainsVarRef(input string) bool {
	return envVarPattern.MatchString(input)
}

// VarRefs returns the distinct variable names referenced in input, in order
// of first appearance.
func VarRefs(input string) []string {
	var names []string
	seen := map[string]bool{}
	for _, m := range envVarPattern.FindAllStringSubmatch(input, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}
