package environ

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	sensitiveKeyPatterns []*regexp.Regexp
	keyNamePattern       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func init() {
	patterns := []string{
		`(?i).*SECRET.*`,
		`(?i).*PRIVATE[_.]?KEY.*`,
		`(?i).*PASSWORD.*`,
		`(?i).*PASSWD.*`,
		`(?i).*TOKEN.*`,
		`(?i).*API[_.]?KEY.*`,
		`(?i).*ACCESS[_.]?KEY.*`,
		`(?i).*AUTH[_.]?KEY.*`,
		`(?i).*CREDENTIAL.*`,
		`(?i).*DATABASE[_.]?URL.*`,
		`(?i).*CONNECTION[_.]?STRING.*`,
		`(?i).*DSN$`,
		`(?i).*WEBHOOK[_.]?SECRET.*`,
		`(?i)^POSTGRES_URL$`,
	}
	for _, p := range patterns {
		sensitiveKeyPatterns = append(sensitiveKeyPatterns, regexp.MustCompile("^"+p+"$"))
	}
}

// IsSensitiveKey reports whether a variable name looks like it holds a
// credential. Registered metadata wins over pattern matching.
func IsSensitiveKey(key string) bool {
	if meta, ok := varMetadata[key]; ok {
		return meta.Secret
	}
	for _, re := range sensitiveKeyPatterns {
		if re.MatchString(key) {
			return true
		}
	}
	return false
}

// ValidateKeyName rejects variable names the env file format cannot carry.
func ValidateKeyName(key string) error {
	if key == "" {
		return fmt.Errorf("variable name cannot be empty")
	}
	if len(key) > 256 {
		return fmt.Errorf("variable name exceeds 256 characters")
	}
	if !keyNamePattern.MatchString(key) {
		return fmt.Errorf("variable name %q must start with a letter or underscore and contain only letters, digits and underscores", key)
	}
	return nil
}

// MaskValue censors a secret for display, keeping the first and last three
// characters of longer values.
func MaskValue(value string) string {
	if len(value) <= 6 {
		return strings.Repeat("*", len(value))
	}
	masked := value[:3] + strings.Repeat("*", len(value)-6) + value[len(value)-3:]
	if len(masked) > 24 {
		return masked[:24]
	}
	return masked
}
