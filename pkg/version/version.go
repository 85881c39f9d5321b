package version

import "fmt"

// Version is the CLI version, overridable at build time via
// -ldflags "-X github.com/aidevhq/cli/pkg/version.Version=x.y.z".
var Version = "1.4.0"

// UserAgent identifies the CLI in outbound HTTP requests.
func UserAgent() string {
	return fmt.Sprintf("aidev-cli/%s", Version)
}
