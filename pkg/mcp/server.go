package mcp

import (
	"context"
	"io"
	"log"
	"os"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aidevhq/cli/pkg/version"
)

const ServerInstructions = `# aidev - AI Tool Configuration Manager - MCP Server

## Security Rules (MANDATORY)
1. NEVER display, log, or return environment variable VALUES in any response
2. NEVER store secret values in variables, files, or conversation context
3. Resolved configurations expose placeholder NAMES only, never what they expand to
4. When users need a variable set, point them at 'aidev env set' instead of echoing values

## Workflow
1. List available profiles with aidev_profiles_list
2. Inspect a profile's layer chain and servers with aidev_profile_show
3. Verify the environment is complete with aidev_env_check before launching
4. Preview the merged MCP configuration with aidev_resolve_config
5. Check which AI tools are installed with aidev_tools_status

## Profiles
- Profiles are JSON fragment chains merged lowest to highest precedence
- Custom profiles shadow built-in profiles of the same name
- The persistent and research profiles require extra environment variables`

// NewServer creates the aidev MCP server with all tools registered.
func NewServer() *gomcp.Server {
	server := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "aidev",
			Version: version.Version,
		},
		&gomcp.ServerOptions{
			Instructions: ServerInstructions,
		},
	)

	gomcp.AddTool(server, &gomcp.Tool{
		Name:        "aidev_profiles_list",
		Description: "List available profiles with their descriptions. Custom profiles that shadow a built-in profile are marked.",
	}, handleProfilesList)

	gomcp.AddTool(server, &gomcp.Tool{
		Name: "aidev_profile_show",
		Description: "Show a profile's resolved fragment chain, the MCP servers it configures, " +
			"and the environment variable names it references. Values are never returned.",
	}, handleProfileShow)

	gomcp.AddTool(server, &gomcp.Tool{
		Name: "aidev_env_check",
		Description: "Check whether the layered environment satisfies a profile's requirements. " +
			"Reports missing variable names with setup hints; values are never returned.",
	}, handleEnvCheck)

	gomcp.AddTool(server, &gomcp.Tool{
		Name: "aidev_resolve_config",
		Description: "Return the merged MCP configuration for a profile with placeholders left " +
			"unexpanded, plus the placeholder names it references. Secret values are never substituted.",
	}, handleResolveConfig)

	gomcp.AddTool(server, &gomcp.Tool{
		Name:        "aidev_tools_status",
		Description: "Report which supported AI tools are installed, where their binaries were found and their versions.",
	}, handleToolsStatus)

	return server
}

// RunServer starts the MCP server on stdio transport.
func RunServer(ctx context.Context) error {
	// Redirect all log output to stderr; stdout is reserved for MCP protocol
	log.SetOutput(os.Stderr)

	server := NewServer()
	err := server.Run(ctx, &gomcp.StdioTransport{})
	// EOF on stdin is normal: the client disconnected
	if err != nil && (err == io.EOF || strings.Contains(err.Error(), "EOF")) {
		return nil
	}
	return err
}
