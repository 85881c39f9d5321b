package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/environ"
	aideverrors "github.com/aidevhq/cli/pkg/errors"
	"github.com/aidevhq/cli/pkg/mcpconf"
	"github.com/aidevhq/cli/pkg/profiles"
	"github.com/aidevhq/cli/pkg/tools"
	"github.com/aidevhq/cli/pkg/util"
)

func textResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{
			&gomcp.TextContent{Text: msg},
		},
	}
}

func errorResult(msg string) (*gomcp.CallToolResult, any, error) {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{
			&gomcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

// --- Tool argument types ---

type ProfilesListArgs struct{}

type ProfileShowArgs struct {
	Profile string `json:"profile,omitempty" jsonschema:"Profile name (default: default)"`
}

type EnvCheckArgs struct {
	Profile string   `json:"profile,omitempty" jsonschema:"Profile name (default: default)"`
	Require []string `json:"require,omitempty" jsonschema:"Extra variable names that must be set"`
}

type ResolveConfigArgs struct {
	Profile string `json:"profile,omitempty" jsonschema:"Profile name (default: default)"`
}

type ToolsStatusArgs struct{}

// ProfileMetadata is the safe listing shape; it never carries variable values.
type ProfileMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Custom      bool   `json:"custom"`
	Shadowed    bool   `json:"shadowed,omitempty"`
}

// --- Tool handlers ---

func handleProfilesList(_ context.Context, _ *gomcp.CallToolRequest, _ ProfilesListArgs) (*gomcp.CallToolResult, any, error) {
	if !config.Initialized() {
		return errorResult("aidev is not initialized. Run 'aidev setup' first.")
	}

	infos, err := profiles.List()
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to list profiles: %v", err))
	}

	metadata := make([]ProfileMetadata, len(infos))
	for i, info := range infos {
		metadata[i] = ProfileMetadata{
			Name:        info.Name,
			Description: info.Description,
			Custom:      info.Custom,
			Shadowed:    info.Shadowed,
		}
	}

	data, _ := json.MarshalIndent(metadata, "", "  ")
	return textResult(fmt.Sprintf("Found %d profiles:\n%s", len(metadata), string(data))), nil, nil
}

func handleProfileShow(_ context.Context, _ *gomcp.CallToolRequest, args ProfileShowArgs) (*gomcp.CallToolResult, any, error) {
	file, layers, err := profiles.Load(args.Profile)
	if err != nil {
		return errorResult(err.Error())
	}

	res, err := mcpconf.Preview(layers.Paths)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to merge profile fragments: %v", err))
	}

	envKeys := make([]string, 0, len(file.Environment))
	for key := range file.Environment {
		envKeys = append(envKeys, key)
	}
	sort.Strings(envKeys)

	var b strings.Builder
	fmt.Fprintf(&b, "Profile: %s\n", layers.Profile)
	if file.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", file.Description)
	}
	fmt.Fprintf(&b, "Fragment chain (lowest precedence first):\n")
	for _, path := range layers.Paths {
		fmt.Fprintf(&b, "  - %s\n", path)
	}
	fmt.Fprintf(&b, "Servers: %s\n", joinOrNone(res.Servers))
	if len(res.Disabled) > 0 {
		fmt.Fprintf(&b, "Disabled: %s\n", strings.Join(res.Disabled, ", "))
	}
	fmt.Fprintf(&b, "Environment defaults (names only): %s\n", joinOrNone(envKeys))
	fmt.Fprintf(&b, "Referenced placeholders: %s", joinOrNone(util.VarRefs(string(res.JSON))))

	return textResult(b.String()), nil, nil
}

func handleEnvCheck(ctx context.Context, _ *gomcp.CallToolRequest, args EnvCheckArgs) (*gomcp.CallToolResult, any, error) {
	file, layers, err := profiles.Load(args.Profile)
	if err != nil {
		return errorResult(err.Error())
	}

	// References stay unresolved here: a keyring:// or aws-ssm:// value
	// counts as set, and no secret store is contacted from a tool handler.
	proj := config.FindProject(3)
	env := environ.Load(ctx, proj, file.Environment, nil)

	if err := environ.Check(layers.Profile, args.Require, env); err != nil {
		var missing *aideverrors.MissingEnvVarsError
		if stderrors.As(err, &missing) {
			var b strings.Builder
			fmt.Fprintf(&b, "Environment for profile %s is missing %d variable(s):\n", layers.Profile, len(missing.Missing))
			for _, v := range missing.Missing {
				fmt.Fprintf(&b, "  - %s", v.Name)
				if v.Description != "" {
					fmt.Fprintf(&b, ": %s", v.Description)
				}
				if v.URL != "" {
					fmt.Fprintf(&b, " (%s)", v.URL)
				}
				b.WriteString("\n")
			}
			b.WriteString("Set them with 'aidev env set NAME VALUE'.")
			return textResult(b.String()), nil, nil
		}
		return errorResult(err.Error())
	}

	return textResult(fmt.Sprintf("Environment satisfies profile %s.", layers.Profile)), nil, nil
}

func handleResolveConfig(_ context.Context, _ *gomcp.CallToolRequest, args ResolveConfigArgs) (*gomcp.CallToolResult, any, error) {
	_, layers, err := profiles.Load(args.Profile)
	if err != nil {
		return errorResult(err.Error())
	}

	res, err := mcpconf.Preview(layers.Paths)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to merge profile fragments: %v", err))
	}

	refs := util.VarRefs(string(res.JSON))
	return textResult(fmt.Sprintf(
		"Merged configuration for profile %s (placeholders unexpanded):\n%s\nReferenced placeholders: %s",
		layers.Profile, string(res.JSON), joinOrNone(refs),
	)), nil, nil
}

func handleToolsStatus(ctx context.Context, _ *gomcp.CallToolRequest, _ ToolsStatusArgs) (*gomcp.CallToolResult, any, error) {
	detections := tools.DetectAll(ctx)

	data, _ := json.MarshalIndent(detections, "", "  ")
	installed := 0
	for _, d := range detections {
		if d.Installed {
			installed++
		}
	}
	return textResult(fmt.Sprintf("%d of %d supported tools installed:\n%s", installed, len(detections), string(data))), nil, nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
