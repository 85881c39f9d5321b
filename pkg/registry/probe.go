package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aidevhq/cli/pkg/version"
)

// ProbeEndpoint issues a GET against a remote server endpoint. Any HTTP
// response counts as reachable, remote MCP servers routinely answer plain
// GETs with 4xx.
func ProbeEndpoint(ctx context.Context, url string) (string, error) {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("User-Agent", version.UserAgent())
	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("endpoint %s unreachable: %w", url, err)
	}
	return resp.Status(), nil
}
