// Package registry fetches, caches and searches the MCP server registry.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/aidevhq/cli/configs"
	"github.com/aidevhq/cli/pkg/config"
	"github.com/aidevhq/cli/pkg/errors"
	"github.com/aidevhq/cli/pkg/version"
)

// Entry is one registry listing.
type Entry struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Author        string          `json:"author,omitempty"`
	Repository    string          `json:"repository,omitempty"`
	Version       string          `json:"version,omitempty"`
	Install       InstallSpec     `json:"install"`
	Configuration Configuration   `json:"configuration"`
	Tags          []string        `json:"tags,omitempty"`
	// Server is the descriptor installed as a fragment, carried raw so
	// registry entries can use any descriptor field.
	Server json.RawMessage `json:"server,omitempty"`
}

// InstallSpec describes how to put the server binary on this machine.
type InstallSpec struct {
	Type    string `json:"type,omitempty"`
	Command string `json:"command,omitempty"`
}

// Configuration lists the env vars a server expects.
type Configuration struct {
	Required []string `json:"required,omitempty"`
	Optional []string `json:"optional,omitempty"`
}

// Document is the registry wire format.
type Document struct {
	Updated string  `json:"updated,omitempty"`
	Servers []Entry `json:"servers"`
}

// Source labels where a fetched registry came from.
type Source string

const (
	SourceRemote   Source = "remote"
	SourceCache    Source = "cache"
	SourceEmbedded Source = "embedded"
)

// Registry is a fetched registry with its provenance.
type Registry struct {
	Entries []Entry
	Source  Source
	URL     string
	Updated string
}

// Find returns the entry with the given name, or nil.
func (r *Registry) Find(name string) *Entry {
	for i := range r.Entries {
		if r.Entries[i].Name == name {
			return &r.Entries[i]
		}
	}
	return nil
}

// Client fetches the registry with an ordinary HTTP timeout and falls back
// to the cache, then the embedded copy, when the network is unavailable.
type Client struct {
	url       string
	cachePath string
	http      *resty.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:       url,
		cachePath: config.RegistryCacheFile(),
		http: resty.New().
			SetTimeout(10 * time.Second).
			SetHeader("User-Agent", version.UserAgent()),
	}
}

// Fetch returns the registry. Without force a valid cache short-circuits.
// Otherwise: remote (cached on success), stale cache, embedded copy. Only
// when every source fails is the registry unavailable.
func (c *Client) Fetch(ctx context.Context, force bool) (*Registry, error) {
	if !force {
		if reg, err := c.readCache(); err == nil {
			return reg, nil
		}
	}

	remote, fetchErr := c.fetchRemote(ctx)
	if fetchErr == nil {
		c.writeCache(remote)
		return remote, nil
	}
	log.Warn().Str("url", c.url).Err(fetchErr).Msg("registry fetch failed, trying cache and embedded copy")

	if reg, err := c.readCache(); err == nil {
		return reg, nil
	}

	if reg, err := embeddedRegistry(); err == nil {
		return reg, nil
	}

	return nil, &errors.RegistryUnavailableError{URL: c.url, Err: fetchErr}
}

func (c *Client) fetchRemote(ctx context.Context) (*Registry, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("registry returned %s", resp.Status())
	}

	doc, err := parseDocument(resp.Body())
	if err != nil {
		return nil, err
	}
	return &Registry{Entries: doc.Servers, Source: SourceRemote, URL: c.url, Updated: doc.Updated}, nil
}

func (c *Client) readCache() (*Registry, error) {
	data, err := os.ReadFile(c.cachePath)
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return &Registry{Entries: doc.Servers, Source: SourceCache, URL: c.url, Updated: doc.Updated}, nil
}

func (c *Client) writeCache(reg *Registry) {
	data, err := json.MarshalIndent(Document{Updated: reg.Updated, Servers: reg.Entries}, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.cachePath), 0o700); err != nil {
		return
	}
	if err := os.WriteFile(c.cachePath, data, 0o600); err != nil {
		log.Warn().Str("path", c.cachePath).Err(err).Msg("could not cache registry")
	}
}

func embeddedRegistry() (*Registry, error) {
	data, err := configs.FallbackRegistry()
	if err != nil {
		return nil, err
	}
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return &Registry{Entries: doc.Servers, Source: SourceEmbedded, Updated: doc.Updated}, nil
}

func parseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid registry document: %w", err)
	}
	if len(doc.Servers) == 0 {
		return nil, fmt.Errorf("registry document lists no servers")
	}
	return &doc, nil
}
