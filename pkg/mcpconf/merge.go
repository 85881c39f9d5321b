package mcpconf

import (
	"encoding/json"
	"sort"

	"github.com/aidevhq/cli/pkg/util"
)

// Merge folds the fragments' mcpServers objects in order. A later
// fragment's entry for server X replaces the earlier entry wholesale;
// descriptor fields are never deep-merged. The result is deterministic for
// a given input list.
func Merge(paths []string) (*Config, error) {
	merged := &Config{MCPServers: map[string]json.RawMessage{}}
	for _, path := range paths {
		frag, err := LoadFragment(path)
		if err != nil {
			return nil, err
		}
		for name, raw := range frag.MCPServers {
			merged.MCPServers[name] = raw
		}
	}
	return merged, nil
}

// Substitute expands ${NAME} and ${NAME:-default} placeholders textually
// over the serialized config. ${NAME} with NAME unset becomes the empty
// string; the default applies when NAME is unset or empty. Substituted
// text is not re-scanned.
func Substitute(data []byte, lookup func(string) (string, bool)) []byte {
	return []byte(util.ExpandVars(string(data), lookup))
}

// Resolved is a generated config ready for a tool.
type Resolved struct {
	// JSON is the substituted config document.
	JSON []byte
	// Servers lists the enabled server names, sorted.
	Servers []string
	// Disabled lists servers pruned by "disabled": true, sorted. Writers
	// that merge into existing tool configs also remove these from there.
	Disabled []string
}

type disabledProbe struct {
	Disabled bool `json:"disabled"`
}

// Generate merges the fragment chain, prunes disabled entries, renders the
// document with sorted keys and substitutes placeholders from lookup. No
// file is written here; callers decide where the bytes go.
func Generate(paths []string, lookup func(string) (string, bool)) (*Resolved, error) {
	res, err := Preview(paths)
	if err != nil {
		return nil, err
	}
	res.JSON = Substitute(res.JSON, lookup)
	return res, nil
}

// Preview renders the merged document like Generate but leaves placeholders
// unexpanded, for callers that display configs without touching secrets.
func Preview(paths []string) (*Resolved, error) {
	merged, err := Merge(paths)
	if err != nil {
		return nil, err
	}

	res := &Resolved{}
	enabled := Config{MCPServers: map[string]json.RawMessage{}}
	for name, raw := range merged.MCPServers {
		var probe disabledProbe
		if err := json.Unmarshal(raw, &probe); err == nil && probe.Disabled {
			res.Disabled = append(res.Disabled, name)
			continue
		}
		enabled.MCPServers[name] = raw
		res.Servers = append(res.Servers, name)
	}
	sort.Strings(res.Servers)
	sort.Strings(res.Disabled)

	data, err := json.MarshalIndent(enabled, "", "  ")
	if err != nil {
		return nil, err
	}
	res.JSON = append(data, '\n')
	return res, nil
}

// serversTable re-parses the resolved document into generic maps for the
// writers that merge into existing tool configs.
func (r *Resolved) serversTable() (map[string]map[string]interface{}, error) {
	var doc struct {
		MCPServers map[string]map[string]interface{} `json:"mcpServers"`
	}
	if err := json.Unmarshal(r.JSON, &doc); err != nil {
		return nil, err
	}
	if doc.MCPServers == nil {
		doc.MCPServers = map[string]map[string]interface{}{}
	}
	return doc.MCPServers, nil
}
