package registry

import (
	"strings"

	"github.com/gobwas/glob"

	"github.com/aidevhq/cli/pkg/util"
)

// Search filters entries by query. A query containing glob metacharacters
// is compiled with gobwas/glob and matched against names and tags; a plain
// query matches as a case-insensitive substring of the name, description
// or tags. An empty query returns everything.
func Search(entries []Entry, query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return entries
	}

	if strings.ContainsAny(q, "*?[{") {
		if g, err := glob.Compile(q); err == nil {
			return globMatch(entries, g)
		}
		// An invalid pattern degrades to a substring search.
	}

	var out []Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Description), q) ||
			util.TagMatches(e.Tags, q) {
			out = append(out, e)
		}
	}
	return out
}

// FilterDefinitions narrows installed definitions by name the same way
// Search narrows registry entries: glob when the pattern carries
// metacharacters, substring otherwise.
func FilterDefinitions(defs []Definition, pattern string) []Definition {
	p := strings.ToLower(strings.TrimSpace(pattern))
	if p == "" {
		return defs
	}

	var match func(name string) bool
	if strings.ContainsAny(p, "*?[{") {
		if g, err := glob.Compile(p); err == nil {
			match = func(name string) bool { return g.Match(name) }
		}
	}
	if match == nil {
		match = func(name string) bool { return strings.Contains(name, p) }
	}

	var out []Definition
	for _, def := range defs {
		if match(strings.ToLower(def.Name)) {
			out = append(out, def)
		}
	}
	return out
}

func globMatch(entries []Entry, g glob.Glob) []Entry {
	var out []Entry
	for _, e := range entries {
		if g.Match(strings.ToLower(e.Name)) || anyTagGlob(g, e.Tags) {
			out = append(out, e)
		}
	}
	return out
}

func anyTagGlob(g glob.Glob, tags []string) bool {
	for _, tag := range tags {
		if g.Match(strings.ToLower(tag)) {
			return true
		}
	}
	return false
}
