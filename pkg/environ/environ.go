// Package environ builds the layered environment used for config
// resolution and tool launches. The process environment is never mutated;
// every consumer receives an explicit Env value.
package environ

import (
	"sort"
	"strings"

	"github.com/aidevhq/cli/pkg/util"
)

// Source names in precedence order, highest first.
const (
	SourceProject       = "project .env"
	SourceProjectConfig = "project config"
	SourceGlobal        = "global .env"
	SourceProfile       = "profile"
	SourceProcess       = "process"
)

// maxExpansionDepth caps nested ${VAR} expansion of env values.
const maxExpansionDepth = 10

// Source is one named layer of variables.
type Source struct {
	Name string
	Vars map[string]string
}

// Env is a layered set of environment variables. Sources are ordered
// highest precedence first and the set is read-only once built.
type Env struct {
	sources []Source
}

// NewEnv builds an Env from sources ordered highest precedence first.
// Values are taken as-is; Load is the constructor that also expands
// placeholders and dereferences secret references.
func NewEnv(sources ...Source) *Env {
	kept := make([]Source, 0, len(sources))
	for _, src := range sources {
		if len(src.Vars) == 0 {
			continue
		}
		kept = append(kept, src)
	}
	return &Env{sources: kept}
}

// Lookup returns the value for key from the highest-precedence source that
// defines it.
func (e *Env) Lookup(key string) (string, bool) {
	for _, src := range e.sources {
		if val, ok := src.Vars[key]; ok {
			return val, true
		}
	}
	return "", false
}

// Get is Lookup without the presence flag.
func (e *Env) Get(key string) string {
	val, _ := e.Lookup(key)
	return val
}

// Origin returns the name of the source that supplies key's value.
func (e *Env) Origin(key string) (string, bool) {
	for _, src := range e.sources {
		if _, ok := src.Vars[key]; ok {
			return src.Name, true
		}
	}
	return "", false
}

// Keys returns every defined variable name, sorted.
func (e *Env) Keys() []string {
	seen := make(map[string]struct{})
	for _, src := range e.sources {
		for key := range src.Vars {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Map flattens the layers into a single map, highest precedence winning.
func (e *Env) Map() map[string]string {
	flat := make(map[string]string)
	for i := len(e.sources) - 1; i >= 0; i-- {
		for key, val := range e.sources[i].Vars {
			flat[key] = val
		}
	}
	return flat
}

// Slice renders the flattened environment as KEY=VALUE pairs for
// exec.Cmd.Env, sorted for determinism.
func (e *Env) Slice() []string {
	flat := e.Map()
	pairs := make([]string, 0, len(flat))
	for key, val := range flat {
		pairs = append(pairs, key+"="+val)
	}
	sort.Strings(pairs)
	return pairs
}

// Sources returns the layers, highest precedence first. Treat the maps as
// read-only.
func (e *Env) Sources() []Source {
	out := make([]Source, len(e.sources))
	copy(out, e.sources)
	return out
}

// expandValues rewrites every source value with ${VAR} and ${VAR:-default}
// placeholders expanded against the layered environment. Expansion repeats
// until a value stops changing, so chains like A=${B}, B=${C} settle, with
// maxExpansionDepth as the cycle guard.
func (e *Env) expandValues() {
	for _, src := range e.sources {
		for key, value := range src.Vars {
			src.Vars[key] = e.expandOne(key, value)
		}
	}
}

func (e *Env) expandOne(key, value string) string {
	for i := 0; i < maxExpansionDepth; i++ {
		if !util.ContainsVarRef(value) {
			break
		}
		next := util.ExpandVars(value, func(name string) (string, bool) {
			// A value referencing its own name reads the inherited
			// process environment, so PATH=${PATH}:... extends the
			// parent value instead of recursing.
			if name == key {
				return e.processLookup(name)
			}
			return e.Lookup(name)
		})
		if next == value {
			break
		}
		value = next
	}
	return value
}

func (e *Env) processLookup(key string) (string, bool) {
	for _, src := range e.sources {
		if src.Name == SourceProcess {
			val, ok := src.Vars[key]
			return val, ok
		}
	}
	return "", false
}

func fromEnvironSlice(pairs []string) map[string]string {
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			continue
		}
		vars[key] = val
	}
	return vars
}
