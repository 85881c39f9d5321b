package environ

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/aidevhq/cli/pkg/config"
)

// Load assembles the layered environment for one invocation. Precedence,
// highest first: project .aidev/.env, project config environment, global
// ~/.aidev/.env, the profile's environment map, the inherited process
// environment.
//
// After layering, values are expanded (${VAR}, ${VAR:-default}) against the
// layered result, then keyring:// and aws-ssm:// references are
// dereferenced. Pass a nil resolver to skip dereferencing.
func Load(ctx context.Context, proj *config.Project, profileVars map[string]string, r *Resolver) *Env {
	var sources []Source

	if proj != nil {
		if vars := readEnvFile(proj.EnvFile()); len(vars) > 0 {
			sources = append(sources, Source{Name: SourceProject, Vars: vars})
		}
		if len(proj.Config.Environment) > 0 {
			sources = append(sources, Source{Name: SourceProjectConfig, Vars: copyVars(proj.Config.Environment)})
		}
	}

	if vars := readEnvFile(config.GlobalEnvFile()); len(vars) > 0 {
		sources = append(sources, Source{Name: SourceGlobal, Vars: vars})
	}

	if len(profileVars) > 0 {
		sources = append(sources, Source{Name: SourceProfile, Vars: copyVars(profileVars)})
	}

	sources = append(sources, Source{Name: SourceProcess, Vars: fromEnvironSlice(os.Environ())})

	env := &Env{sources: sources}
	env.expandValues()
	env.resolveReferences(ctx, r)
	return env
}

func readEnvFile(path string) map[string]string {
	vars, err := ParseEnvFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Str("path", path).Err(err).Msg("skipping unreadable env file")
		}
		return nil
	}
	return vars
}

func copyVars(vars map[string]string) map[string]string {
	out := make(map[string]string, len(vars))
	for key, val := range vars {
		out[key] = val
	}
	return out
}
