package environ

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
	gokeyring "github.com/zalando/go-keyring"
)

// Value reference schemes. A value that is exactly a reference is
// dereferenced at load time:
//
//	keyring://<service>/<key>   OS keyring entry
//	aws-ssm://<parameter-name>  SSM parameter, decrypted
const (
	KeyringScheme = "keyring://"
	SSMScheme     = "aws-ssm://"
)

// Resolver dereferences secret value references. The function fields exist
// so tests can substitute fakes without a keyring or AWS account.
type Resolver struct {
	Keyring func(service, key string) (string, error)
	SSM     func(ctx context.Context, name string) (string, error)
}

// DefaultResolver wires the OS keyring and a lazily-built SSM client.
func DefaultResolver() *Resolver {
	var (
		once   sync.Once
		client *ssm.Client
		cfgErr error
	)
	return &Resolver{
		Keyring: gokeyring.Get,
		SSM: func(ctx context.Context, name string) (string, error) {
			once.Do(func() {
				cfg, err := awsconfig.LoadDefaultConfig(ctx)
				if err != nil {
					cfgErr = fmt.Errorf("loading AWS config: %w", err)
					return
				}
				client = ssm.NewFromConfig(cfg)
			})
			if cfgErr != nil {
				return "", cfgErr
			}
			out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
				Name:           aws.String(name),
				WithDecryption: aws.Bool(true),
			})
			if err != nil {
				return "", err
			}
			if out.Parameter == nil || out.Parameter.Value == nil {
				return "", fmt.Errorf("parameter %s has no value", name)
			}
			return *out.Parameter.Value, nil
		},
	}
}

// IsReference reports whether value is a keyring:// or aws-ssm:// reference.
func IsReference(value string) bool {
	return strings.HasPrefix(value, KeyringScheme) || strings.HasPrefix(value, SSMScheme)
}

// Resolve dereferences value if it is a reference; otherwise it returns
// value unchanged. An unresolvable reference degrades to an empty value
// with a logged warning so that one broken secret never aborts resolution.
func (r *Resolver) Resolve(ctx context.Context, value string) (resolved string, wasRef bool) {
	switch {
	case strings.HasPrefix(value, KeyringScheme):
		rest := strings.TrimPrefix(value, KeyringScheme)
		service, key, ok := strings.Cut(rest, "/")
		if !ok || service == "" || key == "" {
			log.Warn().Str("ref", value).Msg("malformed keyring reference")
			return "", true
		}
		secret, err := r.Keyring(service, key)
		if err != nil {
			log.Warn().Str("ref", value).Err(err).Msg("keyring reference could not be resolved")
			return "", true
		}
		return secret, true

	case strings.HasPrefix(value, SSMScheme):
		name := strings.TrimPrefix(value, SSMScheme)
		if name == "" {
			log.Warn().Str("ref", value).Msg("malformed SSM reference")
			return "", true
		}
		param, err := r.SSM(ctx, name)
		if err != nil {
			log.Warn().Str("ref", value).Err(err).Msg("SSM reference could not be resolved")
			return "", true
		}
		return param, true
	}
	return value, false
}

// resolveReferences rewrites reference values across every source.
func (e *Env) resolveReferences(ctx context.Context, r *Resolver) {
	if r == nil {
		return
	}
	for _, src := range e.sources {
		for key, value := range src.Vars {
			if !IsReference(value) {
				continue
			}
			resolved, _ := r.Resolve(ctx, value)
			src.Vars[key] = resolved
		}
	}
}
