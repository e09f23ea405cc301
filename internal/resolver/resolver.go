package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/qa-infra/sessionctl/models"
	"github.com/qa-infra/sessionctl/utils/common"
)

// Structured test-data field names checked before the environment.
const (
	FieldIdentity    = "username"
	FieldSecret      = "password"
	FieldSessionKind = "sessionKind"
)

// Environment variable naming: kind-specific first, generic fallback.
const (
	envPrefix         = "SESSIONCTL"
	envIdentitySuffix = "USERNAME"
	envSecretSuffix   = "PASSWORD"
)

var (
	ErrInvalidSessionKind = errors.New("invalid session kind")
	ErrMissingCredentials = errors.New("missing credentials")
)

// TestDataProvider exposes per-test structured data. An empty string means
// the field is absent.
type TestDataProvider interface {
	Get(field string) string
}

// Resolver produces the credential triple for a session kind. Lookup is a
// pure fallback chain with no retries and no network calls: structured test
// data wins when complete, the environment otherwise.
type Resolver struct {
	data TestDataProvider
	env  common.Environment
	log  zerolog.Logger
}

func New(data TestDataProvider, env common.Environment, log zerolog.Logger) *Resolver {
	return &Resolver{data: data, env: env, log: log}
}

func (r *Resolver) Resolve(kind models.SessionKind) (models.SessionIdentity, error) {
	if identity, ok, err := r.fromTestData(); err != nil {
		return models.SessionIdentity{}, err
	} else if ok {
		return identity, nil
	}
	return r.fromEnvironment(kind)
}

// fromTestData returns ok=false when any of the three fields is absent,
// which sends the caller down the environment path. A present but unknown
// session kind is fatal rather than a fallback: silently resolving a
// different account than the test asked for is worse than failing.
func (r *Resolver) fromTestData() (models.SessionIdentity, bool, error) {
	if r.data == nil {
		return models.SessionIdentity{}, false, nil
	}

	identity := r.data.Get(FieldIdentity)
	secret := r.data.Get(FieldSecret)
	rawKind := r.data.Get(FieldSessionKind)
	if identity == "" || secret == "" || rawKind == "" {
		r.log.Debug().Msg("structured test data incomplete, falling back to environment")
		return models.SessionIdentity{}, false, nil
	}

	kind, err := models.ParseSessionKind(rawKind)
	if err != nil {
		return models.SessionIdentity{}, false, fmt.Errorf("%w: %v", ErrInvalidSessionKind, err)
	}

	return models.SessionIdentity{Kind: kind, Identity: identity, Secret: secret}, true, nil
}

func (r *Resolver) fromEnvironment(kind models.SessionKind) (models.SessionIdentity, error) {
	identityVars := []string{envVar(kind, envIdentitySuffix), envVar("", envIdentitySuffix)}
	secretVars := []string{envVar(kind, envSecretSuffix), envVar("", envSecretSuffix)}

	identity := r.firstSet(identityVars)
	secret := r.firstSet(secretVars)
	if identity == "" || secret == "" {
		attempted := append(append([]string{}, identityVars...), secretVars...)
		return models.SessionIdentity{}, fmt.Errorf("%w for kind %q: set one of %s",
			ErrMissingCredentials, kind, strings.Join(attempted, ", "))
	}

	return models.SessionIdentity{Kind: kind, Identity: identity, Secret: secret}, nil
}

func (r *Resolver) firstSet(names []string) string {
	for _, name := range names {
		if value := r.env.Getenv(name); value != "" {
			return value
		}
	}
	return ""
}

// envVar builds SESSIONCTL_<KIND>_<SUFFIX>, or the generic
// SESSIONCTL_<SUFFIX> when kind is empty.
func envVar(kind models.SessionKind, suffix string) string {
	if kind == "" {
		return envPrefix + "_" + suffix
	}
	return envPrefix + "_" + strings.ToUpper(string(kind)) + "_" + suffix
}
