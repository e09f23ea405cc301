package cache

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/qa-infra/sessionctl/internal/monitor"
	"github.com/qa-infra/sessionctl/internal/store"
	"github.com/qa-infra/sessionctl/models"
)

// CredentialResolver yields the account to authenticate as for a kind.
type CredentialResolver interface {
	Resolve(kind models.SessionKind) (models.SessionIdentity, error)
}

// LoginFunc performs the full interactive login (credentials plus any
// second factor) and returns the resulting session snapshot. It is
// supplied by the automation layer; this package never drives a browser.
type LoginFunc func(identity models.SessionIdentity) ([]byte, error)

// Manager glues the resolver, store and monitor into the session
// lifecycle a test worker follows: reuse a cached snapshot when one is
// valid, log in and persist otherwise, then keep the record fresh while
// the automation context lives.
type Manager struct {
	resolver CredentialResolver
	store    store.SessionStore
	log      zerolog.Logger
}

func NewManager(resolver CredentialResolver, sessionStore store.SessionStore, log zerolog.Logger) *Manager {
	return &Manager{resolver: resolver, store: sessionStore, log: log}
}

// EnsureSession returns the path of a usable snapshot for the kind. The
// login function runs only when the cache cannot serve one; its snapshot
// is persisted before the path is handed back.
func (m *Manager) EnsureSession(kind models.SessionKind, login LoginFunc) (string, models.SessionIdentity, error) {
	identity, err := m.resolver.Resolve(kind)
	if err != nil {
		return "", models.SessionIdentity{}, err
	}

	if path, ok := m.store.Load(identity.Kind, identity.Identity); ok {
		m.log.Debug().Str("kind", string(identity.Kind)).Msg("reusing cached session snapshot")
		return path, identity, nil
	}

	m.log.Debug().Str("kind", string(identity.Kind)).Msg("no usable cached session, performing full login")
	snapshot, err := login(identity)
	if err != nil {
		return "", identity, fmt.Errorf("full login failed for kind %s: %w", identity.Kind, err)
	}
	if err := m.store.Save(identity.Kind, identity.Identity, snapshot); err != nil {
		return "", identity, fmt.Errorf("failed to persist fresh session: %w", err)
	}

	path, ok := m.store.Load(identity.Kind, identity.Identity)
	if !ok {
		return "", identity, fmt.Errorf("session record for kind %s disappeared after save", identity.Kind)
	}
	return path, identity, nil
}

// Watch attaches a refresh monitor for the identity to a live automation
// context and returns its detach function.
func (m *Manager) Watch(auto monitor.AutomationContext, identity models.SessionIdentity, cfg monitor.Config) func() {
	return monitor.New(auto, m.store, identity, cfg, m.log).Start()
}
