package monitor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/qa-infra/sessionctl/models"
)

const (
	DefaultPollInterval     = 100 * time.Millisecond
	DefaultPollTimeout      = 5 * time.Second
	DefaultPropagationGrace = 200 * time.Millisecond

	DefaultCredentialArtifact = "session_token"
)

// DefaultRenewalEndpoints are the path fragments matched (by substring)
// against response URLs to detect a credential renewal exchange.
var DefaultRenewalEndpoints = []string{"/auth/refresh", "/session/renew"}

type Config struct {
	RenewalEndpoints   []string
	CredentialArtifact string
	PollInterval       time.Duration
	PollTimeout        time.Duration
	PropagationGrace   time.Duration
}

func (c Config) withDefaults() Config {
	if len(c.RenewalEndpoints) == 0 {
		c.RenewalEndpoints = DefaultRenewalEndpoints
	}
	if c.CredentialArtifact == "" {
		c.CredentialArtifact = DefaultCredentialArtifact
	}
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = DefaultPollTimeout
	}
	if c.PropagationGrace <= 0 {
		c.PropagationGrace = DefaultPropagationGrace
	}
	return c
}

// Monitor watches one automation context for successful credential
// renewals and re-persists the session snapshot after each one. Losing a
// persist is never fatal: the next validity check simply falls back to a
// full login.
type Monitor struct {
	auto     AutomationContext
	store    SessionSaver
	queue    *UpdateQueue
	cfg      Config
	identity models.SessionIdentity
	log      zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	inflight map[string]struct{}

	requestSub  SubscriptionID
	responseSub SubscriptionID
}

func New(auto AutomationContext, store SessionSaver, identity models.SessionIdentity, cfg Config, log zerolog.Logger) *Monitor {
	return &Monitor{
		auto:     auto,
		store:    store,
		queue:    NewUpdateQueue(log),
		cfg:      cfg.withDefaults(),
		identity: identity,
		log:      log,
		inflight: map[string]struct{}{},
	}
}

// Start subscribes to the automation context's network events and returns
// a detach function. The detach function is idempotent, removes both
// subscriptions and cancels any in-progress propagation wait; tasks
// already queued still run to completion so a save is never abandoned
// mid-write.
func (m *Monitor) Start() (detach func()) {
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.requestSub = m.auto.OnRequest(m.handleRequest)
	m.responseSub = m.auto.OnResponse(m.handleResponse)

	var once sync.Once
	return func() {
		once.Do(m.detach)
	}
}

func (m *Monitor) detach() {
	m.cancel()
	for _, sub := range []SubscriptionID{m.requestSub, m.responseSub} {
		if err := m.auto.Off(sub); err != nil {
			m.log.Warn().Err(err).Msg("failed to remove network event subscription")
		}
	}
}

func (m *Monitor) handleRequest(event RequestEvent) {
	if m.isRenewalEndpoint(event.URL) && event.Method == http.MethodPost {
		m.log.Debug().Str("url", event.URL).Msg("credential renewal request observed")
	}
}

func (m *Monitor) handleResponse(event ResponseEvent) {
	if !m.isRenewalEndpoint(event.URL) || event.Method != http.MethodPost {
		return
	}
	if event.Status >= http.StatusBadRequest {
		m.log.Warn().Str("url", event.URL).Int("status", event.Status).
			Msg("credential renewal failed, dropping refresh signal")
		return
	}

	m.mu.Lock()
	if _, busy := m.inflight[event.URL]; busy {
		m.mu.Unlock()
		m.log.Debug().Str("url", event.URL).Msg("renewal already in flight for url")
		return
	}
	m.inflight[event.URL] = struct{}{}
	m.mu.Unlock()

	taskID := uuid.NewString()
	m.log.Debug().Str("url", event.URL).Str("task", taskID).Msg("credential renewal detected")
	m.queue.Enqueue(Task{ID: taskID, Run: func() {
		m.persistRenewal(taskID, event.URL)
	}})
}

func (m *Monitor) isRenewalEndpoint(url string) bool {
	for _, fragment := range m.cfg.RenewalEndpoints {
		if strings.Contains(url, fragment) {
			return true
		}
	}
	return false
}

// persistRenewal is the body of one UpdateTask. Every failure is logged
// and swallowed: persisting a refresh is an optimization, and losing one
// degrades to "next validity check re-logs in".
func (m *Monitor) persistRenewal(taskID, url string) {
	defer func() {
		m.mu.Lock()
		delete(m.inflight, url)
		m.mu.Unlock()
	}()

	if err := m.awaitPropagation(); err != nil {
		if errors.Is(err, context.Canceled) {
			m.log.Debug().Str("task", taskID).Msg("monitor detached during propagation wait, skipping persist")
			return
		}
		// Timeout is best-effort: the snapshot may still carry the
		// renewed credential.
		m.log.Warn().Err(err).Str("task", taskID).Msg("proceeding without confirmed propagation")
	}

	snapshot, err := m.auto.CaptureSnapshot()
	if err != nil {
		m.log.Warn().Err(err).Str("task", taskID).Msg("failed to capture session snapshot after renewal")
		return
	}
	if err := m.store.Save(m.identity.Kind, m.identity.Identity, snapshot); err != nil {
		m.log.Warn().Err(err).Str("task", taskID).Msg("failed to persist renewed session")
		return
	}
	m.log.Debug().Str("task", taskID).Str("url", url).Msg("renewed session persisted")
}

// awaitPropagation polls for the credential artifact the renewal is
// expected to rotate, then waits a short grace period so storage writes
// settle before the snapshot is captured.
func (m *Monitor) awaitPropagation() error {
	deadline := time.NewTimer(m.cfg.PollTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	for {
		value, err := m.auto.ReadCredentialArtifact(m.cfg.CredentialArtifact)
		if err != nil {
			m.log.Debug().Err(err).Msg("credential artifact read failed, retrying")
		} else if value != "" {
			select {
			case <-m.ctx.Done():
				return m.ctx.Err()
			case <-time.After(m.cfg.PropagationGrace):
				return nil
			}
		}

		select {
		case <-m.ctx.Done():
			return m.ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("credential artifact %q not observed within %s",
				m.cfg.CredentialArtifact, m.cfg.PollTimeout)
		case <-ticker.C:
		}
	}
}
