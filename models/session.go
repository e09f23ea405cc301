package models

import (
	"fmt"
	"time"
)

// SessionKind identifies which class of account a cached session belongs to.
type SessionKind string

const (
	KindAdmin    SessionKind = "admin"
	KindOperator SessionKind = "operator"
	KindViewer   SessionKind = "viewer"
)

// SessionKinds lists every kind accepted by ParseSessionKind.
var SessionKinds = []SessionKind{KindAdmin, KindOperator, KindViewer}

// ParseSessionKind validates a raw string against the closed set of kinds.
func ParseSessionKind(raw string) (SessionKind, error) {
	for _, kind := range SessionKinds {
		if string(kind) == raw {
			return kind, nil
		}
	}
	return "", fmt.Errorf("invalid session kind %q (expected one of %v)", raw, SessionKinds)
}

// SessionIdentity is the resolved credential triple for one session kind.
// The secret is held in memory only and is never written to disk.
type SessionIdentity struct {
	Kind     SessionKind
	Identity string
	Secret   string
}

// SessionMetadata is the sidecar document persisted next to a snapshot.
type SessionMetadata struct {
	CreatedAt   time.Time   `json:"createdAt"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	SessionKind SessionKind `json:"sessionKind"`
	Identity    string      `json:"identity"`
}
