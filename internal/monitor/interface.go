package monitor

import (
	"github.com/qa-infra/sessionctl/models"
)

type RequestEvent struct {
	URL    string
	Method string
}

type ResponseEvent struct {
	URL    string
	Method string
	Status int
}

// SubscriptionID identifies one registered handler for later removal.
type SubscriptionID int64

// AutomationContext is the live browser-automation session the monitor
// observes. Implementations belong to the automation engine driving the
// tests; this package only consumes the contract.
type AutomationContext interface {
	// CaptureSnapshot serializes the current authenticated context
	// (cookies plus storage) into an opaque blob.
	CaptureSnapshot() ([]byte, error)
	// ReadCredentialArtifact returns the named credential artifact, for
	// example a cookie value. Empty string means not present yet.
	ReadCredentialArtifact(name string) (string, error)
	OnRequest(handler func(RequestEvent)) SubscriptionID
	OnResponse(handler func(ResponseEvent)) SubscriptionID
	Off(id SubscriptionID) error
}

// SessionSaver is the slice of the session store the monitor needs.
type SessionSaver interface {
	Save(kind models.SessionKind, identity string, snapshot []byte) error
}
