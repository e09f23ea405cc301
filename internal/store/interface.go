package store

import (
	"github.com/qa-infra/sessionctl/models"
)

type SessionStore interface {
	IsValid(kind models.SessionKind, identity string) bool
	Load(kind models.SessionKind, identity string) (string, bool)
	Save(kind models.SessionKind, identity string, snapshot []byte) error
	Cleanup(kind models.SessionKind, identity string)
	Metadata(kind models.SessionKind, identity string) (*models.SessionMetadata, error)
	PurgeAll() int
	Close()
}
