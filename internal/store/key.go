package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/qa-infra/sessionctl/models"
)

// keyHashWidth is the number of hex characters kept from the identity hash.
// Collisions are possible but accepted; the key only scopes files inside a
// single store directory.
const keyHashWidth = 8

// DeriveKey maps a session kind and identity to the stable short key used
// to name the persisted file pair. The identity is trimmed and lowercased
// first so differently-cased spellings of one account share a record. Pure
// function, deterministic across processes and platforms.
func DeriveKey(kind models.SessionKind, identity string) string {
	normalized := strings.ToLower(strings.TrimSpace(identity))
	sum := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%s-%s", kind, hex.EncodeToString(sum[:])[:keyHashWidth])
}
