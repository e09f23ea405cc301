package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qa-infra/sessionctl/models"
)

func TestDeriveKey(t *testing.T) {
	t.Run("Normalizes case and whitespace", func(t *testing.T) {
		a := DeriveKey(models.KindAdmin, "User@Example.com ")
		b := DeriveKey(models.KindAdmin, "user@example.com")
		assert.Equal(t, a, b, "differently-cased spellings should share a key")
	})

	t.Run("Key shape", func(t *testing.T) {
		key := DeriveKey(models.KindAdmin, "user@example.com")
		assert.Regexp(t, `^admin-[0-9a-f]{8}$`, key)
	})

	t.Run("Deterministic across calls", func(t *testing.T) {
		assert.Equal(t,
			DeriveKey(models.KindOperator, "ops@example.com"),
			DeriveKey(models.KindOperator, "ops@example.com"))
	})

	t.Run("Kind is part of the key", func(t *testing.T) {
		assert.NotEqual(t,
			DeriveKey(models.KindAdmin, "user@example.com"),
			DeriveKey(models.KindViewer, "user@example.com"))
	})

	t.Run("Distinct identities get distinct keys", func(t *testing.T) {
		assert.NotEqual(t,
			DeriveKey(models.KindAdmin, "a@example.com"),
			DeriveKey(models.KindAdmin, "b@example.com"))
	})
}
