package resolver

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qa-infra/sessionctl/models"
	mock_sessionctl "github.com/qa-infra/sessionctl/tests/mock"
	"github.com/qa-infra/sessionctl/utils/common"
)

func TestResolveFromTestData(t *testing.T) {
	tests := []struct {
		name         string
		fields       map[string]string
		envValues    map[string]string
		requested    models.SessionKind
		wantIdentity models.SessionIdentity
		wantErr      error
	}{
		{
			name: "Complete test data wins",
			fields: map[string]string{
				FieldIdentity:    "qa-admin@example.com",
				FieldSecret:      "hunter2",
				FieldSessionKind: "admin",
			},
			requested: models.KindAdmin,
			wantIdentity: models.SessionIdentity{
				Kind:     models.KindAdmin,
				Identity: "qa-admin@example.com",
				Secret:   "hunter2",
			},
		},
		{
			name: "Test data may resolve a different kind than requested",
			fields: map[string]string{
				FieldIdentity:    "viewer@example.com",
				FieldSecret:      "s3cret",
				FieldSessionKind: "viewer",
			},
			requested: models.KindAdmin,
			wantIdentity: models.SessionIdentity{
				Kind:     models.KindViewer,
				Identity: "viewer@example.com",
				Secret:   "s3cret",
			},
		},
		{
			name: "Unknown kind in test data is fatal, not a fallback",
			fields: map[string]string{
				FieldIdentity:    "qa@example.com",
				FieldSecret:      "hunter2",
				FieldSessionKind: "superuser",
			},
			requested: models.KindAdmin,
			wantErr:   ErrInvalidSessionKind,
		},
		{
			name: "Incomplete test data falls back to environment",
			fields: map[string]string{
				FieldIdentity: "qa@example.com",
			},
			envValues: map[string]string{
				"SESSIONCTL_ADMIN_USERNAME": "env-admin@example.com",
				"SESSIONCTL_ADMIN_PASSWORD": "env-secret",
			},
			requested: models.KindAdmin,
			wantIdentity: models.SessionIdentity{
				Kind:     models.KindAdmin,
				Identity: "env-admin@example.com",
				Secret:   "env-secret",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			data := mock_sessionctl.NewMockTestDataProvider(ctrl)
			data.EXPECT().Get(gomock.Any()).DoAndReturn(func(field string) string {
				return tt.fields[field]
			}).AnyTimes()

			env := mock_sessionctl.NewMockEnvironment(ctrl)
			env.EXPECT().Getenv(gomock.Any()).DoAndReturn(func(name string) string {
				return tt.envValues[name]
			}).AnyTimes()

			r := New(data, env, zerolog.Nop())
			identity, err := r.Resolve(tt.requested)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIdentity, identity)
		})
	}
}

func TestResolveFromEnvironment(t *testing.T) {
	tests := []struct {
		name         string
		envValues    map[string]string
		wantIdentity models.SessionIdentity
		wantErr      bool
		errContains  []string
	}{
		{
			name: "Kind-specific variables take priority",
			envValues: map[string]string{
				"SESSIONCTL_ADMIN_USERNAME": "admin@example.com",
				"SESSIONCTL_ADMIN_PASSWORD": "admin-secret",
				"SESSIONCTL_USERNAME":       "generic@example.com",
				"SESSIONCTL_PASSWORD":       "generic-secret",
			},
			wantIdentity: models.SessionIdentity{
				Kind:     models.KindAdmin,
				Identity: "admin@example.com",
				Secret:   "admin-secret",
			},
		},
		{
			name: "Generic variables are the fallback pair",
			envValues: map[string]string{
				"SESSIONCTL_USERNAME": "generic@example.com",
				"SESSIONCTL_PASSWORD": "generic-secret",
			},
			wantIdentity: models.SessionIdentity{
				Kind:     models.KindAdmin,
				Identity: "generic@example.com",
				Secret:   "generic-secret",
			},
		},
		{
			name:      "Nothing set names every variable attempted",
			envValues: map[string]string{},
			wantErr:   true,
			errContains: []string{
				"SESSIONCTL_ADMIN_USERNAME",
				"SESSIONCTL_USERNAME",
				"SESSIONCTL_ADMIN_PASSWORD",
				"SESSIONCTL_PASSWORD",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			env := mock_sessionctl.NewMockEnvironment(ctrl)
			env.EXPECT().Getenv(gomock.Any()).DoAndReturn(func(name string) string {
				return tt.envValues[name]
			}).AnyTimes()

			r := New(nil, env, zerolog.Nop())
			identity, err := r.Resolve(models.KindAdmin)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMissingCredentials)
				for _, name := range tt.errContains {
					assert.Contains(t, err.Error(), name)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantIdentity, identity)
		})
	}
}

func TestLoadTestData(t *testing.T) {
	fs := &common.RealFileSystem{Fs: afero.NewMemMapFs()}

	t.Run("Missing file resolves every field to empty", func(t *testing.T) {
		data, err := LoadTestData(fs, "/testdata/absent.yml")
		require.NoError(t, err)
		assert.Empty(t, data.Get(FieldIdentity))
	})

	t.Run("Flat YAML document", func(t *testing.T) {
		content := "username: qa@example.com\npassword: hunter2\nsessionKind: admin\n"
		require.NoError(t, fs.WriteFile("/testdata/auth.yml", []byte(content), 0o600))

		data, err := LoadTestData(fs, "/testdata/auth.yml")
		require.NoError(t, err)
		assert.Equal(t, "qa@example.com", data.Get(FieldIdentity))
		assert.Equal(t, "hunter2", data.Get(FieldSecret))
		assert.Equal(t, "admin", data.Get(FieldSessionKind))
	})

	t.Run("Malformed YAML is an error", func(t *testing.T) {
		require.NoError(t, fs.WriteFile("/testdata/bad.yml", []byte("a: [unclosed"), 0o600))
		_, err := LoadTestData(fs, "/testdata/bad.yml")
		assert.Error(t, err)
	})
}
