package persistence

import (
	"context"
	"log/slog"
	"testing"

	"apilogin/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newParams(t *testing.T, driver string) Params {
	cfg := &config.Config{Store: &config.StoreConfig{Driver: driver}}

	return Params{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: cfg,
		Logger: slog.Default(),
	}
}

func TestNewUserRepository_Memory(t *testing.T) {
	repo, err := NewUserRepository(newParams(t, "memory"))
	require.NoError(t, err)
	assert.NotNil(t, repo)
}

func TestNewUserRepository_UnknownDriver(t *testing.T) {
	repo, err := NewUserRepository(newParams(t, "cassandra"))
	assert.ErrorContains(t, err, "unknown store driver")
	assert.Nil(t, repo)
}

func TestNewUserRepository_PostgresRequiresDSN(t *testing.T) {
	_, err := NewUserRepository(newParams(t, "postgres"))
	assert.ErrorContains(t, err, "postgres.dsn is required")
}

func TestNewUserRepository_FirestoreRequiresProject(t *testing.T) {
	_, err := NewUserRepository(newParams(t, "firestore"))
	assert.ErrorContains(t, err, "firebase.projectId is required")
}
