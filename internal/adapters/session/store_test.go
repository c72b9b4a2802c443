package session

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyumbanet/portal-cli/internal/domain"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	config := viper.New()
	config.Set("session.path", sessionPath)

	store, err := NewStore(config)
	require.NoError(t, err)
	return store, sessionPath
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, sessionPath := newTestStore(t)
	session := domain.Session{
		Token:      "jwt-abc",
		Identifier: "john_doe",
		ObtainedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.Save(context.Background(), session))

	// All three values land on disk; obtained_at in particular must survive a
	// restart for the session age to be reportable.
	raw, err := os.ReadFile(sessionPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "jwt-abc")
	assert.Contains(t, string(raw), "obtained_at = ")

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.Token, got.Token)
	assert.Equal(t, session.Identifier, got.Identifier)
	assert.True(t, session.ObtainedAt.Equal(got.ObtainedAt))
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSaveRejectsEmptyToken(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	err := store.Save(context.Background(), domain.Session{Identifier: "john_doe"})
	require.Error(t, err)

	_, err = store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestClearRemovesCredential(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	session := domain.Session{Token: "jwt-abc", Identifier: "john_doe"}

	require.NoError(t, store.Save(context.Background(), session))
	require.NoError(t, store.Clear(context.Background()))

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	// Clearing an already absent session is fine.
	require.NoError(t, store.Clear(context.Background()))
}

func TestSessionFilePermissions(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	config := viper.New()
	config.Set("session.path", sessionPath)

	store, err := NewStore(config)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), domain.Session{Token: "jwt-abc"}))

	info, err := os.Stat(sessionPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadRejectsNewerSchema(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	config := viper.New()
	config.Set("session.path", sessionPath)

	store, err := NewStore(config)
	require.NoError(t, err)

	contents := "version = 99\ntoken = \"jwt-abc\"\nidentifier = \"john_doe\"\n"
	require.NoError(t, os.WriteFile(sessionPath, []byte(contents), 0o600))

	_, err = store.Load(context.Background())
	require.ErrorContains(t, err, "unsupported session schema version")
}
