package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/polymath/internal/storage"
)

func newTestManager(t *testing.T, handler http.HandlerFunc) (*Manager, *storage.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := storage.Open(filepath.Join(t.TempDir(), "polymath.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return NewManager(Config{Store: store, UserinfoURL: srv.URL}), store
}

func userinfoOK(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer good-token" {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_token"}`))
		return
	}
	w.Write([]byte(`{"email":"ada@example.com","name":"Ada","picture":"https://example.com/a.png"}`))
}

func TestLogin_ValidTokenCachesAndReturnsProfile(t *testing.T) {
	m, store := newTestManager(t, userinfoOK)
	ctx := context.Background()

	profile, err := m.Login(ctx, "good-token")
	require.NoError(t, err)
	assert.Equal(t, Profile{Email: "ada@example.com", Name: "Ada", Picture: "https://example.com/a.png"}, profile)

	cached, ok, err := store.Load(ctx, storage.KeySession)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "good-token", cached)
}

func TestLogin_RejectedTokenIsNotCached(t *testing.T) {
	m, store := newTestManager(t, userinfoOK)
	ctx := context.Background()

	_, err := m.Login(ctx, "bad-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_token", "provider body surfaces in the error")

	_, ok, err := store.Load(ctx, storage.KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResume_NoCachedToken(t *testing.T) {
	m, _ := newTestManager(t, userinfoOK)

	_, _, ok, err := m.Resume(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResume_ValidCachedToken(t *testing.T) {
	m, _ := newTestManager(t, userinfoOK)
	ctx := context.Background()

	_, err := m.Login(ctx, "good-token")
	require.NoError(t, err)

	token, profile, ok, err := m.Resume(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "good-token", token)
	assert.Equal(t, "ada@example.com", profile.Email)
}

func TestResume_ExpiredTokenClearsCache(t *testing.T) {
	m, store := newTestManager(t, userinfoOK)
	ctx := context.Background()

	// Seed an expired token directly; Login would refuse it.
	require.NoError(t, store.Save(ctx, storage.KeySession, "stale-token"))

	_, _, ok, err := m.Resume(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	_, present, err := store.Load(ctx, storage.KeySession)
	require.NoError(t, err)
	assert.False(t, present, "rejected token must be cleared")
}

func TestLogout_ClearsToken(t *testing.T) {
	m, store := newTestManager(t, userinfoOK)
	ctx := context.Background()

	_, err := m.Login(ctx, "good-token")
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	_, ok, err := store.Load(ctx, storage.KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
}
