// Package session consumes the external identity provider: it caches
// the bearer token locally and resolves the user profile from the
// provider's userinfo endpoint.
//
// The authentication handshake itself is out of scope; callers obtain
// a token elsewhere (browser OAuth flow, gcloud, a pasted token) and
// hand it to Login. The core only needs "is there a valid token" and
// "what is the token value" to authorize remote log calls.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultUserinfoURL is the hosted identity provider's profile
// endpoint. Overridable for tests.
const DefaultUserinfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// Profile is the user identity attached to a session.
type Profile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// TokenStore is the slice of the local persistence adapter the session
// manager needs. Satisfied by *storage.Store.
type TokenStore interface {
	Save(ctx context.Context, key, value string) error
	Load(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
}

// tokenKey is the snapshot key for the cached bearer token.
// Matches storage.KeySession; duplicated here to keep the interface
// minimal.
const tokenKey = "session-token"

// Manager owns the session lifecycle: login validates and caches a
// token, resume revalidates a cached token, logout clears it.
type Manager struct {
	store       TokenStore
	userinfoURL string
	httpClient  *http.Client
	logger      *slog.Logger
}

// Config holds the options for NewManager. Zero-value fields get the
// hosted defaults.
type Config struct {
	Store       TokenStore
	UserinfoURL string
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

// NewManager creates a session manager.
func NewManager(cfg Config) *Manager {
	m := &Manager{
		store:       cfg.Store,
		userinfoURL: cfg.UserinfoURL,
		httpClient:  cfg.HTTPClient,
		logger:      cfg.Logger,
	}
	if m.userinfoURL == "" {
		m.userinfoURL = DefaultUserinfoURL
	}
	if m.httpClient == nil {
		m.httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	return m
}

// Login validates the token against the userinfo endpoint and caches
// it on success. An invalid token is an error and nothing is cached.
func (m *Manager) Login(ctx context.Context, token string) (Profile, error) {
	profile, err := m.fetchProfile(ctx, token)
	if err != nil {
		return Profile{}, err
	}
	if err := m.store.Save(ctx, tokenKey, token); err != nil {
		return Profile{}, fmt.Errorf("cache session token: %w", err)
	}
	m.logger.Info("session established", "email", profile.Email)
	return profile, nil
}

// Resume revalidates the locally cached token, if any. A cached token
// the provider rejects is cleared, matching the original behavior of
// dropping an expired session rather than surfacing it. The bool
// reports whether a valid session exists.
func (m *Manager) Resume(ctx context.Context) (string, Profile, bool, error) {
	token, ok, err := m.store.Load(ctx, tokenKey)
	if err != nil {
		return "", Profile{}, false, fmt.Errorf("load session token: %w", err)
	}
	if !ok || token == "" {
		return "", Profile{}, false, nil
	}

	profile, err := m.fetchProfile(ctx, token)
	if err != nil {
		m.logger.Warn("cached session rejected, clearing", "error", err)
		if delErr := m.store.Delete(ctx, tokenKey); delErr != nil {
			return "", Profile{}, false, fmt.Errorf("clear rejected session: %w", delErr)
		}
		return "", Profile{}, false, nil
	}
	return token, profile, true, nil
}

// Logout clears the cached token. It does not abort in-flight remote
// appends; it only stops new operations from being issued.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Delete(ctx, tokenKey); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	m.logger.Info("session cleared")
	return nil
}

// fetchProfile resolves {email, name, picture} for the token.
func (m *Manager) fetchProfile(ctx context.Context, token string) (Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.userinfoURL, nil)
	if err != nil {
		return Profile{}, fmt.Errorf("userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Profile{}, fmt.Errorf("userinfo rejected token (status=%d, body=%s)", resp.StatusCode, body)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return Profile{}, fmt.Errorf("decode userinfo: %w", err)
	}
	return profile, nil
}
