package session

import (
	"context"
	"fmt"
	nethttp "net/http"
	"strings"
	"sync"

	"github.com/aiscreen-io/canvasctl/internal/api"
	"github.com/aiscreen-io/canvasctl/internal/constants"
	"github.com/aiscreen-io/canvasctl/internal/logging"
	"github.com/aiscreen-io/canvasctl/internal/models"
)

// Manager owns the session lifecycle. It implements api.TokenSource, so
// the API client always sees the same token the store has persisted: both
// are updated together through setToken/clearToken and nowhere else.
type Manager struct {
	store  TokenStore
	logger *logging.Logger

	mu       sync.RWMutex
	token    string
	user     *models.User
	restored bool

	client *api.Client
}

// NewManager creates a session manager over the given token store.
func NewManager(store TokenStore, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Manager{
		store:  store,
		logger: logger,
	}
}

// AttachClient wires the API client used for login calls. Separate from
// NewManager because the client itself needs the manager as its token
// source.
func (m *Manager) AttachClient(c *api.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.client = c
}

// Token returns the current session token. Implements api.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns the user from the most recent login, or nil when the
// session was restored from disk and no profile is cached.
func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// InitializeAuth loads a previously persisted token into the session.
// It runs at most once; later calls are no-ops, so the route guard can
// call it unconditionally.
func (m *Manager) InitializeAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.restored {
		return nil
	}
	m.restored = true

	token, err := m.store.Get()
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if token != "" {
		m.token = token
		m.logger.Debug().Msg("Session restored from token store")
	}
	return nil
}

// IsAuthenticated reports whether a plausible session token is present.
// The token must be non-empty and longer than the sanity threshold;
// anything shorter is treated as garbage rather than a session.
func (m *Manager) IsAuthenticated() bool {
	token := m.Token()
	return token != "" && len(token) > constants.MinTokenLength
}

// ValidateToken checks the current token locally. There is no server
// round-trip; an expired-but-present token is only discovered when the
// backend answers 401. This is a UX convenience, not a security boundary.
func (m *Manager) ValidateToken() error {
	if !m.IsAuthenticated() {
		return api.NewError(api.KindAuth, "not authenticated")
	}
	return nil
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe string `json:"remember_me"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	Token       string       `json:"token"`
	User        *models.User `json:"user"`
}

// Login authenticates against the backend and persists the returned
// token. The backend may name the token field access_token or token;
// both are accepted.
func (m *Manager) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	client := m.apiClient()
	if client == nil {
		return nil, fmt.Errorf("session manager has no API client attached")
	}

	body := loginRequest{
		Email:      strings.TrimSpace(creds.Email),
		Password:   creds.Password,
		RememberMe: "1",
	}

	resp, err := client.DoJSON(ctx, nethttp.MethodPost, constants.LoginEndpoint, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != nethttp.StatusOK {
		return nil, api.ParseResponseError(resp, "login failed")
	}

	var decoded loginResponse
	if err := api.DecodeJSON(resp, &decoded); err != nil {
		return nil, err
	}

	token := decoded.AccessToken
	if token == "" {
		token = decoded.Token
	}
	if token == "" {
		err := api.NewError(api.KindServer, "login response contained no token")
		err.Status = resp.StatusCode
		return nil, err
	}

	if err := m.setToken(token, decoded.User); err != nil {
		return nil, err
	}

	m.logger.Info().Str("email", body.Email).Msg("Logged in")
	return &models.LoginResult{User: decoded.User, Token: token}, nil
}

// Logout ends the session. The token is cleared locally even when
// persistence fails, so a half-broken token store can never keep a user
// signed in.
func (m *Manager) Logout() error {
	return m.clearToken()
}

// HandleUnauthorized clears the session after the backend rejects the
// token. Wired as the API client's 401 callback.
func (m *Manager) HandleUnauthorized() {
	m.logger.Warn().Msg("Session rejected by the backend, clearing token")
	if err := m.clearToken(); err != nil {
		m.logger.Error().Err(err).Msg("Failed to clear rejected token")
	}
}

func (m *Manager) apiClient() *api.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client
}

// setToken is the single write path for establishing a session: the
// in-memory token (seen by the API client) and the persisted token move
// together.
func (m *Manager) setToken(token string, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(token); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	m.token = token
	m.user = user
	m.restored = true
	return nil
}

// clearToken is the single write path for ending a session.
func (m *Manager) clearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.user = nil
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}
