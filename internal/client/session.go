package client

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
)

const (
	// DefaultHeaderScheme is the authorization scheme used when none is
	// configured. Must match the server's simplejwt AUTH_HEADER_TYPES.
	DefaultHeaderScheme = "Bearer"

	// DefaultListLimit is the page size used when listing without an
	// explicit limit.
	DefaultListLimit = 3
)

// Session owns the access/refresh token pair for a remote token API and keeps
// it usable: loaded from disk when still valid, refreshed when the access
// token has gone stale, re-acquired through an interactive login when the
// refresh fails too.
//
// A Session is not safe for concurrent use. Two processes sharing the same
// credentials file can race each other; no file locking is performed.
type Session struct {
	access  string
	refresh string

	headerScheme string
	credPath     string
	baseEndpoint string

	transport Transport
	prompter  Prompter
	logger    *slog.Logger
}

// Options configure a Session. BaseEndpoint and CredPath come from the
// caller's configuration; the remaining fields default when zero.
type Options struct {
	BaseEndpoint string
	CredPath     string
	HeaderScheme string
	Transport    Transport
	Prompter     Prompter
	Logger       *slog.Logger
}

// NewSession creates a Session. It performs no I/O; call Init to reconcile
// the stored credentials with the server.
func NewSession(opts Options) *Session {
	if opts.HeaderScheme == "" {
		opts.HeaderScheme = DefaultHeaderScheme
	}
	if opts.Transport == nil {
		opts.Transport = NewHTTPTransport(DefaultTimeout)
	}
	if opts.Prompter == nil {
		opts.Prompter = TerminalPrompter{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Session{
		headerScheme: opts.HeaderScheme,
		credPath:     opts.CredPath,
		baseEndpoint: strings.TrimRight(opts.BaseEndpoint, "/"),
		transport:    opts.Transport,
		prompter:     opts.Prompter,
		logger:       opts.Logger.With("component", "session"),
	}
}

// Init runs the startup flow: load the stored pair if present, verify it,
// refresh it if verification fails, and fall back to an interactive login
// when refresh fails too or when there is nothing usable on disk. After a
// nil return the session holds a usable access token.
func (s *Session) Init() error {
	creds, err := LoadCredentials(s.credPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("no stored credentials", "path", s.credPath)
			return s.Login()
		}
		// Unreadable or unparseable content; assume tampered.
		s.logger.Warn("stored credentials unreadable, discarding", "error", err)
		if err := s.Clear(); err != nil {
			return err
		}
		return s.Login()
	}

	s.access = creds.Access
	s.refresh = creds.Refresh

	if s.Verify() {
		s.logger.Debug("stored access token verified")
		return nil
	}
	if s.Refresh() {
		return nil
	}

	s.logger.Info("stored credentials unusable, login required")
	if err := s.Clear(); err != nil {
		return err
	}
	return s.Login()
}

// AuthHeader returns the authorization header for the current access token,
// or an empty map when no token is held. An optional scheme overrides the
// configured one.
func (s *Session) AuthHeader(scheme ...string) map[string]string {
	if s.access == "" {
		return map[string]string{}
	}
	sch := s.headerScheme
	if len(scheme) > 0 && scheme[0] != "" {
		sch = scheme[0]
	}
	return map[string]string{"Authorization": sch + " " + s.access}
}

// Token returns the current access token, empty when not authenticated.
func (s *Session) Token() string {
	return s.access
}

// Login exchanges an interactively collected username and password for a
// fresh token pair and persists it. A rejected exchange surfaces as
// *AuthError and must not be retried automatically.
func (s *Session) Login() error {
	username, err := s.prompter.Username()
	if err != nil {
		return err
	}
	password, err := s.prompter.Password()
	if err != nil {
		return err
	}

	status, body, err := s.transport.Do(http.MethodPost, s.baseEndpoint+"/token/",
		map[string]string{"username": username, "password": password}, nil)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	if status != http.StatusOK {
		return &AuthError{Status: status, Body: string(body)}
	}

	var creds Credentials
	if err := json.Unmarshal(body, &creds); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}

	s.logger.Info("access granted", "username", username)
	return s.persist(&creds)
}

// Verify reports whether the server accepts the current access token.
// Transport failures and non-200 statuses both count as not verified.
func (s *Session) Verify() bool {
	status, _, err := s.transport.Do(http.MethodPost, s.baseEndpoint+"/token/verify/",
		map[string]string{"token": s.access}, nil)
	if err != nil {
		s.logger.Debug("verify request failed", "error", err)
		return false
	}
	return status == http.StatusOK
}

// Refresh exchanges the refresh token for a new access token, keeping the
// existing refresh token (this flow does not rotate it). The current access
// header rides along even though it is likely the stale token that triggered
// the refresh; the server ignores it. On any failure the pair is cleared.
func (s *Session) Refresh() bool {
	s.logger.Debug("refreshing access token", "token", preview(s.access))

	status, body, err := s.transport.Do(http.MethodPost, s.baseEndpoint+"/token/refresh/",
		map[string]string{"refresh": s.refresh}, s.AuthHeader())
	if err != nil || status != http.StatusOK {
		if err != nil {
			s.logger.Debug("refresh request failed", "error", err)
		} else {
			s.logger.Debug("refresh rejected", "status", status)
		}
		s.clearQuietly()
		return false
	}

	var refreshed struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &refreshed); err != nil || refreshed.Access == "" {
		s.logger.Debug("refresh response missing access token")
		s.clearQuietly()
		return false
	}

	if err := s.persist(&Credentials{Access: refreshed.Access, Refresh: s.refresh}); err != nil {
		s.logger.Warn("failed to persist refreshed credentials", "error", err)
	}
	return true
}

// ListResource fetches one page of an authenticated listing and returns the
// decoded JSON body. An empty endpoint, or one outside this API's base, falls
// back to the products listing with the given page size (minimum 1).
func (s *Session) ListResource(endpoint string, limit int) (map[string]any, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if endpoint == "" || !strings.Contains(endpoint, s.baseEndpoint) {
		endpoint = fmt.Sprintf("%s/products/?limit=%d", s.baseEndpoint, limit)
	}

	status, body, err := s.transport.Do(http.MethodGet, endpoint, nil, s.AuthHeader())
	if err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, &RequestError{Status: status, Body: string(body)}
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse list response: %w", err)
	}
	return data, nil
}

// Clear drops the token pair from memory and removes the credentials file if
// present. Safe to call when already cleared.
func (s *Session) Clear() error {
	s.access = ""
	s.refresh = ""
	return RemoveCredentials(s.credPath)
}

// clearQuietly is Clear for the boolean flows, where a file removal error
// must not change the signal.
func (s *Session) clearQuietly() {
	if err := s.Clear(); err != nil {
		s.logger.Warn("failed to clear credentials", "error", err)
	}
}

// persist updates the in-memory pair and writes it through only when both
// halves are present; a partial pair never overwrites a good file.
func (s *Session) persist(creds *Credentials) error {
	s.access = creds.Access
	s.refresh = creds.Refresh
	if s.access == "" || s.refresh == "" {
		s.logger.Warn("incomplete token pair, not persisting")
		return nil
	}
	return SaveCredentials(s.credPath, creds)
}

// preview truncates a token for debug logging.
func preview(token string) string {
	if len(token) > 30 {
		return token[:30] + "..."
	}
	return token
}
