package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/ayush/coinlist/backend/internal/logging"
	"github.com/ayush/coinlist/backend/internal/models"
)

// LoginPath is where callers are sent after logout.
const LoginPath = "/login"

// Manager owns the session lifecycle: login, register, logout and restore.
type Manager struct {
	verifier Verifier
	admin    *AdminVerifier
	sessions SessionStore
	delay    time.Duration
	log      *slog.Logger
	inflight atomic.Int64
}

// NewManager wires a verifier and a session store. delay is the artificial
// latency applied before every login or registration.
func NewManager(verifier Verifier, admin *AdminVerifier, sessions SessionStore, delay time.Duration, log *slog.Logger) *Manager {
	return &Manager{
		verifier: verifier,
		admin:    admin,
		sessions: sessions,
		delay:    delay,
		log:      logging.Named(log, "auth"),
	}
}

// Loading reports whether a login or registration is in flight.
func (m *Manager) Loading() bool {
	return m.inflight.Load() > 0
}

// Login verifies the credentials and opens a session for the resulting user.
func (m *Manager) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrMissingFields
	}
	sid, user, err := m.open(ctx, func() (*models.User, error) {
		return m.verifier.Login(ctx, email, password)
	})
	if err != nil {
		m.log.ErrorContext(ctx, "login error", "email", RedactEmail(email), "error", err)
		return "", nil, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	m.log.InfoContext(ctx, "login", "user_id", user.ID, "username", user.Username)
	return sid, user, nil
}

// Register creates a user and opens a session for it.
func (m *Manager) Register(ctx context.Context, email, username, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrMissingFields
	}
	sid, user, err := m.open(ctx, func() (*models.User, error) {
		return m.verifier.Register(ctx, email, username, password)
	})
	if err != nil {
		m.log.ErrorContext(ctx, "registration error", "email", RedactEmail(email), "error", err)
		return "", nil, fmt.Errorf("%w: %w", ErrRegisterFailed, err)
	}
	m.log.InfoContext(ctx, "registered", "user_id", user.ID, "username", user.Username)
	return sid, user, nil
}

// AdminLogin opens an admin session for the configured credential pair.
// Rejections are reported as ErrInvalidCredentials.
func (m *Manager) AdminLogin(ctx context.Context, username, password string) (string, *models.User, error) {
	if username == "" || password == "" {
		return "", nil, ErrMissingFields
	}
	if m.admin == nil {
		return "", nil, ErrInvalidCredentials
	}
	sid, user, err := m.open(ctx, func() (*models.User, error) {
		return m.admin.Verify(ctx, username, password)
	})
	if err != nil {
		m.log.WarnContext(ctx, "admin login rejected", "username", username, "error", err)
		if errors.Is(err, ErrInvalidCredentials) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	m.log.InfoContext(ctx, "admin login", "username", user.Username)
	return sid, user, nil
}

// Logout drops the session regardless of whether it exists and returns the
// path the caller should be sent to.
func (m *Manager) Logout(ctx context.Context, sessionID string) string {
	if sessionID != "" {
		if err := m.sessions.Delete(ctx, sessionID); err != nil {
			m.log.ErrorContext(ctx, "logout: delete session", "error", err)
		}
	}
	return LoginPath
}

// Restore returns the user stored for sessionID, or nil. Corrupt entries
// are logged and treated as absent.
func (m *Manager) Restore(ctx context.Context, sessionID string) *models.User {
	if sessionID == "" {
		return nil
	}
	data, err := m.sessions.Load(ctx, sessionID)
	if err != nil {
		m.log.ErrorContext(ctx, "authentication error", "error", err)
		return nil
	}
	if data == nil {
		return nil
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		m.log.ErrorContext(ctx, "authentication error", "error", err)
		return nil
	}
	return &user
}

func (m *Manager) open(ctx context.Context, verify func() (*models.User, error)) (string, *models.User, error) {
	m.inflight.Add(1)
	defer m.inflight.Add(-1)

	if err := m.wait(ctx); err != nil {
		return "", nil, err
	}
	user, err := verify()
	if err != nil {
		return "", nil, err
	}

	data, err := json.Marshal(user)
	if err != nil {
		return "", nil, fmt.Errorf("encode session: %w", err)
	}
	sid := newSessionID()
	if err := m.sessions.Save(ctx, sid, data); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}
	return sid, user, nil
}

func (m *Manager) wait(ctx context.Context) error {
	if m.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(m.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
