// Package services contains the application services of the Book Review
// client: the session manager (credential lifecycle) and the authorized
// request gateway (role-scoped operations).
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/bookreview/internal/client/api"
	"github.com/dmitrijs2005/bookreview/internal/client/models"
	repo "github.com/dmitrijs2005/bookreview/internal/client/repositories/session"
	"github.com/dmitrijs2005/bookreview/internal/dbx"
	"github.com/dmitrijs2005/bookreview/internal/logging"
)

// State is the session lifecycle phase. There is no terminal state;
// the machine cycles between logged-out and logged-in for the life of
// the process.
type State int

const (
	// StateUninitialized holds until Restore has run. Authorized calls
	// must not be issued while in this state.
	StateUninitialized State = iota
	StateLoggedOut
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateLoggedIn:
		return "logged_in"
	default:
		return "uninitialized"
	}
}

// Storage keys for the persisted session. Keyed independently, but read
// and written together.
const (
	keyToken = "token"
	keyUser  = "user"
)

// SessionManager is the single source of truth for "who is logged in,
// and are they admin". The in-memory session is one cell replaced
// wholesale on each transition; storage is updated first so the two
// never diverge past one operation.
//
// All transitions are driven by discrete user actions from a single
// command loop, so the manager does no locking of its own.
type SessionManager struct {
	client api.Client
	db     *sql.DB
	log    logging.Logger

	state   State
	session models.Session
}

// NewSessionManager builds a manager in the uninitialized state. Call
// Restore before anything else.
func NewSessionManager(client api.Client, db *sql.DB, log logging.Logger) *SessionManager {
	return &SessionManager{client: client, db: db, log: log}
}

func (m *SessionManager) repo() repo.Repository {
	return repo.NewSQLiteRepository(m.db)
}

// State returns the current lifecycle phase.
func (m *SessionManager) State() State { return m.state }

// Session returns the current session snapshot.
func (m *SessionManager) Session() models.Session { return m.session }

// Token returns the current access token, or "" when logged out. The
// gateway reads this at call time so a logout is visible to the very
// next request.
func (m *SessionManager) Token() string { return m.session.Token }

// CurrentUser returns the user snapshot captured at login, or nil.
func (m *SessionManager) CurrentUser() *models.User { return m.session.User }

// IsAdmin reports whether the logged-in user holds the admin role, as
// returned by the server at login. The role is never re-derived.
func (m *SessionManager) IsAdmin() bool { return m.session.User.IsAdmin() }

// Restore loads a persisted session, if any, and moves the manager out
// of the uninitialized state. It never fails visibly: a read error,
// partial pair, or unparsable user snapshot all resolve to logged-out,
// with any leftover keys cleared.
func (m *SessionManager) Restore(ctx context.Context) {
	defer func() {
		if m.state != StateLoggedIn {
			m.state = StateLoggedOut
			m.session = models.Session{}
		}
	}()

	r := m.repo()

	token, err := r.Get(ctx, keyToken)
	if err != nil {
		m.log.Warn(ctx, "session restore failed, starting logged out", "error", err)
		return
	}
	userData, err := r.Get(ctx, keyUser)
	if err != nil {
		m.log.Warn(ctx, "session restore failed, starting logged out", "error", err)
		return
	}

	if len(token) == 0 || len(userData) == 0 {
		// Partial pair means a previous write never completed. Drop it.
		if len(token) != 0 || len(userData) != 0 {
			m.clearStored(ctx)
		}
		return
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		m.log.Warn(ctx, "stored user snapshot is corrupt, starting logged out", "error", err)
		m.clearStored(ctx)
		return
	}

	m.session = models.Session{Token: string(token), User: &user}
	m.state = StateLoggedIn
	m.log.Info(ctx, "session restored", "user", user.FullName, "role", user.Role)
}

// Login authenticates against the user or admin endpoint and replaces
// the current session. The token and user snapshot are persisted in a
// single transaction before memory is touched, so a crash in between
// leaves the previous session intact. A login while already logged in
// replaces the prior session atomically.
func (m *SessionManager) Login(ctx context.Context, fullName string, pin []byte, asAdmin bool) error {
	token, user, err := m.client.Login(ctx, fullName, pin, asAdmin)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := m.persist(ctx, token, user); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}

	m.session = models.Session{Token: token, User: user}
	m.state = StateLoggedIn
	m.log.Info(ctx, "logged in", "user", user.FullName, "role", user.Role)
	return nil
}

// Register creates an account and returns the one-time PIN. It does not
// log the user in and persists nothing; showing the PIN is the caller's
// responsibility.
func (m *SessionManager) Register(ctx context.Context, fullName string) (string, error) {
	pin, err := m.client.Register(ctx, fullName)
	if err != nil {
		return "", fmt.Errorf("registration error: %w", err)
	}
	return pin, nil
}

// Logout clears the persisted pair and the in-memory session. It is
// idempotent: logging out while logged out succeeds trivially.
func (m *SessionManager) Logout(ctx context.Context) error {
	if err := m.repo().Clear(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	m.session = models.Session{}
	m.state = StateLoggedOut
	m.log.Info(ctx, "logged out")
	return nil
}

// persist writes token and user under their keys in one transaction.
func (m *SessionManager) persist(ctx context.Context, token string, user *models.User) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := repo.NewSQLiteRepository(tx)
		if err := r.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return r.Set(ctx, keyUser, userData)
	})
}

func (m *SessionManager) clearStored(ctx context.Context) {
	if err := m.repo().Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear stale session data", "error", err)
	}
}
