package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bookreview/internal/client/models"
	"github.com/dmitrijs2005/bookreview/internal/common"
	"github.com/dmitrijs2005/bookreview/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func insertKey(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO session(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func getKey(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM session WHERE key=?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	require.NoError(t, err)
	return v
}

func testUser(role models.Role) *models.User {
	return &models.User{
		ID:        7,
		FullName:  "Jane Doe",
		Role:      role,
		CreatedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// ---- fake client ----

// fakeClient implements api.Client for service unit tests.
type fakeClient struct {
	RegisterPin string
	RegisterErr error

	LoginToken string
	LoginUser  *models.User
	LoginErr   error

	ListReviewsRet []models.Review
	ListReviewsErr error
	ListMyRet      []models.Review
	ListMyErr      error
	CreateRet      *models.Review
	CreateErr      error
	UpdateRet      *models.Review
	UpdateErr      error
	DeleteErr      error

	ListUsersRet   []models.User
	ListUsersErr   error
	DeleteUserErr  error
	ListAllRet     []models.Review
	ListAllErr     error
	ArchiveRet     *models.Review
	ArchiveErr     error
	ArchiveCallsN  int
	NetworkCallsN  int
	LastToken      string
	LastFilter     models.ReviewFilter
	LastDraft      models.ReviewDraft
	LastReviewID   int64
	LastUserID     int64
	LastLoginName  string
	LastLoginPin   []byte
	LastLoginAdmin bool
}

func (f *fakeClient) Register(ctx context.Context, fullName string) (string, error) {
	f.NetworkCallsN++
	return f.RegisterPin, f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, fullName string, pin []byte, asAdmin bool) (string, *models.User, error) {
	f.NetworkCallsN++
	f.LastLoginName = fullName
	f.LastLoginPin = append([]byte(nil), pin...)
	f.LastLoginAdmin = asAdmin
	return f.LoginToken, f.LoginUser, f.LoginErr
}

func (f *fakeClient) ListReviews(ctx context.Context, token string, flt models.ReviewFilter) ([]models.Review, error) {
	f.NetworkCallsN++
	f.LastToken = token
	f.LastFilter = flt
	return f.ListReviewsRet, f.ListReviewsErr
}

func (f *fakeClient) ListMyReviews(ctx context.Context, token string) ([]models.Review, error) {
	f.NetworkCallsN++
	f.LastToken = token
	return f.ListMyRet, f.ListMyErr
}

func (f *fakeClient) CreateReview(ctx context.Context, token string, d models.ReviewDraft) (*models.Review, error) {
	f.NetworkCallsN++
	f.LastToken = token
	f.LastDraft = d
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) UpdateReview(ctx context.Context, token string, id int64, d models.ReviewDraft) (*models.Review, error) {
	f.NetworkCallsN++
	f.LastToken = token
	f.LastReviewID = id
	f.LastDraft = d
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) DeleteReview(ctx context.Context, token string, id int64) error {
	f.NetworkCallsN++
	f.LastToken = token
	f.LastReviewID = id
	return f.DeleteErr
}

func (f *fakeClient) ListUsers(ctx context.Context, token string) ([]models.User, error) {
	f.NetworkCallsN++
	f.LastToken = token
	return f.ListUsersRet, f.ListUsersErr
}

func (f *fakeClient) DeleteUser(ctx context.Context, token string, id int64) error {
	f.NetworkCallsN++
	f.LastToken = token
	f.LastUserID = id
	return f.DeleteUserErr
}

func (f *fakeClient) ListAllReviews(ctx context.Context, token string) ([]models.Review, error) {
	f.NetworkCallsN++
	f.LastToken = token
	return f.ListAllRet, f.ListAllErr
}

func (f *fakeClient) ArchiveReview(ctx context.Context, token string, id int64) (*models.Review, error) {
	f.NetworkCallsN++
	f.ArchiveCallsN++
	f.LastToken = token
	f.LastReviewID = id
	return f.ArchiveRet, f.ArchiveErr
}

func newManager(t *testing.T, fc *fakeClient, db *sql.DB) *SessionManager {
	t.Helper()
	return NewSessionManager(fc, db, logging.Noop{})
}

// ---- TESTS ----

func TestRestore_EmptyStore_LoggedOut(t *testing.T) {
	db := setupDB(t)
	m := newManager(t, &fakeClient{}, db)

	require.Equal(t, StateUninitialized, m.State())
	m.Restore(context.Background())

	require.Equal(t, StateLoggedOut, m.State())
	require.False(t, m.Session().IsAuthenticated())
}

func TestRestore_RoundTrip_NoNetworkCall(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	fc := &fakeClient{LoginToken: "tok-1", LoginUser: testUser(models.RoleUser)}
	m := newManager(t, fc, db)
	m.Restore(ctx)
	require.NoError(t, m.Login(ctx, "Jane Doe", []byte("4821"), false))

	// New manager over the same store simulates a process restart.
	fc2 := &fakeClient{}
	m2 := newManager(t, fc2, db)
	m2.Restore(ctx)

	require.Equal(t, StateLoggedIn, m2.State())
	require.Equal(t, "tok-1", m2.Token())
	require.Equal(t, m.CurrentUser().ID, m2.CurrentUser().ID)
	require.Equal(t, m.CurrentUser().FullName, m2.CurrentUser().FullName)
	require.Zero(t, fc2.NetworkCallsN, "restore must not touch the network")
}

func TestRestore_CorruptUserSnapshot_LoggedOutAndCleared(t *testing.T) {
	db := setupDB(t)
	insertKey(t, db, "token", []byte("tok"))
	insertKey(t, db, "user", []byte("{not json"))

	m := newManager(t, &fakeClient{}, db)
	m.Restore(context.Background())

	require.Equal(t, StateLoggedOut, m.State())
	require.Nil(t, getKey(t, db, "token"), "stale token must be cleared")
	require.Nil(t, getKey(t, db, "user"))
}

func TestRestore_PartialPair_LoggedOutAndCleared(t *testing.T) {
	db := setupDB(t)
	insertKey(t, db, "token", []byte("tok"))

	m := newManager(t, &fakeClient{}, db)
	m.Restore(context.Background())

	require.Equal(t, StateLoggedOut, m.State())
	require.Nil(t, getKey(t, db, "token"))
}

func TestLogin_Success_SetsBothAndPersistsBoth(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	fc := &fakeClient{LoginToken: "tok-xyz", LoginUser: testUser(models.RoleUser)}
	m := newManager(t, fc, db)
	m.Restore(ctx)

	require.NoError(t, m.Login(ctx, "Jane Doe", []byte("4821"), false))

	require.Equal(t, StateLoggedIn, m.State())
	require.Equal(t, "tok-xyz", m.Token())
	require.NotNil(t, m.CurrentUser())
	require.Equal(t, models.RoleUser, m.CurrentUser().Role)
	require.False(t, m.IsAdmin())

	require.Equal(t, []byte("tok-xyz"), getKey(t, db, "token"))
	var stored models.User
	require.NoError(t, json.Unmarshal(getKey(t, db, "user"), &stored))
	require.Equal(t, "Jane Doe", stored.FullName)

	require.Equal(t, "Jane Doe", fc.LastLoginName)
	require.Equal(t, []byte("4821"), fc.LastLoginPin)
	require.False(t, fc.LastLoginAdmin)
}

func TestLogin_AdminEndpoint_RoleTrustedFromServer(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	fc := &fakeClient{LoginToken: "tok-adm", LoginUser: testUser(models.RoleAdmin)}
	m := newManager(t, fc, db)
	m.Restore(ctx)

	require.NoError(t, m.Login(ctx, "Abiel Robinson", []byte("0000"), true))
	require.True(t, fc.LastLoginAdmin)
	require.True(t, m.IsAdmin())
}

func TestLogin_MismatchedRole_StillSucceeds(t *testing.T) {
	// Admin endpoint returning a plain user role is trusted as-is;
	// the client never re-validates the role.
	db := setupDB(t)
	ctx := context.Background()

	fc := &fakeClient{LoginToken: "tok", LoginUser: testUser(models.RoleUser)}
	m := newManager(t, fc, db)
	m.Restore(ctx)

	require.NoError(t, m.Login(ctx, "Jane Doe", []byte("4821"), true))
	require.Equal(t, StateLoggedIn, m.State())
	require.False(t, m.IsAdmin())
}

func TestLogin_Failure_LeavesPreviousSessionIntact(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	fc := &fakeClient{LoginToken: "tok-1", LoginUser: testUser(models.RoleUser)}
	m := newManager(t, fc, db)
	m.Restore(ctx)
	require.NoError(t, m.Login(ctx, "Jane Doe", []byte("4821"), false))

	fc.LoginErr = common.ErrUnauthorized
	err := m.Login(ctx, "Jane Doe", []byte("9999"), false)
	require.ErrorIs(t, err, common.ErrUnauthorized)

	require.Equal(t, StateLoggedIn, m.State())
	require.Equal(t, "tok-1", m.Token())
	require.Equal(t, []byte("tok-1"), getKey(t, db, "token"))
}

func TestLogin_Again_ReplacesSession(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	fc := &fakeClient{LoginToken: "tok-1", LoginUser: testUser(models.RoleUser)}
	m := newManager(t, fc, db)
	m.Restore(ctx)
	require.NoError(t, m.Login(ctx, "Jane Doe", []byte("4821"), false))

	fc.LoginToken = "tok-2"
	fc.LoginUser = testUser(models.RoleAdmin)
	require.NoError(t, m.Login(ctx, "Jane Doe", []byte("4821"), true))

	require.Equal(t, "tok-2", m.Token())
	require.True(t, m.IsAdmin())
	require.Equal(t, []byte("tok-2"), getKey(t, db, "token"))
}

func TestRegister_ReturnsPin_PersistsNothing(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	fc := &fakeClient{RegisterPin: "4821"}
	m := newManager(t, fc, db)
	m.Restore(ctx)

	pin, err := m.Register(ctx, "Jane Doe")
	require.NoError(t, err)
	require.Equal(t, "4821", pin)

	require.Equal(t, StateLoggedOut, m.State())
	require.Empty(t, m.Token())
	require.Nil(t, getKey(t, db, "token"))
	require.Nil(t, getKey(t, db, "user"))
}

func TestRegister_Error_Wrapped(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{RegisterErr: common.ErrUnavailable}
	m := newManager(t, fc, db)

	_, err := m.Register(context.Background(), "Jane Doe")
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestLogout_ClearsBoth_AndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	fc := &fakeClient{LoginToken: "tok", LoginUser: testUser(models.RoleUser)}
	m := newManager(t, fc, db)
	m.Restore(ctx)
	require.NoError(t, m.Login(ctx, "Jane Doe", []byte("4821"), false))

	require.NoError(t, m.Logout(ctx))
	require.Equal(t, StateLoggedOut, m.State())
	require.Empty(t, m.Token())
	require.Nil(t, m.CurrentUser())
	require.Nil(t, getKey(t, db, "token"))
	require.Nil(t, getKey(t, db, "user"))

	// Second logout while already logged out succeeds trivially.
	require.NoError(t, m.Logout(ctx))
}
