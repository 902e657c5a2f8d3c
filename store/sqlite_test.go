package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"bubble-server/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(Options{Driver: DriverSQLite, DSN: filepath.Join(t.TempDir(), "bubble.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndFetchUser(t *testing.T) {
	s := newTestStore(t)

	user, err := s.CreateUser("ada", "s3cret!")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.NotEqual(t, "s3cret!", user.PasswordHash)

	byName, err := s.GetUserByUsername("ada")
	require.NoError(t, err)
	require.Equal(t, user.ID, byName.ID)

	byID, err := s.GetUserByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "ada", byID.Username)
	require.Empty(t, byID.AvatarURL)
}

func TestCreateUserDuplicate(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateUser("ada", "pw")
	require.NoError(t, err)
	_, err = s.CreateUser("ada", "other")
	require.ErrorIs(t, err, ErrUserExists)
}

func TestInsertUserUniqueViolation(t *testing.T) {
	s := newTestStore(t)

	first := &models.User{ID: uuid.New().String(), Username: "ada", PasswordHash: "x", CreatedAt: time.Now().UTC()}
	require.NoError(t, s.insertUser(first))

	// Same username, as when two registrations both pass the lookup.
	second := &models.User{ID: uuid.New().String(), Username: "ada", PasswordHash: "y", CreatedAt: time.Now().UTC()}
	require.ErrorIs(t, s.insertUser(second), ErrUserExists)

	user, err := s.GetUserByUsername("ada")
	require.NoError(t, err)
	require.Equal(t, first.ID, user.ID)
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	require.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	require.False(t, isUniqueViolation(&pgconn.PgError{Code: "23502"}))
	require.False(t, isUniqueViolation(sql.ErrNoRows))
	require.False(t, isUniqueViolation(nil))
}

func TestGetUserMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetUserByUsername("nobody")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestValidatePassword(t *testing.T) {
	s := newTestStore(t)
	user, err := s.CreateUser("ada", "correct horse")
	require.NoError(t, err)

	require.True(t, s.ValidatePassword(user, "correct horse"))
	require.False(t, s.ValidatePassword(user, "battery staple"))
}

func TestUpdateUserAvatar(t *testing.T) {
	s := newTestStore(t)
	user, err := s.CreateUser("ada", "pw")
	require.NoError(t, err)

	require.NoError(t, s.UpdateUserAvatar(user.ID, "/avatars/ada.png"))
	got, err := s.GetUserByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, "/avatars/ada.png", got.AvatarURL)
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	require.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", pg.rebind("SELECT a FROM t WHERE x = ? AND y = ?"))

	lite := &Store{driver: DriverSQLite}
	require.Equal(t, "WHERE x = ?", lite.rebind("WHERE x = ?"))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(Options{Driver: "mysql", DSN: "x"})
	require.Error(t, err)
}
