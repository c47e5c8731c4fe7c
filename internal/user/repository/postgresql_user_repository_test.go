package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aistaff/platform/internal/user/domain"
)

func newMockRepo(t *testing.T) (*PostgreSQLUserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgreSQLUserRepository(db), mock
}

func userColumns() []string {
	return []string{
		"id", "username", "email", "password_hash", "full_name",
		"is_active", "is_admin", "created_at", "updated_at",
	}
}

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	t.Run("Success_InsertsUserAndSetsID", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("alice", "alice@example.com", "hashed", "Alice Doe", true, false).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		user := &domain.User{
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "hashed",
			FullName:     "Alice Doe",
			IsActive:     true,
		}

		err := repo.Create(context.Background(), user)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateIdentity", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(assert.AnError)

		user := &domain.User{Username: "alice", Email: "alice@example.com"}
		err := repo.Create(context.Background(), user)
		assert.Error(t, err)

		repo2, mock2 := newMockRepo(t)
		mock2.ExpectQuery(`INSERT INTO users`).
			WillReturnError(errDuplicateKey{})

		err = repo2.Create(context.Background(), user)
		assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)
	})
}

// errDuplicateKey mimics the lib/pq unique violation error text.
type errDuplicateKey struct{}

func (errDuplicateKey) Error() string {
	return `pq: duplicate key value violates unique constraint "users_username_key"`
}

func TestPostgreSQLUserRepository_Get(t *testing.T) {
	t.Run("Success_ReturnsUser", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		now := time.Now().UTC()
		mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow(int64(1), "alice", "alice@example.com", "hashed", "Alice Doe", true, false, now, now))

		user, err := repo.Get(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(userColumns()))

		_, err := repo.Get(context.Background(), 99)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestPostgreSQLUserRepository_GetByUsername(t *testing.T) {
	t.Run("Success_ReturnsUser", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		now := time.Now().UTC()
		mock.ExpectQuery(`SELECT .+ FROM users WHERE username`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow(int64(1), "alice", "alice@example.com", "hashed", "Alice Doe", true, false, now, now))

		user, err := repo.GetByUsername(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsAdmin)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(`SELECT .+ FROM users WHERE username`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(userColumns()))

		user, err := repo.GetByUsername(context.Background(), "ghost")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestPostgreSQLUserRepository_GetByEmail(t *testing.T) {
	t.Run("Success_ReturnsUser", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		now := time.Now().UTC()
		mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow(int64(1), "alice", "alice@example.com", "hashed", "", true, true, now, now))

		user, err := repo.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.True(t, user.IsAdmin)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLUserRepository_Deactivate(t *testing.T) {
	t.Run("Success_ClearsActiveFlag", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(`UPDATE users SET is_active = FALSE`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Deactivate(context.Background(), 1)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(`UPDATE users SET is_active = FALSE`).
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Deactivate(context.Background(), 42)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
