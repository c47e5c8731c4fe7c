package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aistaff/platform/internal/database"
	apperrors "github.com/aistaff/platform/internal/errors"
	"github.com/aistaff/platform/internal/user/domain"
)

// MySQLUserRepository handles user persistence for MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

// Create inserts a new user and fills in the generated id.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (username, email, password_hash, full_name, is_active, is_admin, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, NOW(), NOW())`

	result, err := querier.ExecContext(
		ctx, query,
		user.Username, user.Email, user.PasswordHash, user.FullName, user.IsActive, user.IsAdmin,
	)
	if err != nil {
		// Check for unique constraint violation (duplicate username or email)
		if isMySQLUniqueViolation(err) {
			return domain.ErrDuplicateIdentity
		}
		return apperrors.Wrap(err, "failed to create user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read generated user id")
	}
	user.ID = id
	return nil
}

// Get retrieves a user by ID.
func (r *MySQLUserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, username, email, password_hash, full_name, is_active, is_admin, created_at, updated_at
			  FROM users WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetByUsername retrieves a user by username.
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, email, password_hash, full_name, is_active, is_admin, created_at, updated_at
			  FROM users WHERE username = ?`
	return r.getOne(ctx, query, username)
}

// GetByEmail retrieves a user by email.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, username, email, password_hash, full_name, is_active, is_admin, created_at, updated_at
			  FROM users WHERE email = ?`
	return r.getOne(ctx, query, email)
}

// Deactivate soft deletes a user by clearing the active flag.
func (r *MySQLUserRepository) Deactivate(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate user")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// getOne runs a single-row user query with the given argument.
func (r *MySQLUserRepository) getOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	querier := database.GetTx(ctx, r.db)

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.FullName,
		&user.IsActive, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}

	return &user, nil
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "error 1062")
}
