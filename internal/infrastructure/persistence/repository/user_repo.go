package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
)

// UserRepository implements port.UserRepository
type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

const userColumns = `id, login_id, name, email, team, position, role,
	password_hash, refresh_hash, created_at, updated_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (login_id, name, email, team, position, role, password_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		user.LoginID,
		user.Name,
		user.Email,
		user.Team,
		user.Position,
		user.Role,
		user.PasswordHash,
	)
	if err != nil {
		r.logger.Error("Failed to create user", zap.String("login_id", user.LoginID), zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = id
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanOne(ctx, query, id)
}

// GetByLoginID retrieves a user by login ID
func (r *UserRepository) GetByLoginID(ctx context.Context, loginID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE login_id = ?`
	return r.scanOne(ctx, query, loginID)
}

func (r *UserRepository) scanOne(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	var user entity.User
	var refreshHash sql.NullString

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.LoginID,
		&user.Name,
		&user.Email,
		&user.Team,
		&user.Position,
		&user.Role,
		&user.PasswordHash,
		&refreshHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if refreshHash.Valid {
		user.RefreshHash = refreshHash.String
	}

	return &user, nil
}

// List retrieves users, optionally filtered by team
func (r *UserRepository) List(ctx context.Context, team string, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []interface{}{}
	if team != "" {
		query += ` WHERE team = ?`
		args = append(args, team)
	}
	query += ` ORDER BY name LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var user entity.User
		var refreshHash sql.NullString

		err := rows.Scan(
			&user.ID,
			&user.LoginID,
			&user.Name,
			&user.Email,
			&user.Team,
			&user.Position,
			&user.Role,
			&user.PasswordHash,
			&refreshHash,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		if refreshHash.Valid {
			user.RefreshHash = refreshHash.String
		}

		users = append(users, &user)
	}

	return users, rows.Err()
}

// SetRefreshHash stores the hash of the user's current refresh token.
// An empty hash revokes it.
func (r *UserRepository) SetRefreshHash(ctx context.Context, id int64, hash string) error {
	query := `UPDATE users SET refresh_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, hash, id)
	if err != nil {
		r.logger.Error("Failed to set refresh hash", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set refresh hash: %w", err)
	}

	return nil
}

// Verify interface compliance
var _ port.UserRepository = (*UserRepository)(nil)
