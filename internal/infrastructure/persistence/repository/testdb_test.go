package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garamsoft/groupware/internal/domain/entity"
	"github.com/garamsoft/groupware/pkg/database"
)

// newTestDB opens a throwaway SQLite database with the real schema applied,
// so repository tests exercise the same DDL production runs on.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	logger := zap.NewNop()
	db, err := database.New(database.Config{
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.NewMigrator(db, logger).RunMigrations("../../../../migrations"))
	return db.DB
}

// seedUser inserts a user row so foreign keys on author/approver ids hold
func seedUser(t *testing.T, db *sql.DB, loginID, name string) *entity.User {
	t.Helper()

	user := &entity.User{
		LoginID:      loginID,
		Name:         name,
		Role:         entity.RoleUser,
		PasswordHash: "x",
	}
	repo := NewUserRepository(db, zap.NewNop())
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}
