package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
)

// WorkHoursRepository implements port.WorkHoursRepository
type WorkHoursRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWorkHoursRepository creates a new work hours repository
func NewWorkHoursRepository(db *sql.DB, logger *zap.Logger) port.WorkHoursRepository {
	return &WorkHoursRepository{db: db, logger: logger}
}

// Upsert inserts or replaces the worked minutes for a user and day
func (r *WorkHoursRepository) Upsert(ctx context.Context, wh *entity.WorkHours) error {
	query := `
		INSERT INTO work_hours (user_id, work_date, minutes, note)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, work_date)
		DO UPDATE SET minutes = excluded.minutes, note = excluded.note, updated_at = CURRENT_TIMESTAMP
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		wh.UserID, wh.WorkDate.Format("2006-01-02"), wh.Minutes, wh.Note,
	)
	if err != nil {
		r.logger.Error("Failed to upsert work hours",
			zap.Int64("user_id", wh.UserID),
			zap.Error(err))
		return fmt.Errorf("failed to upsert work hours: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's work hours in [from, to]
func (r *WorkHoursRepository) ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]*entity.WorkHours, error) {
	query := `
		SELECT id, user_id, work_date, minutes, note, created_at, updated_at
		FROM work_hours
		WHERE user_id = ? AND work_date >= ? AND work_date <= ?
		ORDER BY work_date ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query,
		userID, from.Format("2006-01-02"), to.Format("2006-01-02"),
	)
	if err != nil {
		r.logger.Error("Failed to list work hours", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list work hours: %w", err)
	}
	defer rows.Close()

	var hours []*entity.WorkHours
	for rows.Next() {
		var wh entity.WorkHours
		var note sql.NullString

		err := rows.Scan(&wh.ID, &wh.UserID, &wh.WorkDate, &wh.Minutes, &note, &wh.CreatedAt, &wh.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work hours: %w", err)
		}

		if note.Valid {
			wh.Note = note.String
		}

		hours = append(hours, &wh)
	}

	return hours, rows.Err()
}

// TotalMinutes sums a user's worked minutes in [from, to]
func (r *WorkHoursRepository) TotalMinutes(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(minutes), 0)
		FROM work_hours
		WHERE user_id = ? AND work_date >= ? AND work_date <= ?
	`

	var total int
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query,
		userID, from.Format("2006-01-02"), to.Format("2006-01-02"),
	).Scan(&total)
	if err != nil {
		r.logger.Error("Failed to total work hours", zap.Int64("user_id", userID), zap.Error(err))
		return 0, fmt.Errorf("failed to total work hours: %w", err)
	}

	return total, nil
}

// Verify interface compliance
var _ port.WorkHoursRepository = (*WorkHoursRepository)(nil)
