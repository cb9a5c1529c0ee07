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

// ScheduleRepository implements port.ScheduleRepository
type ScheduleRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *sql.DB, logger *zap.Logger) port.ScheduleRepository {
	return &ScheduleRepository{db: db, logger: logger}
}

// Create creates a new schedule
func (r *ScheduleRepository) Create(ctx context.Context, s *entity.Schedule) error {
	query := `
		INSERT INTO schedules (owner_id, owner_name, kind, title, start_date, end_date, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		s.OwnerID, s.OwnerName, s.Kind, s.Title, s.StartDate, s.EndDate, s.Note,
	)
	if err != nil {
		r.logger.Error("Failed to create schedule", zap.Error(err))
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	s.ID = id
	return nil
}

// GetByID retrieves a schedule by ID
func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*entity.Schedule, error) {
	query := `
		SELECT id, owner_id, owner_name, kind, title, start_date, end_date, note, created_at, updated_at
		FROM schedules WHERE id = ?
	`

	var s entity.Schedule
	var note sql.NullString

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.OwnerID, &s.OwnerName, &s.Kind, &s.Title, &s.StartDate, &s.EndDate,
		&note, &s.CreatedAt, &s.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get schedule", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	if note.Valid {
		s.Note = note.String
	}

	return &s, nil
}

// ListByRange retrieves schedules overlapping [from, to], optionally
// filtered by kind
func (r *ScheduleRepository) ListByRange(ctx context.Context, from, to time.Time, kind string) ([]*entity.Schedule, error) {
	query := `
		SELECT id, owner_id, owner_name, kind, title, start_date, end_date, note, created_at, updated_at
		FROM schedules
		WHERE start_date <= ? AND end_date >= ?
	`
	args := []interface{}{to, from}
	if kind != "" {
		query += ` AND kind = ?`
		args = append(args, kind)
	}
	query += ` ORDER BY start_date ASC`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list schedules", zap.Error(err))
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*entity.Schedule
	for rows.Next() {
		var s entity.Schedule
		var note sql.NullString

		err := rows.Scan(
			&s.ID, &s.OwnerID, &s.OwnerName, &s.Kind, &s.Title, &s.StartDate, &s.EndDate,
			&note, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}

		if note.Valid {
			s.Note = note.String
		}

		schedules = append(schedules, &s)
	}

	return schedules, rows.Err()
}

// Update updates a schedule
func (r *ScheduleRepository) Update(ctx context.Context, s *entity.Schedule) error {
	query := `
		UPDATE schedules
		SET kind = ?, title = ?, start_date = ?, end_date = ?, note = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		s.Kind, s.Title, s.StartDate, s.EndDate, s.Note, s.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update schedule", zap.Int64("id", s.ID), zap.Error(err))
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	return nil
}

// Delete removes a schedule
func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete schedule", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.ScheduleRepository = (*ScheduleRepository)(nil)
