package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
)

// NoticeRepository implements port.NoticeRepository
type NoticeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNoticeRepository creates a new notice repository
func NewNoticeRepository(db *sql.DB, logger *zap.Logger) port.NoticeRepository {
	return &NoticeRepository{db: db, logger: logger}
}

// Create creates a new notice
func (r *NoticeRepository) Create(ctx context.Context, n *entity.Notice) error {
	query := `INSERT INTO notices (title, body, author_id, author_name, pinned) VALUES (?, ?, ?, ?, ?)`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		n.Title, n.Body, n.AuthorID, n.AuthorName, n.Pinned,
	)
	if err != nil {
		r.logger.Error("Failed to create notice", zap.Error(err))
		return fmt.Errorf("failed to create notice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	n.ID = id
	return nil
}

// GetByID retrieves a notice by ID
func (r *NoticeRepository) GetByID(ctx context.Context, id int64) (*entity.Notice, error) {
	query := `
		SELECT id, title, body, author_id, author_name, pinned, created_at, updated_at
		FROM notices WHERE id = ?
	`

	var n entity.Notice
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.Title, &n.Body, &n.AuthorID, &n.AuthorName, &n.Pinned, &n.CreatedAt, &n.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get notice", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get notice: %w", err)
	}

	return &n, nil
}

// List retrieves notices, pinned first then newest first
func (r *NoticeRepository) List(ctx context.Context, limit, offset int) ([]*entity.Notice, error) {
	query := `
		SELECT id, title, body, author_id, author_name, pinned, created_at, updated_at
		FROM notices
		ORDER BY pinned DESC, created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list notices", zap.Error(err))
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	var notices []*entity.Notice
	for rows.Next() {
		var n entity.Notice
		err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.AuthorID, &n.AuthorName, &n.Pinned, &n.CreatedAt, &n.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}
		notices = append(notices, &n)
	}

	return notices, rows.Err()
}

// Update updates a notice
func (r *NoticeRepository) Update(ctx context.Context, n *entity.Notice) error {
	query := `
		UPDATE notices SET title = ?, body = ?, pinned = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, n.Title, n.Body, n.Pinned, n.ID)
	if err != nil {
		r.logger.Error("Failed to update notice", zap.Int64("id", n.ID), zap.Error(err))
		return fmt.Errorf("failed to update notice: %w", err)
	}

	return nil
}

// Delete removes a notice
func (r *NoticeRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM notices WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete notice", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete notice: %w", err)
	}
	return nil
}

// BookRepository implements port.BookRepository
type BookRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBookRepository creates a new book request repository
func NewBookRepository(db *sql.DB, logger *zap.Logger) port.BookRepository {
	return &BookRepository{db: db, logger: logger}
}

// Create creates a new book request
func (r *BookRepository) Create(ctx context.Context, b *entity.BookRequest) error {
	query := `INSERT INTO book_requests (title, link, requester_id, requester_name, state) VALUES (?, ?, ?, ?, ?)`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		b.Title, b.Link, b.RequesterID, b.RequesterName, b.State,
	)
	if err != nil {
		r.logger.Error("Failed to create book request", zap.Error(err))
		return fmt.Errorf("failed to create book request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	b.ID = id
	return nil
}

// GetByID retrieves a book request by ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*entity.BookRequest, error) {
	query := `
		SELECT id, title, link, requester_id, requester_name, state, created_at, updated_at
		FROM book_requests WHERE id = ?
	`

	var b entity.BookRequest
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Link, &b.RequesterID, &b.RequesterName, &b.State, &b.CreatedAt, &b.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get book request", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get book request: %w", err)
	}

	return &b, nil
}

// List retrieves book requests, optionally filtered by state, newest first
func (r *BookRepository) List(ctx context.Context, state string, limit, offset int) ([]*entity.BookRequest, error) {
	query := `
		SELECT id, title, link, requester_id, requester_name, state, created_at, updated_at
		FROM book_requests
	`
	args := []interface{}{}
	if state != "" {
		query += ` WHERE state = ?`
		args = append(args, state)
	}
	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list book requests", zap.Error(err))
		return nil, fmt.Errorf("failed to list book requests: %w", err)
	}
	defer rows.Close()

	var books []*entity.BookRequest
	for rows.Next() {
		var b entity.BookRequest
		err := rows.Scan(&b.ID, &b.Title, &b.Link, &b.RequesterID, &b.RequesterName, &b.State, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book request: %w", err)
		}
		books = append(books, &b)
	}

	return books, rows.Err()
}

// UpdateState updates a book request's state
func (r *BookRepository) UpdateState(ctx context.Context, id int64, state string) error {
	query := `UPDATE book_requests SET state = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, state, id)
	if err != nil {
		r.logger.Error("Failed to update book request state", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to update book request state: %w", err)
	}

	return nil
}

// Delete removes a book request
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM book_requests WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete book request", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete book request: %w", err)
	}
	return nil
}

// DeviceRepository implements port.DeviceRepository
type DeviceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *sql.DB, logger *zap.Logger) port.DeviceRepository {
	return &DeviceRepository{db: db, logger: logger}
}

// Create creates a new device
func (r *DeviceRepository) Create(ctx context.Context, d *entity.Device) error {
	query := `
		INSERT INTO devices (kind, model, serial, assignee_id, assignee_name, state, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		d.Kind, d.Model, d.Serial, d.AssigneeID, d.AssigneeName, d.State, d.Note,
	)
	if err != nil {
		r.logger.Error("Failed to create device", zap.Error(err))
		return fmt.Errorf("failed to create device: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	d.ID = id
	return nil
}

// GetByID retrieves a device by ID
func (r *DeviceRepository) GetByID(ctx context.Context, id int64) (*entity.Device, error) {
	query := `
		SELECT id, kind, model, serial, assignee_id, assignee_name, state, note, created_at, updated_at
		FROM devices WHERE id = ?
	`

	var d entity.Device
	var assigneeID sql.NullInt64
	var assigneeName, note sql.NullString

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Kind, &d.Model, &d.Serial, &assigneeID, &assigneeName, &d.State, &note, &d.CreatedAt, &d.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get device", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	if assigneeID.Valid {
		d.AssigneeID = &assigneeID.Int64
	}
	if assigneeName.Valid {
		d.AssigneeName = assigneeName.String
	}
	if note.Valid {
		d.Note = note.String
	}

	return &d, nil
}

// List retrieves devices, optionally filtered by state
func (r *DeviceRepository) List(ctx context.Context, state string, limit, offset int) ([]*entity.Device, error) {
	query := `
		SELECT id, kind, model, serial, assignee_id, assignee_name, state, note, created_at, updated_at
		FROM devices
	`
	args := []interface{}{}
	if state != "" {
		query += ` WHERE state = ?`
		args = append(args, state)
	}
	query += ` ORDER BY kind, model LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list devices", zap.Error(err))
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []*entity.Device
	for rows.Next() {
		var d entity.Device
		var assigneeID sql.NullInt64
		var assigneeName, note sql.NullString

		err := rows.Scan(
			&d.ID, &d.Kind, &d.Model, &d.Serial, &assigneeID, &assigneeName, &d.State, &note, &d.CreatedAt, &d.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}

		if assigneeID.Valid {
			d.AssigneeID = &assigneeID.Int64
		}
		if assigneeName.Valid {
			d.AssigneeName = assigneeName.String
		}
		if note.Valid {
			d.Note = note.String
		}

		devices = append(devices, &d)
	}

	return devices, rows.Err()
}

// Update updates a device
func (r *DeviceRepository) Update(ctx context.Context, d *entity.Device) error {
	query := `
		UPDATE devices
		SET kind = ?, model = ?, serial = ?, assignee_id = ?, assignee_name = ?, state = ?, note = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		d.Kind, d.Model, d.Serial, d.AssigneeID, d.AssigneeName, d.State, d.Note, d.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update device", zap.Int64("id", d.ID), zap.Error(err))
		return fmt.Errorf("failed to update device: %w", err)
	}

	return nil
}

// Delete removes a device
func (r *DeviceRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM devices WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete device", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete device: %w", err)
	}
	return nil
}

// Verify interface compliance
var (
	_ port.NoticeRepository = (*NoticeRepository)(nil)
	_ port.BookRepository   = (*BookRepository)(nil)
	_ port.DeviceRepository = (*DeviceRepository)(nil)
)
