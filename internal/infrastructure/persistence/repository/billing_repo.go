package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
)

// EstimateRepository implements port.EstimateRepository
type EstimateRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEstimateRepository creates a new estimate repository
func NewEstimateRepository(db *sql.DB, logger *zap.Logger) port.EstimateRepository {
	return &EstimateRepository{db: db, logger: logger}
}

// Create creates a new estimate
func (r *EstimateRepository) Create(ctx context.Context, e *entity.Estimate) error {
	query := `
		INSERT INTO estimates (client_name, title, amount, status, issued_at, author_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		e.ClientName, e.Title, e.Amount, e.Status, e.IssuedAt, e.AuthorID,
	)
	if err != nil {
		r.logger.Error("Failed to create estimate", zap.Error(err))
		return fmt.Errorf("failed to create estimate: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	e.ID = id
	return nil
}

// GetByID retrieves an estimate by ID
func (r *EstimateRepository) GetByID(ctx context.Context, id int64) (*entity.Estimate, error) {
	query := `
		SELECT id, client_name, title, amount, status, issued_at, author_id, created_at, updated_at
		FROM estimates WHERE id = ?
	`

	var e entity.Estimate
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.ClientName, &e.Title, &e.Amount, &e.Status, &e.IssuedAt,
		&e.AuthorID, &e.CreatedAt, &e.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get estimate", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get estimate: %w", err)
	}

	return &e, nil
}

// List retrieves estimates, optionally filtered by status, newest first
func (r *EstimateRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.Estimate, error) {
	query := `
		SELECT id, client_name, title, amount, status, issued_at, author_id, created_at, updated_at
		FROM estimates
	`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY issued_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list estimates", zap.Error(err))
		return nil, fmt.Errorf("failed to list estimates: %w", err)
	}
	defer rows.Close()

	var estimates []*entity.Estimate
	for rows.Next() {
		var e entity.Estimate
		err := rows.Scan(
			&e.ID, &e.ClientName, &e.Title, &e.Amount, &e.Status, &e.IssuedAt,
			&e.AuthorID, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan estimate: %w", err)
		}
		estimates = append(estimates, &e)
	}

	return estimates, rows.Err()
}

// Update updates an estimate
func (r *EstimateRepository) Update(ctx context.Context, e *entity.Estimate) error {
	query := `
		UPDATE estimates
		SET client_name = ?, title = ?, amount = ?, status = ?, issued_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		e.ClientName, e.Title, e.Amount, e.Status, e.IssuedAt, e.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update estimate", zap.Int64("id", e.ID), zap.Error(err))
		return fmt.Errorf("failed to update estimate: %w", err)
	}

	return nil
}

// Delete removes an estimate
func (r *EstimateRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM estimates WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete estimate", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete estimate: %w", err)
	}
	return nil
}

// InvoiceRepository implements port.InvoiceRepository
type InvoiceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *sql.DB, logger *zap.Logger) port.InvoiceRepository {
	return &InvoiceRepository{db: db, logger: logger}
}

// Create creates a new invoice
func (r *InvoiceRepository) Create(ctx context.Context, inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (client_name, title, amount, status, issued_at, due_at, author_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		inv.ClientName, inv.Title, inv.Amount, inv.Status, inv.IssuedAt, inv.DueAt, inv.AuthorID,
	)
	if err != nil {
		r.logger.Error("Failed to create invoice", zap.Error(err))
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	inv.ID = id
	return nil
}

// GetByID retrieves an invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*entity.Invoice, error) {
	query := `
		SELECT id, client_name, title, amount, status, issued_at, due_at, author_id, created_at, updated_at
		FROM invoices WHERE id = ?
	`

	var inv entity.Invoice
	var dueAt sql.NullTime

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.ClientName, &inv.Title, &inv.Amount, &inv.Status, &inv.IssuedAt,
		&dueAt, &inv.AuthorID, &inv.CreatedAt, &inv.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get invoice", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	if dueAt.Valid {
		inv.DueAt = &dueAt.Time
	}

	return &inv, nil
}

// List retrieves invoices, optionally filtered by status, newest first
func (r *InvoiceRepository) List(ctx context.Context, status string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT id, client_name, title, amount, status, issued_at, due_at, author_id, created_at, updated_at
		FROM invoices
	`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY issued_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list invoices", zap.Error(err))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		var dueAt sql.NullTime

		err := rows.Scan(
			&inv.ID, &inv.ClientName, &inv.Title, &inv.Amount, &inv.Status, &inv.IssuedAt,
			&dueAt, &inv.AuthorID, &inv.CreatedAt, &inv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}

		if dueAt.Valid {
			inv.DueAt = &dueAt.Time
		}

		invoices = append(invoices, &inv)
	}

	return invoices, rows.Err()
}

// Update updates an invoice
func (r *InvoiceRepository) Update(ctx context.Context, inv *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET client_name = ?, title = ?, amount = ?, status = ?, issued_at = ?, due_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		inv.ClientName, inv.Title, inv.Amount, inv.Status, inv.IssuedAt, inv.DueAt, inv.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update invoice", zap.Int64("id", inv.ID), zap.Error(err))
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	return nil
}

// Delete removes an invoice
func (r *InvoiceRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete invoice", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	return nil
}

// Verify interface compliance
var (
	_ port.EstimateRepository = (*EstimateRepository)(nil)
	_ port.InvoiceRepository  = (*InvoiceRepository)(nil)
)
