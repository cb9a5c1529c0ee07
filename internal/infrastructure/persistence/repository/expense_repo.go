package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
)

// ExpenseRepository implements port.ExpenseRepository
type ExpenseRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *sql.DB, logger *zap.Logger) port.ExpenseRepository {
	return &ExpenseRepository{
		db:     db,
		logger: logger,
	}
}

const expenseColumns = `id, kind, project_name, category, description, amount,
	author_id, author_name, team, spent_at, created_at, updated_at`

// Create creates a new expense
func (r *ExpenseRepository) Create(ctx context.Context, e *entity.Expense) error {
	query := `
		INSERT INTO expenses (kind, project_name, category, description, amount, author_id, author_name, team, spent_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		e.Kind,
		e.ProjectName,
		e.Category,
		e.Description,
		e.Amount,
		e.AuthorID,
		e.AuthorName,
		e.Team,
		e.SpentAt,
	)
	if err != nil {
		r.logger.Error("Failed to create expense", zap.Error(err))
		return fmt.Errorf("failed to create expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	e.ID = id
	return nil
}

// GetByID retrieves an expense by ID
func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = ?`

	var e entity.Expense
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Kind, &e.ProjectName, &e.Category, &e.Description, &e.Amount,
		&e.AuthorID, &e.AuthorName, &e.Team, &e.SpentAt, &e.CreatedAt, &e.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get expense", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return &e, nil
}

func expenseWhere(filter port.ExpenseFilter) (string, []interface{}) {
	where := ` WHERE 1=1`
	args := []interface{}{}

	if filter.Kind != "" {
		where += ` AND kind = ?`
		args = append(args, filter.Kind)
	}
	if filter.Team != "" {
		where += ` AND team = ?`
		args = append(args, filter.Team)
	}
	if filter.AuthorID != 0 {
		where += ` AND author_id = ?`
		args = append(args, filter.AuthorID)
	}
	if filter.Month != "" {
		where += ` AND strftime('%Y-%m', spent_at) = ?`
		args = append(args, filter.Month)
	}

	return where, args
}

// List retrieves expenses matching the filter, most recent spend first
func (r *ExpenseRepository) List(ctx context.Context, filter port.ExpenseFilter) ([]*entity.Expense, error) {
	where, args := expenseWhere(filter)
	query := `SELECT ` + expenseColumns + ` FROM expenses` + where + ` ORDER BY spent_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list expenses", zap.Error(err))
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		err := rows.Scan(
			&e.ID, &e.Kind, &e.ProjectName, &e.Category, &e.Description, &e.Amount,
			&e.AuthorID, &e.AuthorName, &e.Team, &e.SpentAt, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, &e)
	}

	return expenses, rows.Err()
}

// Total sums the amounts of expenses matching the filter
func (r *ExpenseRepository) Total(ctx context.Context, filter port.ExpenseFilter) (float64, error) {
	where, args := expenseWhere(filter)
	query := `SELECT COALESCE(SUM(amount), 0) FROM expenses` + where

	var total float64
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&total)
	if err != nil {
		r.logger.Error("Failed to total expenses", zap.Error(err))
		return 0, fmt.Errorf("failed to total expenses: %w", err)
	}

	return total, nil
}

// Update updates an expense
func (r *ExpenseRepository) Update(ctx context.Context, e *entity.Expense) error {
	query := `
		UPDATE expenses
		SET kind = ?, project_name = ?, category = ?, description = ?, amount = ?,
			spent_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		e.Kind, e.ProjectName, e.Category, e.Description, e.Amount, e.SpentAt, e.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update expense", zap.Int64("id", e.ID), zap.Error(err))
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM expenses WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete expense", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	return nil
}

// Verify interface compliance
var _ port.ExpenseRepository = (*ExpenseRepository)(nil)
