package service

import (
	"context"
	"fmt"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
	"github.com/garamsoft/groupware/internal/export"
	"github.com/garamsoft/groupware/pkg/utils"
)

// ExpenseSummary is a listing plus its total amount
type ExpenseSummary struct {
	Items []*entity.Expense `json:"items"`
	Total float64           `json:"total"`
}

// ExpenseService manages general and project spend records
type ExpenseService interface {
	Create(ctx context.Context, e *entity.Expense) error
	Get(ctx context.Context, id int64) (*entity.Expense, error)
	List(ctx context.Context, filter port.ExpenseFilter) (*ExpenseSummary, error)
	Update(ctx context.Context, e *entity.Expense, actorID int64, actorRole string) error
	Delete(ctx context.Context, id, actorID int64, actorRole string) error
	Export(ctx context.Context, filter port.ExpenseFilter) ([]byte, string, error)
}

type expenseServiceImpl struct {
	expenseRepo port.ExpenseRepository
	logger      Logger
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo port.ExpenseRepository, logger Logger) ExpenseService {
	return &expenseServiceImpl{expenseRepo: expenseRepo, logger: logger}
}

// Create records a new expense
func (s *expenseServiceImpl) Create(ctx context.Context, e *entity.Expense) error {
	if err := utils.ValidateAmount(e.Amount); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if e.Kind == entity.ExpenseProject && e.ProjectName == "" {
		return fmt.Errorf("%w: project expenses need a project name", ErrValidation)
	}
	if e.Kind == "" {
		e.Kind = entity.ExpenseGeneral
	}

	if err := s.expenseRepo.Create(ctx, e); err != nil {
		s.logger.Error("Failed to create expense", "error", err, "author_id", e.AuthorID)
		return err
	}

	s.logger.Info("Expense created", "id", e.ID, "kind", e.Kind, "amount", e.Amount)
	return nil
}

// Get retrieves a single expense
func (s *expenseServiceImpl) Get(ctx context.Context, id int64) (*entity.Expense, error) {
	e, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

// List retrieves matching expenses together with their summed amount
func (s *expenseServiceImpl) List(ctx context.Context, filter port.ExpenseFilter) (*ExpenseSummary, error) {
	items, err := s.expenseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.expenseRepo.Total(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ExpenseSummary{Items: items, Total: total}, nil
}

// Update modifies an expense. Only the author or an admin may edit.
func (s *expenseServiceImpl) Update(ctx context.Context, e *entity.Expense, actorID int64, actorRole string) error {
	existing, err := s.expenseRepo.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.AuthorID != actorID && actorRole != entity.RoleAdmin {
		return ErrForbidden
	}
	if err := utils.ValidateAmount(e.Amount); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return s.expenseRepo.Update(ctx, e)
}

// Delete removes an expense. Only the author or an admin may delete.
func (s *expenseServiceImpl) Delete(ctx context.Context, id, actorID int64, actorRole string) error {
	existing, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.AuthorID != actorID && actorRole != entity.RoleAdmin {
		return ErrForbidden
	}

	return s.expenseRepo.Delete(ctx, id)
}

// Export renders matching expenses as an xlsx workbook
func (s *expenseServiceImpl) Export(ctx context.Context, filter port.ExpenseFilter) ([]byte, string, error) {
	items, err := s.expenseRepo.List(ctx, filter)
	if err != nil {
		return nil, "", err
	}

	data, err := export.ExpenseWorkbook(items)
	if err != nil {
		s.logger.Error("Failed to export expenses", "error", err)
		return nil, "", err
	}

	name := "expenses.xlsx"
	if filter.Month != "" {
		name = fmt.Sprintf("expenses-%s.xlsx", filter.Month)
	}
	return data, name, nil
}
