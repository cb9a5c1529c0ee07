package service

import (
	"context"
	"fmt"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
	"github.com/garamsoft/groupware/internal/export"
	"github.com/garamsoft/groupware/pkg/utils"
)

// EstimateService manages client quotations
type EstimateService interface {
	Create(ctx context.Context, e *entity.Estimate) error
	Get(ctx context.Context, id int64) (*entity.Estimate, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Estimate, error)
	Update(ctx context.Context, e *entity.Estimate) error
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context, status string) ([]byte, string, error)
}

type estimateServiceImpl struct {
	estimateRepo port.EstimateRepository
	logger       Logger
}

// NewEstimateService creates a new EstimateService
func NewEstimateService(estimateRepo port.EstimateRepository, logger Logger) EstimateService {
	return &estimateServiceImpl{estimateRepo: estimateRepo, logger: logger}
}

// Create records a new estimate, defaulting to draft status
func (s *estimateServiceImpl) Create(ctx context.Context, e *entity.Estimate) error {
	if e.ClientName == "" || e.Title == "" {
		return fmt.Errorf("%w: client name and title are required", ErrValidation)
	}
	if err := utils.ValidateAmount(e.Amount); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if e.Status == "" {
		e.Status = entity.EstimateDraft
	}

	if err := s.estimateRepo.Create(ctx, e); err != nil {
		s.logger.Error("Failed to create estimate", "error", err)
		return err
	}

	s.logger.Info("Estimate created", "id", e.ID, "client", e.ClientName)
	return nil
}

// Get retrieves a single estimate
func (s *estimateServiceImpl) Get(ctx context.Context, id int64) (*entity.Estimate, error) {
	e, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

// List retrieves estimates, optionally filtered by status
func (s *estimateServiceImpl) List(ctx context.Context, status string, limit, offset int) ([]*entity.Estimate, error) {
	return s.estimateRepo.List(ctx, status, limit, offset)
}

// Update modifies an estimate
func (s *estimateServiceImpl) Update(ctx context.Context, e *entity.Estimate) error {
	existing, err := s.estimateRepo.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	return s.estimateRepo.Update(ctx, e)
}

// Delete removes an estimate
func (s *estimateServiceImpl) Delete(ctx context.Context, id int64) error {
	existing, err := s.estimateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	return s.estimateRepo.Delete(ctx, id)
}

// Export renders matching estimates as an xlsx workbook
func (s *estimateServiceImpl) Export(ctx context.Context, status string) ([]byte, string, error) {
	// SQLite reads a negative LIMIT as unbounded
	items, err := s.estimateRepo.List(ctx, status, -1, 0)
	if err != nil {
		return nil, "", err
	}

	data, err := export.EstimateWorkbook(items)
	if err != nil {
		s.logger.Error("Failed to export estimates", "error", err)
		return nil, "", err
	}
	return data, "estimates.xlsx", nil
}

// InvoiceService manages client bills
type InvoiceService interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	Get(ctx context.Context, id int64) (*entity.Invoice, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Invoice, error)
	Update(ctx context.Context, inv *entity.Invoice) error
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context, status string) ([]byte, string, error)
}

type invoiceServiceImpl struct {
	invoiceRepo port.InvoiceRepository
	logger      Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo port.InvoiceRepository, logger Logger) InvoiceService {
	return &invoiceServiceImpl{invoiceRepo: invoiceRepo, logger: logger}
}

// Create records a new invoice, defaulting to draft status
func (s *invoiceServiceImpl) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ClientName == "" || inv.Title == "" {
		return fmt.Errorf("%w: client name and title are required", ErrValidation)
	}
	if err := utils.ValidateAmount(inv.Amount); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if inv.Status == "" {
		inv.Status = entity.InvoiceDraft
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		s.logger.Error("Failed to create invoice", "error", err)
		return err
	}

	s.logger.Info("Invoice created", "id", inv.ID, "client", inv.ClientName)
	return nil
}

// Get retrieves a single invoice
func (s *invoiceServiceImpl) Get(ctx context.Context, id int64) (*entity.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrNotFound
	}
	return inv, nil
}

// List retrieves invoices, optionally filtered by status
func (s *invoiceServiceImpl) List(ctx context.Context, status string, limit, offset int) ([]*entity.Invoice, error) {
	return s.invoiceRepo.List(ctx, status, limit, offset)
}

// Update modifies an invoice
func (s *invoiceServiceImpl) Update(ctx context.Context, inv *entity.Invoice) error {
	existing, err := s.invoiceRepo.GetByID(ctx, inv.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	return s.invoiceRepo.Update(ctx, inv)
}

// Delete removes an invoice
func (s *invoiceServiceImpl) Delete(ctx context.Context, id int64) error {
	existing, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	return s.invoiceRepo.Delete(ctx, id)
}

// Export renders matching invoices as an xlsx workbook
func (s *invoiceServiceImpl) Export(ctx context.Context, status string) ([]byte, string, error) {
	// SQLite reads a negative LIMIT as unbounded
	items, err := s.invoiceRepo.List(ctx, status, -1, 0)
	if err != nil {
		return nil, "", err
	}

	data, err := export.InvoiceWorkbook(items)
	if err != nil {
		s.logger.Error("Failed to export invoices", "error", err)
		return nil, "", err
	}
	return data, "invoices.xlsx", nil
}
