package service

import (
	"context"
	"fmt"
	"time"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
	"github.com/garamsoft/groupware/pkg/utils"
)

// ScheduleService manages calendar events and vacations
type ScheduleService interface {
	Create(ctx context.Context, sc *entity.Schedule) error
	Get(ctx context.Context, id int64) (*entity.Schedule, error)
	ListRange(ctx context.Context, from, to time.Time, kind string) ([]*entity.Schedule, error)
	Update(ctx context.Context, sc *entity.Schedule, actorID int64, actorRole string) error
	Delete(ctx context.Context, id, actorID int64, actorRole string) error
}

type scheduleServiceImpl struct {
	scheduleRepo port.ScheduleRepository
	logger       Logger
}

// NewScheduleService creates a new ScheduleService
func NewScheduleService(scheduleRepo port.ScheduleRepository, logger Logger) ScheduleService {
	return &scheduleServiceImpl{scheduleRepo: scheduleRepo, logger: logger}
}

// Create records a new schedule entry
func (s *scheduleServiceImpl) Create(ctx context.Context, sc *entity.Schedule) error {
	if sc.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if sc.Kind != entity.ScheduleEvent && sc.Kind != entity.ScheduleVacation {
		return fmt.Errorf("%w: unknown schedule kind %q", ErrValidation, sc.Kind)
	}
	if err := utils.ValidateDateRange(sc.StartDate, sc.EndDate); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.scheduleRepo.Create(ctx, sc); err != nil {
		s.logger.Error("Failed to create schedule", "error", err, "owner_id", sc.OwnerID)
		return err
	}

	s.logger.Info("Schedule created", "id", sc.ID, "kind", sc.Kind)
	return nil
}

// Get retrieves a single schedule entry
func (s *scheduleServiceImpl) Get(ctx context.Context, id int64) (*entity.Schedule, error) {
	sc, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, ErrNotFound
	}
	return sc, nil
}

// ListRange retrieves entries overlapping [from, to]
func (s *scheduleServiceImpl) ListRange(ctx context.Context, from, to time.Time, kind string) ([]*entity.Schedule, error) {
	if err := utils.ValidateDateRange(from, to); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.scheduleRepo.ListByRange(ctx, from, to, kind)
}

// Update modifies a schedule entry. Only the owner or an admin may edit.
func (s *scheduleServiceImpl) Update(ctx context.Context, sc *entity.Schedule, actorID int64, actorRole string) error {
	existing, err := s.scheduleRepo.GetByID(ctx, sc.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.OwnerID != actorID && actorRole != entity.RoleAdmin {
		return ErrForbidden
	}
	if err := utils.ValidateDateRange(sc.StartDate, sc.EndDate); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return s.scheduleRepo.Update(ctx, sc)
}

// Delete removes a schedule entry. Only the owner or an admin may delete.
func (s *scheduleServiceImpl) Delete(ctx context.Context, id, actorID int64, actorRole string) error {
	existing, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.OwnerID != actorID && actorRole != entity.RoleAdmin {
		return ErrForbidden
	}

	return s.scheduleRepo.Delete(ctx, id)
}
