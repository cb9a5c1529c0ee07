package service

import (
	"context"
	"fmt"
	"time"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
	"github.com/garamsoft/groupware/pkg/utils"
)

// maxDailyMinutes caps a single day's record at 24 hours
const maxDailyMinutes = 24 * 60

// WorkHoursSummary is a listing plus its summed minutes
type WorkHoursSummary struct {
	Items        []*entity.WorkHours `json:"items"`
	TotalMinutes int                 `json:"total_minutes"`
}

// WorkHoursService manages per-day worked minutes
type WorkHoursService interface {
	Record(ctx context.Context, wh *entity.WorkHours, actorID int64) error
	ListForUser(ctx context.Context, userID int64, from, to time.Time) (*WorkHoursSummary, error)
}

type workHoursServiceImpl struct {
	workHoursRepo port.WorkHoursRepository
	logger        Logger
}

// NewWorkHoursService creates a new WorkHoursService
func NewWorkHoursService(workHoursRepo port.WorkHoursRepository, logger Logger) WorkHoursService {
	return &workHoursServiceImpl{workHoursRepo: workHoursRepo, logger: logger}
}

// Record upserts worked minutes for a user and day. Users record only
// their own hours.
func (s *workHoursServiceImpl) Record(ctx context.Context, wh *entity.WorkHours, actorID int64) error {
	if wh.UserID != actorID {
		return ErrForbidden
	}
	if wh.Minutes < 0 || wh.Minutes > maxDailyMinutes {
		return fmt.Errorf("%w: minutes must be within 0 and %d", ErrValidation, maxDailyMinutes)
	}
	if wh.WorkDate.IsZero() {
		return fmt.Errorf("%w: work date is required", ErrValidation)
	}

	if err := s.workHoursRepo.Upsert(ctx, wh); err != nil {
		s.logger.Error("Failed to record work hours", "error", err, "user_id", wh.UserID)
		return err
	}

	s.logger.Info("Work hours recorded",
		"user_id", wh.UserID, "date", wh.WorkDate.Format("2006-01-02"), "minutes", wh.Minutes)
	return nil
}

// ListForUser retrieves a user's records in [from, to] with their total
func (s *workHoursServiceImpl) ListForUser(ctx context.Context, userID int64, from, to time.Time) (*WorkHoursSummary, error) {
	if err := utils.ValidateDateRange(from, to); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	items, err := s.workHoursRepo.ListByUser(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	total, err := s.workHoursRepo.TotalMinutes(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	return &WorkHoursSummary{Items: items, TotalMinutes: total}, nil
}
