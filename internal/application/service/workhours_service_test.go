package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

type mockWorkHoursRepo struct {
	records map[string]*entity.WorkHours
}

func newMockWorkHoursRepo() *mockWorkHoursRepo {
	return &mockWorkHoursRepo{records: make(map[string]*entity.WorkHours)}
}

func whKey(userID int64, day time.Time) string {
	return fmt.Sprintf("%d/%s", userID, day.Format("2006-01-02"))
}

func (m *mockWorkHoursRepo) Upsert(ctx context.Context, wh *entity.WorkHours) error {
	m.records[whKey(wh.UserID, wh.WorkDate)] = wh
	return nil
}

func (m *mockWorkHoursRepo) ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]*entity.WorkHours, error) {
	var out []*entity.WorkHours
	for _, wh := range m.records {
		if wh.UserID == userID && !wh.WorkDate.Before(from) && !wh.WorkDate.After(to) {
			out = append(out, wh)
		}
	}
	return out, nil
}

func (m *mockWorkHoursRepo) TotalMinutes(ctx context.Context, userID int64, from, to time.Time) (int, error) {
	items, _ := m.ListByUser(ctx, userID, from, to)
	total := 0
	for _, wh := range items {
		total += wh.Minutes
	}
	return total, nil
}

func TestRecordWorkHours(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		wh      *entity.WorkHours
		actorID int64
		wantErr error
	}{
		{"own record", &entity.WorkHours{UserID: 7, WorkDate: day, Minutes: 480}, 7, nil},
		{"someone else's record", &entity.WorkHours{UserID: 7, WorkDate: day, Minutes: 480}, 8, ErrForbidden},
		{"negative minutes", &entity.WorkHours{UserID: 7, WorkDate: day, Minutes: -1}, 7, ErrValidation},
		{"over a day", &entity.WorkHours{UserID: 7, WorkDate: day, Minutes: 1441}, 7, ErrValidation},
		{"missing date", &entity.WorkHours{UserID: 7, Minutes: 480}, 7, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewWorkHoursService(newMockWorkHoursRepo(), noopLogger{})

			err := svc.Record(context.Background(), tt.wh, tt.actorID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRecordOverwritesSameDay(t *testing.T) {
	repo := newMockWorkHoursRepo()
	svc := NewWorkHoursService(repo, noopLogger{})
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_ = svc.Record(context.Background(), &entity.WorkHours{UserID: 7, WorkDate: day, Minutes: 480}, 7)
	_ = svc.Record(context.Background(), &entity.WorkHours{UserID: 7, WorkDate: day, Minutes: 510}, 7)

	if len(repo.records) != 1 {
		t.Fatalf("expected single record for the day, got %d", len(repo.records))
	}
	for _, wh := range repo.records {
		if wh.Minutes != 510 {
			t.Errorf("expected 510 minutes after overwrite, got %d", wh.Minutes)
		}
	}
}

func TestListForUserTotals(t *testing.T) {
	svc := NewWorkHoursService(newMockWorkHoursRepo(), noopLogger{})
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		wh := &entity.WorkHours{UserID: 7, WorkDate: monday.AddDate(0, 0, i), Minutes: 480}
		if err := svc.Record(context.Background(), wh, 7); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	summary, err := svc.ListForUser(context.Background(), 7, monday, monday.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Items) != 5 {
		t.Errorf("expected 5 items, got %d", len(summary.Items))
	}
	if summary.TotalMinutes != 2400 {
		t.Errorf("expected 2400 total minutes, got %d", summary.TotalMinutes)
	}
}

func TestListForUserInvertedRange(t *testing.T) {
	svc := NewWorkHoursService(newMockWorkHoursRepo(), noopLogger{})
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.ListForUser(context.Background(), 7, day, day.AddDate(0, 0, -7))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
