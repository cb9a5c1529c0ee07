package port

import (
	"context"
	"time"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

// UserRepository defines persistence operations for User
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByLoginID(ctx context.Context, loginID string) (*entity.User, error)
	List(ctx context.Context, team string, limit, offset int) ([]*entity.User, error)
	SetRefreshHash(ctx context.Context, id int64, hash string) error
}

// ProposalFilter narrows proposal listings
type ProposalFilter struct {
	State    string
	AuthorID int64
	Team     string
	Limit    int
	Offset   int
}

// ProposalRepository defines persistence operations for Proposal and its
// lines, references and attachments
type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.Proposal) error
	GetByID(ctx context.Context, id int64) (*entity.Proposal, error)
	List(ctx context.Context, filter ProposalFilter) ([]*entity.Proposal, error)
	UpdateState(ctx context.Context, id int64, state string) error
	SetSubmittedAt(ctx context.Context, id int64, t time.Time) error
	SetCompletedAt(ctx context.Context, id int64, t time.Time) error
	Delete(ctx context.Context, id int64) error

	CreateLine(ctx context.Context, line *entity.ApprovalLine) error
	GetLines(ctx context.Context, proposalID int64) ([]*entity.ApprovalLine, error)
	// DecideLine flips a line from PENDING to the given state. Returns false
	// when the line was no longer pending, so concurrent double-decisions
	// surface as conflicts instead of silent overwrites.
	DecideLine(ctx context.Context, lineID int64, state, comment string, decidedAt time.Time) (bool, error)

	CreateReference(ctx context.Context, ref *entity.Reference) error
	GetReferences(ctx context.Context, proposalID int64) ([]*entity.Reference, error)

	CreateAttachment(ctx context.Context, att *entity.Attachment) error
	GetAttachments(ctx context.Context, proposalID int64) ([]*entity.Attachment, error)
}

// NotificationRepository defines persistence operations for Notification
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
	DeleteByRecipient(ctx context.Context, recipientID int64) error
}

// ExpenseFilter narrows expense listings
type ExpenseFilter struct {
	Kind     string
	Team     string
	AuthorID int64
	Month    string // YYYY-MM
	Limit    int
	Offset   int
}

// ExpenseRepository defines persistence operations for Expense
type ExpenseRepository interface {
	Create(ctx context.Context, e *entity.Expense) error
	GetByID(ctx context.Context, id int64) (*entity.Expense, error)
	List(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, error)
	Total(ctx context.Context, filter ExpenseFilter) (float64, error)
	Update(ctx context.Context, e *entity.Expense) error
	Delete(ctx context.Context, id int64) error
}

// EstimateRepository defines persistence operations for Estimate
type EstimateRepository interface {
	Create(ctx context.Context, e *entity.Estimate) error
	GetByID(ctx context.Context, id int64) (*entity.Estimate, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Estimate, error)
	Update(ctx context.Context, e *entity.Estimate) error
	Delete(ctx context.Context, id int64) error
}

// InvoiceRepository defines persistence operations for Invoice
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id int64) (*entity.Invoice, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Invoice, error)
	Update(ctx context.Context, inv *entity.Invoice) error
	Delete(ctx context.Context, id int64) error
}

// NoticeRepository defines persistence operations for Notice
type NoticeRepository interface {
	Create(ctx context.Context, n *entity.Notice) error
	GetByID(ctx context.Context, id int64) (*entity.Notice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Notice, error)
	Update(ctx context.Context, n *entity.Notice) error
	Delete(ctx context.Context, id int64) error
}

// BookRepository defines persistence operations for BookRequest
type BookRepository interface {
	Create(ctx context.Context, b *entity.BookRequest) error
	GetByID(ctx context.Context, id int64) (*entity.BookRequest, error)
	List(ctx context.Context, state string, limit, offset int) ([]*entity.BookRequest, error)
	UpdateState(ctx context.Context, id int64, state string) error
	Delete(ctx context.Context, id int64) error
}

// DeviceRepository defines persistence operations for Device
type DeviceRepository interface {
	Create(ctx context.Context, d *entity.Device) error
	GetByID(ctx context.Context, id int64) (*entity.Device, error)
	List(ctx context.Context, state string, limit, offset int) ([]*entity.Device, error)
	Update(ctx context.Context, d *entity.Device) error
	Delete(ctx context.Context, id int64) error
}

// ScheduleRepository defines persistence operations for Schedule
type ScheduleRepository interface {
	Create(ctx context.Context, s *entity.Schedule) error
	GetByID(ctx context.Context, id int64) (*entity.Schedule, error)
	// ListByRange returns schedules overlapping [from, to]
	ListByRange(ctx context.Context, from, to time.Time, kind string) ([]*entity.Schedule, error)
	Update(ctx context.Context, s *entity.Schedule) error
	Delete(ctx context.Context, id int64) error
}

// WorkHoursRepository defines persistence operations for WorkHours
type WorkHoursRepository interface {
	Upsert(ctx context.Context, wh *entity.WorkHours) error
	ListByUser(ctx context.Context, userID int64, from, to time.Time) ([]*entity.WorkHours, error)
	TotalMinutes(ctx context.Context, userID int64, from, to time.Time) (int, error)
}
