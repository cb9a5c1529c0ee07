package service

import (
	"context"
	"fmt"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
)

// NoticeService manages company announcements
type NoticeService interface {
	Create(ctx context.Context, n *entity.Notice) error
	Get(ctx context.Context, id int64) (*entity.Notice, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Notice, error)
	Update(ctx context.Context, n *entity.Notice, actorID int64, actorRole string) error
	Delete(ctx context.Context, id, actorID int64, actorRole string) error
}

type noticeServiceImpl struct {
	noticeRepo port.NoticeRepository
	logger     Logger
}

// NewNoticeService creates a new NoticeService
func NewNoticeService(noticeRepo port.NoticeRepository, logger Logger) NoticeService {
	return &noticeServiceImpl{noticeRepo: noticeRepo, logger: logger}
}

// Create publishes a new notice
func (s *noticeServiceImpl) Create(ctx context.Context, n *entity.Notice) error {
	if n.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}

	if err := s.noticeRepo.Create(ctx, n); err != nil {
		s.logger.Error("Failed to create notice", "error", err, "author_id", n.AuthorID)
		return err
	}

	s.logger.Info("Notice created", "id", n.ID, "pinned", n.Pinned)
	return nil
}

// Get retrieves a single notice
func (s *noticeServiceImpl) Get(ctx context.Context, id int64) (*entity.Notice, error) {
	n, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, ErrNotFound
	}
	return n, nil
}

// List retrieves notices pinned first, then newest first
func (s *noticeServiceImpl) List(ctx context.Context, limit, offset int) ([]*entity.Notice, error) {
	return s.noticeRepo.List(ctx, limit, offset)
}

// Update modifies a notice. Only the author or an admin may edit.
func (s *noticeServiceImpl) Update(ctx context.Context, n *entity.Notice, actorID int64, actorRole string) error {
	existing, err := s.noticeRepo.GetByID(ctx, n.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.AuthorID != actorID && actorRole != entity.RoleAdmin {
		return ErrForbidden
	}

	return s.noticeRepo.Update(ctx, n)
}

// Delete removes a notice. Only the author or an admin may delete.
func (s *noticeServiceImpl) Delete(ctx context.Context, id, actorID int64, actorRole string) error {
	existing, err := s.noticeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.AuthorID != actorID && actorRole != entity.RoleAdmin {
		return ErrForbidden
	}

	return s.noticeRepo.Delete(ctx, id)
}

// BookService manages book purchase requests
type BookService interface {
	Create(ctx context.Context, b *entity.BookRequest) error
	Get(ctx context.Context, id int64) (*entity.BookRequest, error)
	List(ctx context.Context, state string, limit, offset int) ([]*entity.BookRequest, error)
	Advance(ctx context.Context, id int64, state, actorRole string) error
	Delete(ctx context.Context, id, actorID int64, actorRole string) error
}

type bookServiceImpl struct {
	bookRepo port.BookRepository
	logger   Logger
}

// NewBookService creates a new BookService
func NewBookService(bookRepo port.BookRepository, logger Logger) BookService {
	return &bookServiceImpl{bookRepo: bookRepo, logger: logger}
}

// Create files a new book request
func (s *bookServiceImpl) Create(ctx context.Context, b *entity.BookRequest) error {
	if b.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	b.State = entity.BookRequested

	if err := s.bookRepo.Create(ctx, b); err != nil {
		s.logger.Error("Failed to create book request", "error", err, "requester_id", b.RequesterID)
		return err
	}

	s.logger.Info("Book request created", "id", b.ID, "title", b.Title)
	return nil
}

// Get retrieves a single book request
func (s *bookServiceImpl) Get(ctx context.Context, id int64) (*entity.BookRequest, error) {
	b, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

// List retrieves book requests, optionally filtered by state
func (s *bookServiceImpl) List(ctx context.Context, state string, limit, offset int) ([]*entity.BookRequest, error) {
	return s.bookRepo.List(ctx, state, limit, offset)
}

// Advance moves a request forward: REQUESTED, then ORDERED, then RECEIVED.
// Only managers and admins may advance.
func (s *bookServiceImpl) Advance(ctx context.Context, id int64, state, actorRole string) error {
	if actorRole != entity.RoleManager && actorRole != entity.RoleAdmin {
		return ErrForbidden
	}

	existing, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	valid := (existing.State == entity.BookRequested && state == entity.BookOrdered) ||
		(existing.State == entity.BookOrdered && state == entity.BookReceived)
	if !valid {
		return fmt.Errorf("%w: cannot move book request from %s to %s", ErrValidation, existing.State, state)
	}

	if err := s.bookRepo.UpdateState(ctx, id, state); err != nil {
		s.logger.Error("Failed to advance book request", "error", err, "id", id)
		return err
	}

	s.logger.Info("Book request advanced", "id", id, "state", state)
	return nil
}

// Delete removes a book request. Only the requester or an admin may delete.
func (s *bookServiceImpl) Delete(ctx context.Context, id, actorID int64, actorRole string) error {
	existing, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	if existing.RequesterID != actorID && actorRole != entity.RoleAdmin {
		return ErrForbidden
	}

	return s.bookRepo.Delete(ctx, id)
}

// DeviceService manages the IT inventory
type DeviceService interface {
	Create(ctx context.Context, d *entity.Device) error
	Get(ctx context.Context, id int64) (*entity.Device, error)
	List(ctx context.Context, state string, limit, offset int) ([]*entity.Device, error)
	Assign(ctx context.Context, id, assigneeID int64, assigneeName string) error
	Release(ctx context.Context, id int64) error
	Retire(ctx context.Context, id int64) error
	Update(ctx context.Context, d *entity.Device) error
	Delete(ctx context.Context, id int64) error
}

type deviceServiceImpl struct {
	deviceRepo port.DeviceRepository
	logger     Logger
}

// NewDeviceService creates a new DeviceService
func NewDeviceService(deviceRepo port.DeviceRepository, logger Logger) DeviceService {
	return &deviceServiceImpl{deviceRepo: deviceRepo, logger: logger}
}

// Create registers a new device in stock
func (s *deviceServiceImpl) Create(ctx context.Context, d *entity.Device) error {
	if d.Kind == "" || d.Model == "" {
		return fmt.Errorf("%w: kind and model are required", ErrValidation)
	}
	if d.State == "" {
		d.State = entity.DeviceInStock
	}

	if err := s.deviceRepo.Create(ctx, d); err != nil {
		s.logger.Error("Failed to create device", "error", err)
		return err
	}

	s.logger.Info("Device registered", "id", d.ID, "kind", d.Kind, "model", d.Model)
	return nil
}

// Get retrieves a single device
func (s *deviceServiceImpl) Get(ctx context.Context, id int64) (*entity.Device, error) {
	d, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNotFound
	}
	return d, nil
}

// List retrieves devices, optionally filtered by state
func (s *deviceServiceImpl) List(ctx context.Context, state string, limit, offset int) ([]*entity.Device, error) {
	return s.deviceRepo.List(ctx, state, limit, offset)
}

// Assign hands an in-stock device to a user
func (s *deviceServiceImpl) Assign(ctx context.Context, id, assigneeID int64, assigneeName string) error {
	d, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrNotFound
	}
	if d.State != entity.DeviceInStock {
		return fmt.Errorf("%w: device is %s", ErrValidation, d.State)
	}

	d.AssigneeID = &assigneeID
	d.AssigneeName = assigneeName
	d.State = entity.DeviceAssigned

	if err := s.deviceRepo.Update(ctx, d); err != nil {
		s.logger.Error("Failed to assign device", "error", err, "id", id)
		return err
	}

	s.logger.Info("Device assigned", "id", id, "assignee_id", assigneeID)
	return nil
}

// Release returns an assigned device to stock
func (s *deviceServiceImpl) Release(ctx context.Context, id int64) error {
	d, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrNotFound
	}
	if d.State != entity.DeviceAssigned {
		return fmt.Errorf("%w: device is %s", ErrValidation, d.State)
	}

	d.AssigneeID = nil
	d.AssigneeName = ""
	d.State = entity.DeviceInStock

	return s.deviceRepo.Update(ctx, d)
}

// Retire marks a device as out of service
func (s *deviceServiceImpl) Retire(ctx context.Context, id int64) error {
	d, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrNotFound
	}

	d.AssigneeID = nil
	d.AssigneeName = ""
	d.State = entity.DeviceRetired

	s.logger.Info("Device retired", "id", id)
	return s.deviceRepo.Update(ctx, d)
}

// Update modifies a device's descriptive fields
func (s *deviceServiceImpl) Update(ctx context.Context, d *entity.Device) error {
	existing, err := s.deviceRepo.GetByID(ctx, d.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	return s.deviceRepo.Update(ctx, d)
}

// Delete removes a device record
func (s *deviceServiceImpl) Delete(ctx context.Context, id int64) error {
	existing, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	return s.deviceRepo.Delete(ctx, id)
}
