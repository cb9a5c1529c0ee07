// Package container wires application dependencies in initialization
// order: database, repositories, storage, services, HTTP server.
package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/application/service"
	"github.com/garamsoft/groupware/internal/auth"
	"github.com/garamsoft/groupware/internal/config"
	"github.com/garamsoft/groupware/internal/infrastructure/persistence/repository"
	"github.com/garamsoft/groupware/internal/infrastructure/persistence/sqlite"
	"github.com/garamsoft/groupware/internal/infrastructure/storage"
	httpiface "github.com/garamsoft/groupware/internal/interfaces/http"
	"github.com/garamsoft/groupware/pkg/database"
)

// RepositoryBundle groups all repositories for convenient access
type RepositoryBundle struct {
	User         port.UserRepository
	Proposal     port.ProposalRepository
	Notification port.NotificationRepository
	Expense      port.ExpenseRepository
	Estimate     port.EstimateRepository
	Invoice      port.InvoiceRepository
	Notice       port.NoticeRepository
	Book         port.BookRepository
	Device       port.DeviceRepository
	Schedule     port.ScheduleRepository
	WorkHours    port.WorkHoursRepository
}

// Container manages all application dependencies
type Container struct {
	config *config.Config
	logger *zap.Logger

	db           *database.DB
	txManager    *sqlite.DB
	repositories *RepositoryBundle
	fileStorage  port.FileStorage
	tokens       *auth.TokenManager
	services     httpiface.Services
	server       *httpiface.Server
}

// New builds a fully wired container from configuration
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	c := &Container{config: cfg, logger: logger}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initStorage(); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initServer()

	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := database.New(database.Config{
		Path:            c.config.Database.Path,
		MaxOpenConns:    c.config.Database.MaxOpenConns,
		MaxIdleConns:    c.config.Database.MaxIdleConns,
		ConnMaxLifetime: c.config.Database.ConnMaxLifetime,
	}, c.logger)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	migrator := database.NewMigrator(db, c.logger)
	if err := migrator.RunMigrations(c.config.Database.MigrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	c.db = db
	c.txManager = sqlite.NewDB(db.DB, c.logger)
	return nil
}

func (c *Container) initStorage() error {
	fs, err := storage.NewLocalStorage(c.config.Storage.UploadDir, c.logger)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	c.fileStorage = fs
	return nil
}

func (c *Container) initRepositories() {
	db := c.db.DB
	c.repositories = &RepositoryBundle{
		User:         repository.NewUserRepository(db, c.logger),
		Proposal:     repository.NewProposalRepository(db, c.logger),
		Notification: repository.NewNotificationRepository(db, c.logger),
		Expense:      repository.NewExpenseRepository(db, c.logger),
		Estimate:     repository.NewEstimateRepository(db, c.logger),
		Invoice:      repository.NewInvoiceRepository(db, c.logger),
		Notice:       repository.NewNoticeRepository(db, c.logger),
		Book:         repository.NewBookRepository(db, c.logger),
		Device:       repository.NewDeviceRepository(db, c.logger),
		Schedule:     repository.NewScheduleRepository(db, c.logger),
		WorkHours:    repository.NewWorkHoursRepository(db, c.logger),
	}
}

func (c *Container) initServices() {
	c.tokens = auth.NewTokenManager(auth.Config{
		AccessSecret:  c.config.Auth.AccessSecret,
		RefreshSecret: c.config.Auth.RefreshSecret,
		AccessTTL:     c.config.Auth.AccessTTL,
		RefreshTTL:    c.config.Auth.RefreshTTL,
	})

	serviceLogger := &zapLoggerAdapter{logger: c.logger}
	repos := c.repositories

	notification := service.NewNotificationService(repos.Notification, serviceLogger)

	c.services = httpiface.Services{
		Auth:         service.NewAuthService(repos.User, c.tokens, serviceLogger),
		Approval:     service.NewApprovalService(repos.Proposal, notification, c.fileStorage, c.txManager, serviceLogger),
		Notification: notification,
		Expense:      service.NewExpenseService(repos.Expense, serviceLogger),
		Estimate:     service.NewEstimateService(repos.Estimate, serviceLogger),
		Invoice:      service.NewInvoiceService(repos.Invoice, serviceLogger),
		Notice:       service.NewNoticeService(repos.Notice, serviceLogger),
		Book:         service.NewBookService(repos.Book, serviceLogger),
		Device:       service.NewDeviceService(repos.Device, serviceLogger),
		Schedule:     service.NewScheduleService(repos.Schedule, serviceLogger),
		WorkHours:    service.NewWorkHoursService(repos.WorkHours, serviceLogger),
	}
}

func (c *Container) initServer() {
	c.server = httpiface.NewServer(httpiface.ServerConfig{
		Host:         c.config.Server.Host,
		Port:         c.config.Server.Port,
		ReadTimeout:  c.config.Server.ReadTimeout,
		WriteTimeout: c.config.Server.WriteTimeout,
	}, c.services, c.tokens, &zapLoggerAdapter{logger: c.logger})
}

// Server returns the wired HTTP server
func (c *Container) Server() *httpiface.Server {
	return c.server
}

// Services returns the wired application services
func (c *Container) Services() httpiface.Services {
	return c.services
}

// Repositories returns the wired repositories
func (c *Container) Repositories() *RepositoryBundle {
	return c.repositories
}

// Close releases held resources
func (c *Container) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// zapLoggerAdapter adapts zap.Logger to the service.Logger interface.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
