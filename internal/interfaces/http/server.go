// Package http provides the HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application
// service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garamsoft/groupware/internal/application/service"
	"github.com/garamsoft/groupware/internal/auth"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Services bundles the application services the server exposes
type Services struct {
	Auth         service.AuthService
	Approval     service.ApprovalService
	Notification service.NotificationService
	Expense      service.ExpenseService
	Estimate     service.EstimateService
	Invoice      service.InvoiceService
	Notice       service.NoticeService
	Book         service.BookService
	Device       service.DeviceService
	Schedule     service.ScheduleService
	WorkHours    service.WorkHoursService
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	tokens     *auth.TokenManager
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, services Services, tokens *auth.TokenManager, logger Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:   config,
		router:   gin.New(),
		services: services,
		tokens:   tokens,
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(corsMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.services, s.logger)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api/v1")

	// Public auth routes
	api.POST("/auth/login", handlers.Login)
	api.POST("/auth/refresh", handlers.RefreshToken)

	// Everything else requires a valid access token
	authed := api.Group("")
	authed.Use(authRequired(s.tokens))
	{
		authed.POST("/auth/logout", handlers.Logout)

		authed.GET("/users/me", handlers.CurrentUser)
		authed.GET("/users", handlers.ListUsers)
		authed.POST("/users", requireRole(adminOnly...), handlers.RegisterUser)

		authed.POST("/proposals", handlers.CreateProposal)
		authed.GET("/proposals", handlers.ListProposals)
		authed.GET("/proposals/:id", handlers.GetProposal)
		authed.DELETE("/proposals/:id", handlers.DeleteDraft)
		authed.POST("/proposals/:id/submit", handlers.SubmitProposal)
		authed.POST("/proposals/:id/approve", handlers.ApproveProposal)
		authed.POST("/proposals/:id/reject", handlers.RejectProposal)
		authed.GET("/proposals/:id/lines", handlers.GetProposalLines)
		authed.POST("/proposals/:id/files", handlers.AttachProposalFile)

		authed.GET("/notifications", handlers.ListNotifications)
		authed.PUT("/notifications/:id/read", handlers.MarkNotificationRead)
		authed.PUT("/notifications/read-all", handlers.MarkAllNotificationsRead)
		authed.DELETE("/notifications", handlers.ClearNotifications)

		authed.POST("/expenses", handlers.CreateExpense)
		authed.GET("/expenses", handlers.ListExpenses)
		authed.GET("/expenses/export", handlers.ExportExpenses)
		authed.GET("/expenses/:id", handlers.GetExpense)
		authed.PUT("/expenses/:id", handlers.UpdateExpense)
		authed.DELETE("/expenses/:id", handlers.DeleteExpense)

		authed.POST("/estimates", requireRole(managerAndUp...), handlers.CreateEstimate)
		authed.GET("/estimates", handlers.ListEstimates)
		authed.GET("/estimates/export", handlers.ExportEstimates)
		authed.GET("/estimates/:id", handlers.GetEstimate)
		authed.PUT("/estimates/:id", requireRole(managerAndUp...), handlers.UpdateEstimate)
		authed.DELETE("/estimates/:id", requireRole(managerAndUp...), handlers.DeleteEstimate)

		authed.POST("/invoices", requireRole(managerAndUp...), handlers.CreateInvoice)
		authed.GET("/invoices", handlers.ListInvoices)
		authed.GET("/invoices/export", handlers.ExportInvoices)
		authed.GET("/invoices/:id", handlers.GetInvoice)
		authed.PUT("/invoices/:id", requireRole(managerAndUp...), handlers.UpdateInvoice)
		authed.DELETE("/invoices/:id", requireRole(managerAndUp...), handlers.DeleteInvoice)

		authed.POST("/notices", requireRole(managerAndUp...), handlers.CreateNotice)
		authed.GET("/notices", handlers.ListNotices)
		authed.GET("/notices/:id", handlers.GetNotice)
		authed.PUT("/notices/:id", handlers.UpdateNotice)
		authed.DELETE("/notices/:id", handlers.DeleteNotice)

		authed.POST("/books", handlers.CreateBookRequest)
		authed.GET("/books", handlers.ListBookRequests)
		authed.PUT("/books/:id/state", handlers.AdvanceBookRequest)
		authed.DELETE("/books/:id", handlers.DeleteBookRequest)

		authed.POST("/devices", requireRole(adminOnly...), handlers.CreateDevice)
		authed.GET("/devices", handlers.ListDevices)
		authed.GET("/devices/:id", handlers.GetDevice)
		authed.PUT("/devices/:id", requireRole(adminOnly...), handlers.UpdateDevice)
		authed.PUT("/devices/:id/assign", requireRole(adminOnly...), handlers.AssignDevice)
		authed.PUT("/devices/:id/release", requireRole(adminOnly...), handlers.ReleaseDevice)
		authed.PUT("/devices/:id/retire", requireRole(adminOnly...), handlers.RetireDevice)
		authed.DELETE("/devices/:id", requireRole(adminOnly...), handlers.DeleteDevice)

		authed.POST("/schedules", handlers.CreateSchedule)
		authed.GET("/schedules", handlers.ListSchedules)
		authed.GET("/schedules/:id", handlers.GetSchedule)
		authed.PUT("/schedules/:id", handlers.UpdateSchedule)
		authed.DELETE("/schedules/:id", handlers.DeleteSchedule)

		authed.PUT("/workhours", handlers.RecordWorkHours)
		authed.GET("/workhours", handlers.ListWorkHours)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
