package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

// EstimateRequest carries a new or updated estimate
type EstimateRequest struct {
	ClientName string  `json:"client_name" binding:"required"`
	Title      string  `json:"title" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	Status     string  `json:"status"`
	IssuedAt   string  `json:"issued_at"` // YYYY-MM-DD, defaults to today
}

// InvoiceRequest carries a new or updated invoice
type InvoiceRequest struct {
	ClientName string  `json:"client_name" binding:"required"`
	Title      string  `json:"title" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	Status     string  `json:"status"`
	IssuedAt   string  `json:"issued_at"` // YYYY-MM-DD, defaults to today
	DueAt      string  `json:"due_at"`    // YYYY-MM-DD, optional
}

func parseDateOrToday(s string) (time.Time, bool) {
	if s == "" {
		return time.Now(), true
	}
	t, err := time.Parse("2006-01-02", s)
	return t, err == nil
}

// CreateEstimate handles POST /api/v1/estimates
func (h *Handlers) CreateEstimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "client_name, title and amount are required")
		return
	}

	issuedAt, ok := parseDateOrToday(req.IssuedAt)
	if !ok {
		respondBadRequest(c, "issued_at must be YYYY-MM-DD")
		return
	}

	claims := currentClaims(c)
	estimate := &entity.Estimate{
		ClientName: req.ClientName,
		Title:      req.Title,
		Amount:     req.Amount,
		Status:     req.Status,
		IssuedAt:   issuedAt,
		AuthorID:   claims.UserID,
	}

	if err := h.services.Estimate.Create(c.Request.Context(), estimate); err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, estimate)
}

// ListEstimates handles GET /api/v1/estimates
func (h *Handlers) ListEstimates(c *gin.Context) {
	limit, offset := pagination(c)

	items, err := h.services.Estimate.List(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, items)
}

// GetEstimate handles GET /api/v1/estimates/:id
func (h *Handlers) GetEstimate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	estimate, err := h.services.Estimate.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, estimate)
}

// UpdateEstimate handles PUT /api/v1/estimates/:id
func (h *Handlers) UpdateEstimate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "client_name, title and amount are required")
		return
	}

	issuedAt, parsed := parseDateOrToday(req.IssuedAt)
	if !parsed {
		respondBadRequest(c, "issued_at must be YYYY-MM-DD")
		return
	}

	claims := currentClaims(c)
	estimate := &entity.Estimate{
		ID:         id,
		ClientName: req.ClientName,
		Title:      req.Title,
		Amount:     req.Amount,
		Status:     req.Status,
		IssuedAt:   issuedAt,
		AuthorID:   claims.UserID,
	}

	if err := h.services.Estimate.Update(c.Request.Context(), estimate); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, estimate)
}

// DeleteEstimate handles DELETE /api/v1/estimates/:id
func (h *Handlers) DeleteEstimate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.services.Estimate.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

// ExportEstimates handles GET /api/v1/estimates/export
func (h *Handlers) ExportEstimates(c *gin.Context) {
	data, name, err := h.services.Estimate.Export(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(200, xlsxContentType, data)
}

// CreateInvoice handles POST /api/v1/invoices
func (h *Handlers) CreateInvoice(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "client_name, title and amount are required")
		return
	}

	invoice, ok := h.invoiceFromRequest(c, 0, &req)
	if !ok {
		return
	}

	if err := h.services.Invoice.Create(c.Request.Context(), invoice); err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, invoice)
}

// ListInvoices handles GET /api/v1/invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	limit, offset := pagination(c)

	items, err := h.services.Invoice.List(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, items)
}

// GetInvoice handles GET /api/v1/invoices/:id
func (h *Handlers) GetInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	invoice, err := h.services.Invoice.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, invoice)
}

// UpdateInvoice handles PUT /api/v1/invoices/:id
func (h *Handlers) UpdateInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "client_name, title and amount are required")
		return
	}

	invoice, parsed := h.invoiceFromRequest(c, id, &req)
	if !parsed {
		return
	}

	if err := h.services.Invoice.Update(c.Request.Context(), invoice); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, invoice)
}

// DeleteInvoice handles DELETE /api/v1/invoices/:id
func (h *Handlers) DeleteInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.services.Invoice.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

// ExportInvoices handles GET /api/v1/invoices/export
func (h *Handlers) ExportInvoices(c *gin.Context) {
	data, name, err := h.services.Invoice.Export(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(200, xlsxContentType, data)
}

func (h *Handlers) invoiceFromRequest(c *gin.Context, id int64, req *InvoiceRequest) (*entity.Invoice, bool) {
	issuedAt, ok := parseDateOrToday(req.IssuedAt)
	if !ok {
		respondBadRequest(c, "issued_at must be YYYY-MM-DD")
		return nil, false
	}

	var dueAt *time.Time
	if req.DueAt != "" {
		t, err := time.Parse("2006-01-02", req.DueAt)
		if err != nil {
			respondBadRequest(c, "due_at must be YYYY-MM-DD")
			return nil, false
		}
		dueAt = &t
	}

	claims := currentClaims(c)
	return &entity.Invoice{
		ID:         id,
		ClientName: req.ClientName,
		Title:      req.Title,
		Amount:     req.Amount,
		Status:     req.Status,
		IssuedAt:   issuedAt,
		DueAt:      dueAt,
		AuthorID:   claims.UserID,
	}, true
}
