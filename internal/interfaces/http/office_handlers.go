package http

import (
	"github.com/gin-gonic/gin"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

// NoticeRequest carries a new or updated notice
type NoticeRequest struct {
	Title  string `json:"title" binding:"required"`
	Body   string `json:"body"`
	Pinned bool   `json:"pinned"`
}

// CreateNotice handles POST /api/v1/notices
func (h *Handlers) CreateNotice(c *gin.Context) {
	var req NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	claims := currentClaims(c)
	notice := &entity.Notice{
		Title:      req.Title,
		Body:       req.Body,
		Pinned:     req.Pinned,
		AuthorID:   claims.UserID,
		AuthorName: claims.Name,
	}

	if err := h.services.Notice.Create(c.Request.Context(), notice); err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, notice)
}

// ListNotices handles GET /api/v1/notices
func (h *Handlers) ListNotices(c *gin.Context) {
	limit, offset := pagination(c)

	items, err := h.services.Notice.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, items)
}

// GetNotice handles GET /api/v1/notices/:id
func (h *Handlers) GetNotice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	notice, err := h.services.Notice.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, notice)
}

// UpdateNotice handles PUT /api/v1/notices/:id
func (h *Handlers) UpdateNotice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	claims := currentClaims(c)
	notice := &entity.Notice{
		ID:     id,
		Title:  req.Title,
		Body:   req.Body,
		Pinned: req.Pinned,
	}

	if err := h.services.Notice.Update(c.Request.Context(), notice, claims.UserID, claims.Role); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, notice)
}

// DeleteNotice handles DELETE /api/v1/notices/:id
func (h *Handlers) DeleteNotice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claims := currentClaims(c)
	if err := h.services.Notice.Delete(c.Request.Context(), id, claims.UserID, claims.Role); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

// BookRequestBody carries a new book purchase request
type BookRequestBody struct {
	Title string `json:"title" binding:"required"`
	Link  string `json:"link"`
}

// BookStateRequest carries the next state for a book request
type BookStateRequest struct {
	State string `json:"state" binding:"required"`
}

// CreateBookRequest handles POST /api/v1/books
func (h *Handlers) CreateBookRequest(c *gin.Context) {
	var req BookRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	claims := currentClaims(c)
	book := &entity.BookRequest{
		Title:         req.Title,
		Link:          req.Link,
		RequesterID:   claims.UserID,
		RequesterName: claims.Name,
	}

	if err := h.services.Book.Create(c.Request.Context(), book); err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, book)
}

// ListBookRequests handles GET /api/v1/books
func (h *Handlers) ListBookRequests(c *gin.Context) {
	limit, offset := pagination(c)

	items, err := h.services.Book.List(c.Request.Context(), c.Query("state"), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, items)
}

// AdvanceBookRequest handles PUT /api/v1/books/:id/state
func (h *Handlers) AdvanceBookRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req BookStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "state is required")
		return
	}

	claims := currentClaims(c)
	if err := h.services.Book.Advance(c.Request.Context(), id, req.State, claims.Role); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"state": req.State})
}

// DeleteBookRequest handles DELETE /api/v1/books/:id
func (h *Handlers) DeleteBookRequest(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claims := currentClaims(c)
	if err := h.services.Book.Delete(c.Request.Context(), id, claims.UserID, claims.Role); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

// DeviceRequest carries a new or updated device
type DeviceRequest struct {
	Kind   string `json:"kind" binding:"required"`
	Model  string `json:"model" binding:"required"`
	Serial string `json:"serial"`
	Note   string `json:"note"`
}

// DeviceAssignRequest names the user receiving a device
type DeviceAssignRequest struct {
	AssigneeID   int64  `json:"assignee_id" binding:"required"`
	AssigneeName string `json:"assignee_name"`
}

// CreateDevice handles POST /api/v1/devices
func (h *Handlers) CreateDevice(c *gin.Context) {
	var req DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "kind and model are required")
		return
	}

	device := &entity.Device{
		Kind:   req.Kind,
		Model:  req.Model,
		Serial: req.Serial,
		Note:   req.Note,
	}

	if err := h.services.Device.Create(c.Request.Context(), device); err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, device)
}

// ListDevices handles GET /api/v1/devices
func (h *Handlers) ListDevices(c *gin.Context) {
	limit, offset := pagination(c)

	items, err := h.services.Device.List(c.Request.Context(), c.Query("state"), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, items)
}

// GetDevice handles GET /api/v1/devices/:id
func (h *Handlers) GetDevice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	device, err := h.services.Device.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, device)
}

// UpdateDevice handles PUT /api/v1/devices/:id
func (h *Handlers) UpdateDevice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "kind and model are required")
		return
	}

	device, err := h.services.Device.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	device.Kind = req.Kind
	device.Model = req.Model
	device.Serial = req.Serial
	device.Note = req.Note

	if err := h.services.Device.Update(c.Request.Context(), device); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, device)
}

// AssignDevice handles PUT /api/v1/devices/:id/assign
func (h *Handlers) AssignDevice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req DeviceAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "assignee_id is required")
		return
	}

	if err := h.services.Device.Assign(c.Request.Context(), id, req.AssigneeID, req.AssigneeName); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"assigned": true})
}

// ReleaseDevice handles PUT /api/v1/devices/:id/release
func (h *Handlers) ReleaseDevice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.services.Device.Release(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"released": true})
}

// RetireDevice handles PUT /api/v1/devices/:id/retire
func (h *Handlers) RetireDevice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.services.Device.Retire(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"retired": true})
}

// DeleteDevice handles DELETE /api/v1/devices/:id
func (h *Handlers) DeleteDevice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.services.Device.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}
