package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

// ScheduleRequest carries a new or updated schedule entry
type ScheduleRequest struct {
	Kind      string `json:"kind" binding:"required"`
	Title     string `json:"title" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`   // YYYY-MM-DD
	Note      string `json:"note"`
}

func (r *ScheduleRequest) dates() (from, to time.Time, ok bool) {
	from, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// CreateSchedule handles POST /api/v1/schedules
func (h *Handlers) CreateSchedule(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "kind, title, start_date and end_date are required")
		return
	}

	from, to, ok := req.dates()
	if !ok {
		respondBadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	claims := currentClaims(c)
	schedule := &entity.Schedule{
		OwnerID:   claims.UserID,
		OwnerName: claims.Name,
		Kind:      req.Kind,
		Title:     req.Title,
		StartDate: from,
		EndDate:   to,
		Note:      req.Note,
	}

	if err := h.services.Schedule.Create(c.Request.Context(), schedule); err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, schedule)
}

// ListSchedules handles GET /api/v1/schedules?from=&to=&kind=
func (h *Handlers) ListSchedules(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		respondBadRequest(c, "from must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		respondBadRequest(c, "to must be YYYY-MM-DD")
		return
	}

	items, err := h.services.Schedule.ListRange(c.Request.Context(), from, to, c.Query("kind"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, items)
}

// GetSchedule handles GET /api/v1/schedules/:id
func (h *Handlers) GetSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	schedule, err := h.services.Schedule.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, schedule)
}

// UpdateSchedule handles PUT /api/v1/schedules/:id
func (h *Handlers) UpdateSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "kind, title, start_date and end_date are required")
		return
	}

	from, to, parsed := req.dates()
	if !parsed {
		respondBadRequest(c, "dates must be YYYY-MM-DD")
		return
	}

	claims := currentClaims(c)
	schedule := &entity.Schedule{
		ID:        id,
		Kind:      req.Kind,
		Title:     req.Title,
		StartDate: from,
		EndDate:   to,
		Note:      req.Note,
	}

	if err := h.services.Schedule.Update(c.Request.Context(), schedule, claims.UserID, claims.Role); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, schedule)
}

// DeleteSchedule handles DELETE /api/v1/schedules/:id
func (h *Handlers) DeleteSchedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claims := currentClaims(c)
	if err := h.services.Schedule.Delete(c.Request.Context(), id, claims.UserID, claims.Role); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}
