package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garamsoft/groupware/internal/domain/entity"
)

// WorkHoursRequest carries worked minutes for one day
type WorkHoursRequest struct {
	WorkDate string `json:"work_date" binding:"required"` // YYYY-MM-DD
	Minutes  int    `json:"minutes"`
	Note     string `json:"note"`
}

// RecordWorkHours handles PUT /api/v1/workhours
func (h *Handlers) RecordWorkHours(c *gin.Context) {
	var req WorkHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "work_date is required")
		return
	}

	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		respondBadRequest(c, "work_date must be YYYY-MM-DD")
		return
	}

	claims := currentClaims(c)
	wh := &entity.WorkHours{
		UserID:   claims.UserID,
		WorkDate: workDate,
		Minutes:  req.Minutes,
		Note:     req.Note,
	}

	if err := h.services.WorkHours.Record(c.Request.Context(), wh, claims.UserID); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, wh)
}

// ListWorkHours handles GET /api/v1/workhours?from=&to=
func (h *Handlers) ListWorkHours(c *gin.Context) {
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

	claims := currentClaims(c)
	summary, err := h.services.WorkHours.ListForUser(c.Request.Context(), claims.UserID, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, summary)
}
