package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/domain/entity"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExpenseRequest carries a new or updated expense
type ExpenseRequest struct {
	Kind        string  `json:"kind"`
	ProjectName string  `json:"project_name"`
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" binding:"required"`
	SpentAt     string  `json:"spent_at" binding:"required"` // YYYY-MM-DD
}

func (r *ExpenseRequest) toEntity(claims claimsView) (*entity.Expense, bool) {
	spentAt, err := time.Parse("2006-01-02", r.SpentAt)
	if err != nil {
		return nil, false
	}
	return &entity.Expense{
		Kind:        r.Kind,
		ProjectName: r.ProjectName,
		Category:    r.Category,
		Description: r.Description,
		Amount:      r.Amount,
		AuthorID:    claims.UserID,
		AuthorName:  claims.Name,
		Team:        claims.Team,
		SpentAt:     spentAt,
	}, true
}

type claimsView struct {
	UserID int64
	Name   string
	Team   string
}

func expenseFilterFromQuery(c *gin.Context) port.ExpenseFilter {
	limit, offset := pagination(c)
	filter := port.ExpenseFilter{
		Kind:   c.Query("kind"),
		Team:   c.Query("team"),
		Month:  c.Query("month"),
		Limit:  limit,
		Offset: offset,
	}
	if authorID, err := strconv.ParseInt(c.Query("author_id"), 10, 64); err == nil {
		filter.AuthorID = authorID
	}
	return filter
}

// CreateExpense handles POST /api/v1/expenses
func (h *Handlers) CreateExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "category, amount and spent_at are required")
		return
	}

	claims := currentClaims(c)
	expense, ok := req.toEntity(claimsView{UserID: claims.UserID, Name: claims.Name, Team: claims.Team})
	if !ok {
		respondBadRequest(c, "spent_at must be YYYY-MM-DD")
		return
	}

	if err := h.services.Expense.Create(c.Request.Context(), expense); err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, expense)
}

// ListExpenses handles GET /api/v1/expenses
func (h *Handlers) ListExpenses(c *gin.Context) {
	summary, err := h.services.Expense.List(c.Request.Context(), expenseFilterFromQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, summary)
}

// GetExpense handles GET /api/v1/expenses/:id
func (h *Handlers) GetExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	expense, err := h.services.Expense.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, expense)
}

// UpdateExpense handles PUT /api/v1/expenses/:id
func (h *Handlers) UpdateExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "category, amount and spent_at are required")
		return
	}

	claims := currentClaims(c)
	expense, parsed := req.toEntity(claimsView{UserID: claims.UserID, Name: claims.Name, Team: claims.Team})
	if !parsed {
		respondBadRequest(c, "spent_at must be YYYY-MM-DD")
		return
	}
	expense.ID = id

	if err := h.services.Expense.Update(c.Request.Context(), expense, claims.UserID, claims.Role); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, expense)
}

// DeleteExpense handles DELETE /api/v1/expenses/:id
func (h *Handlers) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claims := currentClaims(c)
	if err := h.services.Expense.Delete(c.Request.Context(), id, claims.UserID, claims.Role); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

// ExportExpenses handles GET /api/v1/expenses/export
func (h *Handlers) ExportExpenses(c *gin.Context) {
	filter := expenseFilterFromQuery(c)
	// SQLite reads a negative LIMIT as unbounded
	filter.Limit = -1
	filter.Offset = 0

	data, name, err := h.services.Expense.Export(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(200, xlsxContentType, data)
}
