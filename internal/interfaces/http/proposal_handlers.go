package http

import (
	"context"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garamsoft/groupware/internal/application/port"
	"github.com/garamsoft/groupware/internal/application/service"
)

// CreateProposalRequest carries a new draft proposal
type CreateProposalRequest struct {
	Category   string  `json:"category" binding:"required"`
	Title      string  `json:"title" binding:"required"`
	Content    string  `json:"content"`
	Amount     float64 `json:"amount"`
	Lines      []struct {
		ApproverID   int64  `json:"approver_id" binding:"required"`
		ApproverName string `json:"approver_name"`
		OrderNo      int    `json:"order_no" binding:"required"`
	} `json:"lines" binding:"required"`
	References []struct {
		UserID   int64  `json:"user_id"`
		UserName string `json:"user_name"`
	} `json:"references"`
}

// DecisionRequest carries an optional comment on approve/reject
type DecisionRequest struct {
	Comment string `json:"comment"`
}

// CreateProposal handles POST /api/v1/proposals
func (h *Handlers) CreateProposal(c *gin.Context) {
	var req CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "category, title and lines are required")
		return
	}

	claims := currentClaims(c)
	input := service.CreateProposalInput{
		Category:   req.Category,
		Title:      req.Title,
		Content:    req.Content,
		Amount:     req.Amount,
		AuthorID:   claims.UserID,
		AuthorName: claims.Name,
		Team:       claims.Team,
	}
	for _, li := range req.Lines {
		input.Lines = append(input.Lines, service.LineInput{
			ApproverID:   li.ApproverID,
			ApproverName: li.ApproverName,
			OrderNo:      li.OrderNo,
		})
	}
	for _, ri := range req.References {
		input.References = append(input.References, service.RefInput{
			UserID:   ri.UserID,
			UserName: ri.UserName,
		})
	}

	proposal, err := h.services.Approval.CreateProposal(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, proposal)
}

// GetProposal handles GET /api/v1/proposals/:id
func (h *Handlers) GetProposal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.services.Approval.GetProposal(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, detail)
}

// ListProposals handles GET /api/v1/proposals
func (h *Handlers) ListProposals(c *gin.Context) {
	limit, offset := pagination(c)

	filter := port.ProposalFilter{
		State:  c.Query("state"),
		Team:   c.Query("team"),
		Limit:  limit,
		Offset: offset,
	}
	if authorID, err := strconv.ParseInt(c.Query("author_id"), 10, 64); err == nil {
		filter.AuthorID = authorID
	}

	proposals, err := h.services.Approval.ListProposals(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, proposals)
}

// GetProposalLines handles GET /api/v1/proposals/:id/lines
func (h *Handlers) GetProposalLines(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	lines, err := h.services.Approval.GetLines(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, lines)
}

// SubmitProposal handles POST /api/v1/proposals/:id/submit
func (h *Handlers) SubmitProposal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claims := currentClaims(c)
	if err := h.services.Approval.Submit(c.Request.Context(), id, claims.UserID); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"submitted": true})
}

// ApproveProposal handles POST /api/v1/proposals/:id/approve
func (h *Handlers) ApproveProposal(c *gin.Context) {
	h.decide(c, h.services.Approval.Approve)
}

// RejectProposal handles POST /api/v1/proposals/:id/reject
func (h *Handlers) RejectProposal(c *gin.Context) {
	h.decide(c, h.services.Approval.Reject)
}

func (h *Handlers) decide(c *gin.Context, fn func(ctx context.Context, proposalID, actorID int64, comment string) (*service.DecisionResult, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	// Comment body is optional on both approve and reject
	var req DecisionRequest
	_ = c.ShouldBindJSON(&req)

	claims := currentClaims(c)
	result, err := fn(c.Request.Context(), id, claims.UserID, req.Comment)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, result)
}

// DeleteDraft handles DELETE /api/v1/proposals/:id
func (h *Handlers) DeleteDraft(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claims := currentClaims(c)
	if err := h.services.Approval.DeleteDraft(c.Request.Context(), id, claims.UserID); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"deleted": true})
}

// AttachProposalFile handles POST /api/v1/proposals/:id/files
func (h *Handlers) AttachProposalFile(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "multipart file field is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		h.respondError(c, err)
		return
	}

	att, err := h.services.Approval.AttachFile(c.Request.Context(), id, fileHeader.Filename, content)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, att)
}
