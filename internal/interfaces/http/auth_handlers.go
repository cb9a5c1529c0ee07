package http

import (
	"github.com/gin-gonic/gin"

	"github.com/garamsoft/groupware/internal/application/service"
)

// LoginRequest carries login credentials
type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token to rotate
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterUserRequest carries a new account
type RegisterUserRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Role     string `json:"role"`
}

// Login handles POST /api/v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "login_id and password are required")
		return
	}

	pair, err := h.services.Auth.Login(c.Request.Context(), req.LoginID, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, pair)
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *Handlers) RefreshToken(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "refresh_token is required")
		return
	}

	pair, err := h.services.Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, pair)
}

// Logout handles POST /api/v1/auth/logout
func (h *Handlers) Logout(c *gin.Context) {
	claims := currentClaims(c)

	if err := h.services.Auth.Logout(c.Request.Context(), claims.UserID); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"logged_out": true})
}

// CurrentUser handles GET /api/v1/users/me
func (h *Handlers) CurrentUser(c *gin.Context) {
	claims := currentClaims(c)

	user, err := h.services.Auth.GetUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, user)
}

// ListUsers handles GET /api/v1/users
func (h *Handlers) ListUsers(c *gin.Context) {
	limit, offset := pagination(c)

	users, err := h.services.Auth.ListUsers(c.Request.Context(), c.Query("team"), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, users)
}

// RegisterUser handles POST /api/v1/users
func (h *Handlers) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "login_id, password and name are required")
		return
	}

	user, err := h.services.Auth.Register(c.Request.Context(), service.RegisterUserInput{
		LoginID:  req.LoginID,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Team:     req.Team,
		Position: req.Position,
		Role:     req.Role,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondCreated(c, user)
}
