package http

import (
	"github.com/gin-gonic/gin"
)

// ListNotifications handles GET /api/v1/notifications
func (h *Handlers) ListNotifications(c *gin.Context) {
	limit, offset := pagination(c)
	unreadOnly := c.Query("unread") == "true"

	claims := currentClaims(c)
	items, err := h.services.Notification.ListForRecipient(
		c.Request.Context(), claims.UserID, unreadOnly, limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, items)
}

// MarkNotificationRead handles PUT /api/v1/notifications/:id/read
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	claims := currentClaims(c)
	if err := h.services.Notification.MarkRead(c.Request.Context(), id, claims.UserID); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"read": true})
}

// MarkAllNotificationsRead handles PUT /api/v1/notifications/read-all
func (h *Handlers) MarkAllNotificationsRead(c *gin.Context) {
	claims := currentClaims(c)
	if err := h.services.Notification.MarkAllRead(c.Request.Context(), claims.UserID); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"read": true})
}

// ClearNotifications handles DELETE /api/v1/notifications
func (h *Handlers) ClearNotifications(c *gin.Context) {
	claims := currentClaims(c)
	if err := h.services.Notification.Clear(c.Request.Context(), claims.UserID); err != nil {
		h.respondError(c, err)
		return
	}

	respondOK(c, gin.H{"cleared": true})
}
