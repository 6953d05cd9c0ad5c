// internal/interfaces/http/handlers/notification.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-api/internal/notify"
)

// NotificationHandler exposes the recent notification feed
type NotificationHandler struct {
	center *notify.Center
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(center *notify.Center) *NotificationHandler {
	return &NotificationHandler{
		center: center,
	}
}

// ListNotifications handles GET /notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	notifications := h.center.Recent(limit)

	c.JSON(http.StatusOK, gin.H{
		"message": "Notifications retrieved successfully",
		"data": gin.H{
			"notifications": notifications,
			"total":         len(notifications),
		},
	})
}
