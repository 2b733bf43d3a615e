package handlers

import (
	"net/http"

	"hostella/internal/domain"
	"hostella/internal/domain/models"
	"hostella/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/notifications
func (a API) ListNotifications(c *gin.Context) {
	page, limit := pageParams(c)
	list, total, err := a.notifications(c).ListForUser(middleware.UserID(c), page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if list == nil {
		list = []models.Notification{}
	}
	RespondList(c, list, domain.NewPagination(page, limit, total))
}

// POST /api/notifications/:id/read
func (a API) MarkNotificationRead(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := a.notifications(c).MarkRead(middleware.UserID(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"read": true}})
}
