package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/trustnest/trustnest_backend/internal/apperrors"
	portssvc "github.com/trustnest/trustnest_backend/internal/core/ports/services"
	"github.com/trustnest/trustnest_backend/internal/dto"
	"github.com/trustnest/trustnest_backend/internal/middleware"
)

// notificationHandler handles HTTP requests for the notification feed.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

// registerNotificationRoutes registers notification feed routes.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := &notificationHandler{notificationService: notificationService}

	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.listNotifications)
		notifications.POST("/:id/read", h.markRead)
	}
}

// listNotifications godoc
// @Summary List my notifications
// @Description Lists the caller's notifications, newest first.
// @Tags notifications
// @Produce json
// @Param limit query int false "Page size (default 50, max 200)"
// @Success 200 {array} dto.NotificationResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	notifications, err := h.notificationService.ListForUser(c.Request.Context(), userID, limit)
	if err != nil {
		logger.Error("Failed to list notifications", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationResponses(notifications))
}

// markRead godoc
// @Summary Mark a notification read
// @Tags notifications
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications/{id}/read [post]
func (h *notificationHandler) markRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Notification not found"})
			return
		}
		logger.Error("Failed to mark notification read", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to mark notification read"})
		return
	}
	c.Status(http.StatusNoContent)
}
