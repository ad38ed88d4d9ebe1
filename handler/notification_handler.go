package handler

import (
	"github.com/gin-gonic/gin"

	"mindwell/dto"
	"mindwell/middleware"
	"mindwell/usecase"
	"mindwell/utils"
)

func GetNotificationsHandler(c *gin.Context, notificationService *usecase.NotificationService) {
	notifications, err := notificationService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to fetch notifications")
		return
	}
	utils.Success(c, notifications)
}

func MarkNotificationReadHandler(c *gin.Context, notificationService *usecase.NotificationService) {
	if err := notificationService.MarkRead(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err, "Failed to update notification")
		return
	}
	utils.Message(c, "Notification marked as read")
}

func MarkAllNotificationsReadHandler(c *gin.Context, notificationService *usecase.NotificationService) {
	notifications, err := notificationService.MarkAllRead(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "Failed to update notifications")
		return
	}
	utils.Success(c, dto.NewNotificationsResponse(notifications))
}

func DeleteNotificationHandler(c *gin.Context, notificationService *usecase.NotificationService) {
	if err := notificationService.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete notification")
		return
	}
	utils.NoContent(c)
}
