package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"agrinet-api/models"
)

type NotificationController struct {
	db *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{db: db}
}

// GetNotifications gets paginated notifications for the current user
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	notificationType := c.Query("type")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	offset := (page - 1) * limit

	query := nc.db.Where("target_user_id = ?", userID)
	if notificationType != "" {
		query = query.Where("type = ?", notificationType)
	}

	var total int64
	query.Model(&models.Notification{}).Count(&total)

	var notifications []models.Notification
	if err := query.Preload("ActorUser").
		Preload("Post").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	for i := range notifications {
		notifications[i].ActorUser.Password = ""
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	c.JSON(http.StatusOK, models.PaginatedNotifications{
		Notifications: notifications,
		Page:          page,
		Limit:         limit,
		Total:         total,
		HasMore:       page < totalPages,
		TotalPages:    totalPages,
	})
}

// GetNotificationStats gets unread/total counts for the current user
func (nc *NotificationController) GetNotificationStats(c *gin.Context) {
	userID := c.GetString("user_id")

	var unreadCount int64
	var totalCount int64

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ?", userID, false).
		Count(&unreadCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification stats"})
		return
	}

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ?", userID).
		Count(&totalCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification stats"})
		return
	}

	c.JSON(http.StatusOK, models.NotificationStats{
		UnreadCount: int(unreadCount),
		TotalCount:  int(totalCount),
	})
}

// MarkAsRead marks a single notification as read
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	var notification models.Notification
	if err := nc.db.First(&notification, "id = ? AND target_user_id = ?", notificationID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	if err := nc.db.Model(&notification).Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllAsRead marks every notification for the current user as read
func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := nc.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// create persists a notification unless the actor is acting on their own
// content.
func (nc *NotificationController) create(notifType models.NotificationType, actorID, targetID string, postID *string) error {
	if actorID == targetID {
		return nil
	}

	notification := models.Notification{
		ID:           uuid.New().String(),
		Type:         notifType,
		ActorUserID:  actorID,
		TargetUserID: targetID,
		PostID:       postID,
	}

	return nc.db.Create(&notification).Error
}

func (nc *NotificationController) CreateFollowNotification(actorID, targetID string) error {
	return nc.create(models.NotificationTypeFollow, actorID, targetID, nil)
}

func (nc *NotificationController) CreateLikeNotification(actorID, targetID, postID string) error {
	return nc.create(models.NotificationTypeLike, actorID, targetID, &postID)
}

func (nc *NotificationController) CreateCommentNotification(actorID, targetID, postID string) error {
	return nc.create(models.NotificationTypeComment, actorID, targetID, &postID)
}

func (nc *NotificationController) CreateShareNotification(actorID, targetID, postID string) error {
	return nc.create(models.NotificationTypeShare, actorID, targetID, &postID)
}
