package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrinet-api/models"
	"agrinet-api/utils"
)

type CommentController struct {
	db                     *gorm.DB
	notificationController *NotificationController
}

func NewCommentController(db *gorm.DB, notificationController *NotificationController) *CommentController {
	return &CommentController{
		db:                     db,
		notificationController: notificationController,
	}
}

type CreateCommentRequest struct {
	Text            string  `json:"text" binding:"required"`
	ParentCommentID *string `json:"parent_comment_id"`
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Orphaned comments are rejected: the parent post must exist.
	var post models.Post
	if err := cc.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if req.ParentCommentID != nil {
		var parent models.Comment
		if err := cc.db.First(&parent, "id = ? AND post_id = ? AND status = ?",
			*req.ParentCommentID, postID, models.CommentStatusActive).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent comment not found"})
			return
		}
	}

	var author models.User
	if err := cc.db.First(&author, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	comment := models.Comment{
		ID:              uuid.New().String(),
		PostID:          postID,
		UserID:          userID,
		Name:            author.Name,
		Text:            req.Text,
		Status:          models.CommentStatusActive,
		ParentCommentID: req.ParentCommentID,
	}

	if err := cc.db.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	cc.db.Model(&post).UpdateColumn("comments_count", gorm.Expr("comments_count + ?", 1))

	if err := cc.notificationController.CreateCommentNotification(userID, post.UserID, postID); err != nil {
		utils.Logger.Warn("failed to create comment notification", zap.Error(err))
	}

	c.JSON(http.StatusCreated, comment)
}

func (cc *CommentController) GetComments(c *gin.Context) {
	postID := c.Param("id")

	var comments []models.Comment
	if err := cc.db.Where("post_id = ? AND status = ?", postID, models.CommentStatusActive).
		Order("created_at ASC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}

// DeleteComment soft-deletes the caller's own comment.
func (cc *CommentController) DeleteComment(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")
	commentID := c.Param("commentId")

	var comment models.Comment
	if err := cc.db.First(&comment, "id = ? AND post_id = ?", commentID, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Action forbidden"})
		return
	}

	if err := cc.db.Model(&comment).Update("status", models.CommentStatusDeleted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	cc.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("comments_count", gorm.Expr("comments_count - ?", 1))

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
