package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"agrinet-api/models"
)

type ReactionController struct {
	db *gorm.DB
}

func NewReactionController(db *gorm.DB) *ReactionController {
	return &ReactionController{db: db}
}

type ReactRequest struct {
	Type models.ReactionType `json:"type" binding:"required"`
}

// ReactToPost sets, replaces, or clears the caller's reaction on a post.
// Sending the currently-held type clears it; a different type replaces it.
func (rc *ReactionController) ReactToPost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidReactionType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reaction type"})
		return
	}

	var post models.Post
	if err := rc.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existing models.Reaction
	err := rc.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
	switch {
	case err == nil && existing.Type == req.Type:
		if err := rc.db.Delete(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reaction"})
			return
		}
		rc.db.Model(&post).UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1))
		c.JSON(http.StatusOK, gin.H{"message": "Reaction removed"})
		return
	case err == nil:
		if err := rc.db.Model(&existing).Update("type", req.Type).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reaction"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Reaction updated"})
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reaction"})
		return
	}

	reaction := models.Reaction{
		UserID: userID,
		PostID: &postID,
		Type:   req.Type,
	}

	if err := rc.db.Create(&reaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add reaction"})
		return
	}

	rc.db.Model(&post).UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1))

	c.JSON(http.StatusOK, gin.H{"message": "Reaction added"})
}

// ReactToComment is the comment-target version of ReactToPost.
func (rc *ReactionController) ReactToComment(c *gin.Context) {
	userID := c.GetString("user_id")
	commentID := c.Param("id")

	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidReactionType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reaction type"})
		return
	}

	var comment models.Comment
	if err := rc.db.First(&comment, "id = ? AND status = ?", commentID, models.CommentStatusActive).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	var existing models.Reaction
	err := rc.db.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error
	switch {
	case err == nil && existing.Type == req.Type:
		if err := rc.db.Delete(&existing).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reaction"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Reaction removed"})
		return
	case err == nil:
		if err := rc.db.Model(&existing).Update("type", req.Type).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reaction"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Reaction updated"})
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reaction"})
		return
	}

	reaction := models.Reaction{
		UserID:    userID,
		CommentID: &commentID,
		Type:      req.Type,
	}

	if err := rc.db.Create(&reaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add reaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reaction added"})
}

// GetPostReactions lists reactions on a post grouped with their users.
func (rc *ReactionController) GetPostReactions(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := rc.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var reactions []models.Reaction
	if err := rc.db.Preload("User").Where("post_id = ?", postID).
		Order("created_at ASC").Find(&reactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reactions"})
		return
	}

	for i := range reactions {
		reactions[i].User.Password = ""
	}

	c.JSON(http.StatusOK, reactions)
}
