package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrinet-api/models"
	"agrinet-api/services"
	"agrinet-api/utils"
)

type PostController struct {
	db                     *gorm.DB
	feedService            *services.FeedService
	notificationController *NotificationController
}

func NewPostController(db *gorm.DB, feedService *services.FeedService, notificationController *NotificationController) *PostController {
	return &PostController{
		db:                     db,
		feedService:            feedService,
		notificationController: notificationController,
	}
}

type CreatePostRequest struct {
	Desc  string `json:"desc"`
	Image string `json:"image"`
}

type SharePostRequest struct {
	SharedPostID string `json:"shared_post_id" binding:"required"`
	Desc         string `json:"desc"`
}

func (pc *PostController) GetPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	var total int64
	pc.db.Model(&models.Post{}).Count(&total)

	var posts []models.Post
	if err := pc.db.Preload("User").Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	for i := range posts {
		posts[i].User.Password = ""
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	c.JSON(http.StatusOK, gin.H{
		"posts":       posts,
		"page":        page,
		"limit":       limit,
		"total":       total,
		"has_more":    page < totalPages,
		"total_pages": totalPages,
	})
}

func (pc *PostController) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Desc == "" && req.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post must have text or an image"})
		return
	}

	post := models.Post{
		ID:     uuid.New().String(),
		UserID: userID,
		Desc:   req.Desc,
		Image:  req.Image,
	}

	if err := pc.db.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	pc.db.Preload("User").First(&post, "id = ?", post.ID)
	post.User.Password = ""

	c.JSON(http.StatusCreated, post)
}

func (pc *PostController) GetPost(c *gin.Context) {
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.Preload("User").First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	post.User.Password = ""

	c.JSON(http.StatusOK, post)
}

func (pc *PostController) UpdatePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Action forbidden"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"desc":  req.Desc,
		"image": req.Image,
	}

	if err := pc.db.Model(&post).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated successfully"})
}

func (pc *PostController) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Action forbidden"})
		return
	}

	// Clean up dependent rows first. Comment reactions only carry a
	// comment_id, so they go through a subquery before the comments do.
	commentIDs := pc.db.Model(&models.Comment{}).Select("id").Where("post_id = ?", postID)
	pc.db.Where("post_id = ? OR comment_id IN (?)", postID, commentIDs).Delete(&models.Reaction{})
	pc.db.Where("post_id = ?", postID).Delete(&models.Comment{})
	pc.db.Where("post_id = ?", postID).Delete(&models.Notification{})

	if err := pc.db.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// LikeDislikePost toggles the caller's like on a post: present removes it,
// absent adds it.
func (pc *PostController) LikeDislikePost(c *gin.Context) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var post models.Post
	if err := pc.db.First(&post, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existing models.Reaction
	err := pc.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
	if err == nil {
		if existing.Type == models.ReactionTypeLike {
			if err := pc.db.Delete(&existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike post"})
				return
			}
			pc.db.Model(&post).UpdateColumn("likes_count", gorm.Expr("likes_count - ?", 1))
			c.JSON(http.StatusOK, gin.H{"message": "Post unliked."})
			return
		}
		// Another reaction is held; the toggle converts it to a like. The
		// row already counts towards likes_count, so no counter change.
		if err := pc.db.Model(&existing).Update("type", models.ReactionTypeLike).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post liked."})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	reaction := models.Reaction{
		UserID: userID,
		PostID: &postID,
		Type:   models.ReactionTypeLike,
	}

	if err := pc.db.Create(&reaction).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	pc.db.Model(&post).UpdateColumn("likes_count", gorm.Expr("likes_count + ?", 1))

	if err := pc.notificationController.CreateLikeNotification(userID, post.UserID, postID); err != nil {
		utils.Logger.Warn("failed to create like notification", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post liked."})
}

// SharePost creates a reshare: a new post owned by the caller referencing
// the original. Reshares of reshares are flattened to the ultimate
// original.
func (pc *PostController) SharePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req SharePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	original, err := pc.feedService.ResolveOriginal(req.SharedPostID)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Original post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to share post"})
		return
	}

	originalID := original.ID
	reshare := models.Post{
		ID:           uuid.New().String(),
		UserID:       userID,
		Desc:         req.Desc,
		SharedPostID: &originalID,
	}

	if err := pc.db.Create(&reshare).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to share post"})
		return
	}

	pc.db.Model(&models.Post{}).Where("id = ?", originalID).
		UpdateColumn("shares_count", gorm.Expr("shares_count + ?", 1))

	if err := pc.notificationController.CreateShareNotification(userID, original.UserID, originalID); err != nil {
		utils.Logger.Warn("failed to create share notification", zap.Error(err))
	}

	pc.db.Preload("User").First(&reshare, "id = ?", reshare.ID)
	reshare.User.Password = ""

	c.JSON(http.StatusCreated, reshare)
}

// Timeline returns the feed for the user in the path.
func (pc *PostController) Timeline(c *gin.Context) {
	userID := c.Param("id")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	feed, err := pc.feedService.Timeline(userID, page, limit)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		utils.Logger.Error("failed to assemble timeline",
			zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch timeline posts"})
		return
	}

	for i := range feed.Posts {
		feed.Posts[i].User.Password = ""
	}

	c.JSON(http.StatusOK, feed)
}
