package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agrinet-api/models"
	"agrinet-api/utils"
)

type UserController struct {
	db                     *gorm.DB
	notificationController *NotificationController
}

func NewUserController(db *gorm.DB, notificationController *NotificationController) *UserController {
	return &UserController{
		db:                     db,
		notificationController: notificationController,
	}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	user.Password = ""

	c.JSON(http.StatusOK, user)
}

type UpdateProfileRequest struct {
	Name           string  `json:"name"`
	Bio            string  `json:"bio"`
	Location       string  `json:"location"`
	ProfilePicture *string `json:"profile_picture"`
	CoverPicture   *string `json:"cover_picture"`
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if req.ProfilePicture != nil {
		updates["profile_picture"] = req.ProfilePicture
	}
	if req.CoverPicture != nil {
		updates["cover_picture"] = req.CoverPicture
	}

	if len(updates) > 0 {
		if err := uc.db.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	uc.db.First(&user, "id = ?", userID)
	user.Password = ""

	c.JSON(http.StatusOK, user)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (uc *UserController) ChangePassword(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !utils.IsValidPassword(req.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password is too weak"})
		return
	}

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := uc.db.Model(&user).Update("password", string(hashed)).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (uc *UserController) GetUser(c *gin.Context) {
	targetID := c.Param("id")

	var user models.User
	if err := uc.db.First(&user, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	user.Password = ""

	c.JSON(http.StatusOK, user)
}

// SearchUsers finds users by name or email fragment.
func (uc *UserController) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	var users []models.User
	if err := uc.db.Where("name LIKE ? OR email LIKE ?", "%"+query+"%", "%"+query+"%").
		Limit(20).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users"})
		return
	}

	for i := range users {
		users[i].Password = ""
	}

	c.JSON(http.StatusOK, users)
}

// DeleteUser is administrative; a user may only remove their own account.
func (uc *UserController) DeleteUser(c *gin.Context) {
	userID := c.GetString("user_id")
	targetID := c.Param("id")

	if userID != targetID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Action forbidden"})
		return
	}

	result := uc.db.Delete(&models.User{}, "id = ?", targetID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (uc *UserController) FollowUser(c *gin.Context) {
	userID := c.GetString("user_id")
	targetUserID := c.Param("id")

	if userID == targetUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	var target models.User
	if err := uc.db.First(&target, "id = ?", targetUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var existingFollow models.Follow
	if err := uc.db.Where("follower_id = ? AND following_id = ?", userID, targetUserID).First(&existingFollow).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already following this user"})
		return
	}

	follow := models.Follow{
		FollowerID:  userID,
		FollowingID: targetUserID,
	}

	if err := uc.db.Create(&follow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	uc.db.Model(&models.User{}).Where("id = ?", userID).UpdateColumn("following_count", gorm.Expr("following_count + ?", 1))
	uc.db.Model(&models.User{}).Where("id = ?", targetUserID).UpdateColumn("followers_count", gorm.Expr("followers_count + ?", 1))

	if err := uc.notificationController.CreateFollowNotification(userID, targetUserID); err != nil {
		utils.Logger.Warn("failed to create follow notification", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully followed user"})
}

func (uc *UserController) UnfollowUser(c *gin.Context) {
	userID := c.GetString("user_id")
	targetUserID := c.Param("id")

	result := uc.db.Where("follower_id = ? AND following_id = ?", userID, targetUserID).Delete(&models.Follow{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Follow relationship not found"})
		return
	}

	uc.db.Model(&models.User{}).Where("id = ?", userID).UpdateColumn("following_count", gorm.Expr("following_count - ?", 1))
	uc.db.Model(&models.User{}).Where("id = ?", targetUserID).UpdateColumn("followers_count", gorm.Expr("followers_count - ?", 1))

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unfollowed user"})
}

func (uc *UserController) GetFollowers(c *gin.Context) {
	userID := c.GetString("user_id")

	var follows []models.Follow
	if err := uc.db.Preload("Follower").Where("following_id = ?", userID).Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch followers"})
		return
	}

	followers := make([]models.User, 0, len(follows))
	for _, follow := range follows {
		follow.Follower.Password = ""
		followers = append(followers, follow.Follower)
	}

	c.JSON(http.StatusOK, followers)
}

func (uc *UserController) GetFollowing(c *gin.Context) {
	userID := c.GetString("user_id")

	var follows []models.Follow
	if err := uc.db.Preload("Following").Where("follower_id = ?", userID).Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch following"})
		return
	}

	following := make([]models.User, 0, len(follows))
	for _, follow := range follows {
		follow.Following.Password = ""
		following = append(following, follow.Following)
	}

	c.JSON(http.StatusOK, following)
}
