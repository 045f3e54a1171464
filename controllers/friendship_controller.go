package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"agrinet-api/models"
)

type FriendshipController struct {
	db *gorm.DB
}

func NewFriendshipController(db *gorm.DB) *FriendshipController {
	return &FriendshipController{db: db}
}

// orderPair returns the two user IDs in lexical order so a pair always maps
// to the same row.
func orderPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

func (fc *FriendshipController) SendFriendRequest(c *gin.Context) {
	senderID := c.GetString("user_id")
	receiverID := c.Param("user_id")

	if senderID == receiverID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send friend request to yourself"})
		return
	}

	var receiver models.User
	if err := fc.db.First(&receiver, "id = ?", receiverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user1, user2 := orderPair(senderID, receiverID)

	var existing models.Friendship
	if err := fc.db.Where("user_id1 = ? AND user_id2 = ?", user1, user2).First(&existing).Error; err == nil {
		switch existing.Status {
		case models.FriendshipStatusAccepted:
			c.JSON(http.StatusConflict, gin.H{"error": "Already friends with this user"})
		case models.FriendshipStatusBlocked:
			c.JSON(http.StatusForbidden, gin.H{"error": "Action forbidden"})
		default:
			c.JSON(http.StatusConflict, gin.H{"error": "Friend request already exists"})
		}
		return
	}

	friendship := models.Friendship{
		UserID1:     user1,
		UserID2:     user2,
		RequesterID: senderID,
		Status:      models.FriendshipStatusPending,
	}

	if err := fc.db.Create(&friendship).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send friend request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request sent successfully"})
}

func (fc *FriendshipController) AcceptFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var friendship models.Friendship
	if err := fc.db.First(&friendship, "id = ? AND status = ?",
		uint(requestID), models.FriendshipStatusPending).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
		return
	}

	// Only the receiving side may accept
	if friendship.RequesterID == userID || (friendship.UserID1 != userID && friendship.UserID2 != userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Action forbidden"})
		return
	}

	if err := fc.db.Model(&friendship).Update("status", models.FriendshipStatusAccepted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept friend request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted successfully"})
}

func (fc *FriendshipController) RejectFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var friendship models.Friendship
	if err := fc.db.First(&friendship, "id = ? AND status = ?",
		uint(requestID), models.FriendshipStatusPending).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
		return
	}

	if friendship.RequesterID == userID || (friendship.UserID1 != userID && friendship.UserID2 != userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Action forbidden"})
		return
	}

	if err := fc.db.Delete(&friendship).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject friend request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request rejected successfully"})
}

// BlockUser blocks another user, replacing any existing friendship state.
func (fc *FriendshipController) BlockUser(c *gin.Context) {
	userID := c.GetString("user_id")
	targetID := c.Param("user_id")

	if userID == targetID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid operation"})
		return
	}

	var target models.User
	if err := fc.db.First(&target, "id = ?", targetID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user1, user2 := orderPair(userID, targetID)

	var friendship models.Friendship
	err := fc.db.Where("user_id1 = ? AND user_id2 = ?", user1, user2).First(&friendship).Error
	if err != nil {
		friendship = models.Friendship{
			UserID1:     user1,
			UserID2:     user2,
			RequesterID: userID,
			Status:      models.FriendshipStatusBlocked,
		}
		if err := fc.db.Create(&friendship).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to block user"})
			return
		}
	} else {
		if err := fc.db.Model(&friendship).Updates(map[string]interface{}{
			"status":       models.FriendshipStatusBlocked,
			"requester_id": userID,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to block user"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "User blocked successfully"})
}

func (fc *FriendshipController) RemoveFriend(c *gin.Context) {
	userID := c.GetString("user_id")
	friendID := c.Param("user_id")

	if userID == friendID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid operation"})
		return
	}

	user1, user2 := orderPair(userID, friendID)

	result := fc.db.Where("user_id1 = ? AND user_id2 = ? AND status = ?",
		user1, user2, models.FriendshipStatusAccepted).Delete(&models.Friendship{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove friend"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully"})
}

// GetFriends lists accepted friendships for the current user.
func (fc *FriendshipController) GetFriends(c *gin.Context) {
	userID := c.GetString("user_id")

	var friendships []models.Friendship
	if err := fc.db.Preload("User1").Preload("User2").
		Where("(user_id1 = ? OR user_id2 = ?) AND status = ?",
			userID, userID, models.FriendshipStatusAccepted).
		Find(&friendships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	friends := make([]models.User, 0, len(friendships))
	for _, friendship := range friendships {
		friend := friendship.User1
		if friend.ID == userID {
			friend = friendship.User2
		}
		friend.Password = ""
		friends = append(friends, friend)
	}

	c.JSON(http.StatusOK, friends)
}

// GetPendingRequests lists pending requests addressed to the current user.
func (fc *FriendshipController) GetPendingRequests(c *gin.Context) {
	userID := c.GetString("user_id")

	var friendships []models.Friendship
	if err := fc.db.Preload("User1").Preload("User2").
		Where("(user_id1 = ? OR user_id2 = ?) AND status = ? AND requester_id != ?",
			userID, userID, models.FriendshipStatusPending, userID).
		Find(&friendships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friend requests"})
		return
	}

	for i := range friendships {
		friendships[i].User1.Password = ""
		friendships[i].User2.Password = ""
	}

	c.JSON(http.StatusOK, friendships)
}
