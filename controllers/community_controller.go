package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"agrinet-api/models"
)

type CommunityController struct {
	db *gorm.DB
}

func NewCommunityController(db *gorm.DB) *CommunityController {
	return &CommunityController{db: db}
}

// JoinCommunity adds the authenticated user as a member. Communities that
// require join approval get a pending membership instead of an active one.
func (cc *CommunityController) JoinCommunity(c *gin.Context) {
	userID := c.GetString("user_id")

	communityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID"})
		return
	}

	var community models.Community
	if err := cc.db.First(&community, "id = ?", communityID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Community not found"})
		return
	}

	var existing models.CommunityMember
	err = cc.db.Where("community_id = ? AND user_id = ?", communityID, userID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already a member of this community"})
		return
	}

	status := "active"
	if community.JoinRequestApprovalRequired {
		status = "pending"
	}

	member := models.CommunityMember{
		CommunityID: uint(communityID),
		UserID:      userID,
		Role:        "member",
		Status:      status,
	}
	if err := cc.db.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join community"})
		return
	}

	if status == "active" {
		cc.db.Model(&community).UpdateColumn("members_count", gorm.Expr("members_count + ?", 1))
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Joined community",
		"member":  member,
	})
}

func (cc *CommunityController) LeaveCommunity(c *gin.Context) {
	userID := c.GetString("user_id")

	communityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID"})
		return
	}

	var member models.CommunityMember
	if err := cc.db.Where("community_id = ? AND user_id = ?", communityID, userID).First(&member).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not a member of this community"})
		return
	}

	wasActive := member.Status == "active"
	if err := cc.db.Delete(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave community"})
		return
	}

	if wasActive {
		cc.db.Model(&models.Community{}).
			Where("id = ? AND members_count > 0", communityID).
			UpdateColumn("members_count", gorm.Expr("members_count - ?", 1))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left community"})
}

func (cc *CommunityController) GetMembers(c *gin.Context) {
	communityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid community ID"})
		return
	}

	var members []models.CommunityMember
	if err := cc.db.Where("community_id = ? AND status = ?", communityID, "active").
		Order("created_at ASC").Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": members,
		"count":   len(members),
	})
}
