package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"agrinet-api/models"
)

type MessageController struct {
	db *gorm.DB
}

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{db: db}
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Text       string `json:"text" binding:"required"`
}

func (mc *MessageController) SendMessage(c *gin.Context) {
	senderID := c.GetString("user_id")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var receiver models.User
	if err := mc.db.First(&receiver, "id = ?", req.ReceiverID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receiver not found"})
		return
	}

	message := models.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Text:       req.Text,
	}

	if err := mc.db.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending message"})
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetMessages returns the conversation between two users, both directions
// merged, oldest first.
func (mc *MessageController) GetMessages(c *gin.Context) {
	senderID := c.Param("senderId")
	receiverID := c.Param("receiverId")

	var messages []models.Message
	if err := mc.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		senderID, receiverID, receiverID, senderID,
	).Order("created_at ASC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error getting messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
