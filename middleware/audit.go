package middleware

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrinet-api/models"
	"agrinet-api/utils"
)

// AuditTrail records mutating requests on the validated API surface after
// the response is written. Best-effort: a failed audit write is logged and
// never fails the request.
func AuditTrail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil && c.Request.Method != http.MethodGet {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		c.Next()

		userID := c.GetString("user_id")
		if userID == "" {
			return
		}

		path := c.Request.URL.Path
		var description string
		switch c.Request.Method {
		case http.MethodPost:
			description = fmt.Sprintf("User %s created a record at %s", userID, path)
		case http.MethodPut:
			description = fmt.Sprintf("User %s updated a record at %s", userID, path)
		case http.MethodDelete:
			description = fmt.Sprintf("User %s deleted a record at %s", userID, path)
		default:
			description = fmt.Sprintf("User %s accessed %s", userID, path)
		}

		entry := models.AuditTrail{
			UserID:      userID,
			EventType:   c.Request.Method,
			Description: description,
			DataChanges: string(body),
			CreatedAt:   time.Now(),
		}

		if err := db.Create(&entry).Error; err != nil {
			utils.Logger.Warn("failed to write audit trail",
				zap.String("user_id", userID),
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}
}
