package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agrinet-api/config"
	"agrinet-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive for the
	// whole test.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Friendship{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Message{},
		&models.Otp{},
		&models.Notification{},
		&models.AuditTrail{},
		&models.Community{},
		&models.CommunityMember{},
		&models.CommunityPost{},
		&models.CommunityEvent{},
		&models.EventAttendee{},
		&models.PostReport{},
		&models.CommentReport{},
		&models.CommunityReport{},
		&models.PostTag{},
		&models.UserSettings{},
		&models.BlockedUser{},
		&models.Farmer{},
		&models.Share{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Port:            "8080",
		JWTSecret:       "test-secret",
		AccessTokenTTL:  10 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		OTPTTL:          5 * time.Minute,
	}
}

// asUser injects the authenticated identity the way the auth middleware
// does, so handlers can be exercised without minting tokens.
func asUser(userID, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("email", email)
		c.Next()
	}
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createTestUser(t *testing.T, db *gorm.DB, id, name, email string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:         id,
		Name:       name,
		Email:      email,
		Password:   string(hashed),
		IsVerified: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, id, userID, desc string) models.Post {
	t.Helper()

	post := models.Post{
		ID:     id,
		UserID: userID,
		Desc:   desc,
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}

// stubMailer records sent codes instead of dialing SMTP.
type stubMailer struct {
	codes map[string]string
}

func newStubMailer() *stubMailer {
	return &stubMailer{codes: make(map[string]string)}
}

func (m *stubMailer) SendOTP(email, name, code string) error {
	m.codes[email] = code
	return nil
}
