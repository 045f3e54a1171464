package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agrinet-api/models"
)

func setupAuditDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.AuditTrail{}))
	return db
}

func TestAuditTrailRecordsMutations(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAuditDB(t)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Next()
	})
	r.POST("/things", AuditTrail(db), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	payload := []byte(`{"name":"x"}`)
	req := httptest.NewRequest(http.MethodPost, "/things", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var entries []models.AuditTrail
	require.NoError(t, db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "u1", entries[0].UserID)
	assert.Equal(t, http.MethodPost, entries[0].EventType)
	assert.Equal(t, `{"name":"x"}`, entries[0].DataChanges)
	assert.Contains(t, entries[0].Description, "/things")
}

func TestAuditTrailSkipsAnonymousRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAuditDB(t)

	r := gin.New()
	r.POST("/things", AuditTrail(db), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/things", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var count int64
	db.Model(&models.AuditTrail{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAuditTrailPreservesRequestBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupAuditDB(t)

	var seen map[string]interface{}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Next()
	})
	r.POST("/things", AuditTrail(db), func(c *gin.Context) {
		require.NoError(t, c.ShouldBindJSON(&seen))
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/things", bytes.NewReader([]byte(`{"name":"x"}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "x", seen["name"])
}
