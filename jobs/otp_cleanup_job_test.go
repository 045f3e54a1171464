package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agrinet-api/models"
)

func TestCleanupExpiredRemovesOnlyStaleRows(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Otp{}))

	require.NoError(t, db.Create(&models.Otp{
		Email:     "stale@example.com",
		Code:      "111111",
		ExpiresAt: time.Now().Add(-time.Minute),
	}).Error)
	require.NoError(t, db.Create(&models.Otp{
		Email:     "fresh@example.com",
		Code:      "222222",
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}).Error)

	job := NewOtpCleanupJob(db, time.Hour)
	job.CleanupExpired()

	var remaining []models.Otp
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "fresh@example.com", remaining[0].Email)
}
