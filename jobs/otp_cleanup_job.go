package jobs

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"agrinet-api/models"
	"agrinet-api/utils"
)

// OtpCleanupJob periodically removes expired verification codes so that
// stale rows cannot accumulate between resend cycles.
type OtpCleanupJob struct {
	db       *gorm.DB
	interval time.Duration
	done     chan struct{}
}

func NewOtpCleanupJob(db *gorm.DB, interval time.Duration) *OtpCleanupJob {
	return &OtpCleanupJob{
		db:       db,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (j *OtpCleanupJob) Start() {
	go func() {
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.CleanupExpired()
			case <-j.done:
				return
			}
		}
	}()
}

func (j *OtpCleanupJob) Stop() {
	close(j.done)
}

// CleanupExpired deletes every OTP row past its expiry. Exported so the
// job can be triggered directly outside the ticker loop.
func (j *OtpCleanupJob) CleanupExpired() {
	result := j.db.Where("expires_at < ?", time.Now()).Delete(&models.Otp{})
	if result.Error != nil {
		utils.Logger.Error("Failed to clean up expired OTPs", zap.Error(result.Error))
		return
	}
	if result.RowsAffected > 0 {
		utils.Logger.Info("Cleaned up expired OTPs", zap.Int64("count", result.RowsAffected))
	}
}
