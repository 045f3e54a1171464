package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agrinet-api/models"
	"agrinet-api/utils"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
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
		// Generic v1/v2 resources
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
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// Uniqueness the toggle operations rely on: one reaction per user per
	// target, one follow edge per pair, one friendship per pair. Errors are
	// logged and ignored so re-runs against an already-constrained schema
	// stay idempotent.

	if err := db.Exec("ALTER TABLE reactions ADD CONSTRAINT uk_reactions_user_post UNIQUE (user_id, post_id)").Error; err != nil {
		utils.Logger.Warn(fmt.Sprintf("could not add unique constraint for reactions (post): %v", err))
	}

	if err := db.Exec("ALTER TABLE reactions ADD CONSTRAINT uk_reactions_user_comment UNIQUE (user_id, comment_id)").Error; err != nil {
		utils.Logger.Warn(fmt.Sprintf("could not add unique constraint for reactions (comment): %v", err))
	}

	if err := db.Exec("ALTER TABLE follows ADD CONSTRAINT uk_follows_follower_following UNIQUE (follower_id, following_id)").Error; err != nil {
		utils.Logger.Warn(fmt.Sprintf("could not add unique constraint for follows: %v", err))
	}

	if err := db.Exec("ALTER TABLE follows ADD CONSTRAINT ck_follows_no_self_follow CHECK (follower_id != following_id)").Error; err != nil {
		utils.Logger.Warn(fmt.Sprintf("could not add check constraint for follows: %v", err))
	}

	if err := db.Exec("ALTER TABLE friendships ADD CONSTRAINT uk_friendships_pair UNIQUE (user_id1, user_id2)").Error; err != nil {
		utils.Logger.Warn(fmt.Sprintf("could not add unique constraint for friendships: %v", err))
	}

	if err := db.Exec("ALTER TABLE community_members ADD CONSTRAINT uk_community_members_pair UNIQUE (community_id, user_id)").Error; err != nil {
		utils.Logger.Warn(fmt.Sprintf("could not add unique constraint for community_members: %v", err))
	}

	return nil
}

// SeedData populates the database with initial data for development.
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		return nil
	}

	testUsers := []models.User{
		{
			ID:         "user-1",
			Name:       "Juan Dela Cruz",
			Email:      "juan@example.com",
			Password:   "$2a$10$dummy", // replaced with a real hash on first login in dev flows
			Bio:        "Rice farmer, Nueva Ecija",
			Location:   "Nueva Ecija",
			IsVerified: true,
		},
		{
			ID:         "user-2",
			Name:       "Maria Santos",
			Email:      "maria@example.com",
			Password:   "$2a$10$dummy",
			Bio:        "Organic vegetable grower",
			Location:   "Benguet",
			IsVerified: true,
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			utils.Logger.Warn(fmt.Sprintf("could not create test user %s: %v", user.Email, err))
		}
	}

	testPosts := []models.Post{
		{
			ID:     "post-1",
			UserID: "user-1",
			Desc:   "First palay harvest of the season is in. Yield up 12% over last year.",
		},
		{
			ID:     "post-2",
			UserID: "user-2",
			Desc:   "Anyone dealt with armyworms on highland cabbage? Looking for non-chemical options.",
		},
	}

	for _, post := range testPosts {
		if err := db.Create(&post).Error; err != nil {
			utils.Logger.Warn(fmt.Sprintf("could not create test post %s: %v", post.ID, err))
		}
	}

	return nil
}
