package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"agrinet-api/config"
	"agrinet-api/controllers"
	"agrinet-api/middleware"
	"agrinet-api/models"
	"agrinet-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, mailer services.OTPMailer) {
	// Controllers
	feedService := services.NewFeedService(db)
	notificationController := controllers.NewNotificationController(db)

	authController := controllers.NewAuthController(db, cfg, mailer)
	userController := controllers.NewUserController(db, notificationController)
	postController := controllers.NewPostController(db, feedService, notificationController)
	commentController := controllers.NewCommentController(db, notificationController)
	reactionController := controllers.NewReactionController(db)
	friendshipController := controllers.NewFriendshipController(db)
	messageController := controllers.NewMessageController(db)
	communityController := controllers.NewCommunityController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Auth routes (public)
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimit(30, 10))
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.POST("/verify-otp", authController.VerifyOtp)
		auth.POST("/resend-otp", authController.ResendOtp)
	}

	// Protected routes
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		users := api.Group("/users")
		{
			users.GET("/profile", userController.GetProfile)
			users.PUT("/profile", userController.UpdateProfile)
			users.PUT("/change-password", userController.ChangePassword)
			users.GET("/search", userController.SearchUsers)
			users.GET("/followers", userController.GetFollowers)
			users.GET("/following", userController.GetFollowing)
			users.GET("/:id", userController.GetUser)
			users.DELETE("/:id", userController.DeleteUser)
			users.PUT("/:id/follow", userController.FollowUser)
			users.PUT("/:id/unfollow", userController.UnfollowUser)
		}

		// Post routes
		posts := api.Group("/posts")
		{
			posts.GET("/", postController.GetPosts)
			posts.POST("/", postController.CreatePost)
			posts.POST("/share", postController.SharePost)
			posts.GET("/:id", postController.GetPost)
			posts.PUT("/:id", postController.UpdatePost)
			posts.DELETE("/:id", postController.DeletePost)
			posts.PUT("/:id/like_dislike", postController.LikeDislikePost)
			posts.PUT("/:id/react", reactionController.ReactToPost)
			posts.GET("/:id/reactions", reactionController.GetPostReactions)
			posts.GET("/:id/timeline", postController.Timeline)
			posts.POST("/:id/comments", commentController.CreateComment)
			posts.GET("/:id/comments", commentController.GetComments)
			posts.DELETE("/:id/comments/:commentId", commentController.DeleteComment)
		}

		// Comment routes
		comments := api.Group("/comments")
		{
			comments.PUT("/:id/react", reactionController.ReactToComment)
		}

		// Friendship routes
		friendships := api.Group("/friendships")
		{
			friendships.POST("/request/:user_id", friendshipController.SendFriendRequest)
			friendships.PUT("/:id/accept", friendshipController.AcceptFriendRequest)
			friendships.PUT("/:id/reject", friendshipController.RejectFriendRequest)
			friendships.POST("/block/:user_id", friendshipController.BlockUser)
			friendships.DELETE("/remove/:user_id", friendshipController.RemoveFriend)
			friendships.GET("/friends", friendshipController.GetFriends)
			friendships.GET("/pending", friendshipController.GetPendingRequests)
		}

		// Message routes
		messages := api.Group("/messages")
		{
			messages.POST("/", messageController.SendMessage)
			messages.GET("/:senderId/:receiverId", messageController.GetMessages)
		}

		// Notification routes
		notifications := api.Group("/notifications")
		{
			notifications.GET("/", notificationController.GetNotifications)
			notifications.GET("/stats", notificationController.GetNotificationStats)
			notifications.PUT("/:id/read", notificationController.MarkAsRead)
			notifications.PUT("/read-all", notificationController.MarkAllAsRead)
		}

		// Community membership routes
		communities := api.Group("/communities")
		{
			communities.POST("/:id/join", communityController.JoinCommunity)
			communities.DELETE("/:id/leave", communityController.LeaveCommunity)
			communities.GET("/:id/members", communityController.GetMembers)
		}
	}

	registerResourceRoutes(r, db, cfg)
}

// registerResourceRoutes exposes the uniform resource types on two API
// versions: v1 persists payloads as-is, v2 validates them and records an
// audit trail entry for every mutation.
func registerResourceRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	validate := validator.New()

	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	v2 := r.Group("/api/v2")
	v2.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	audit := middleware.AuditTrail(db)

	registerResource[models.Community](v1, v2, db, validate, audit, "communities")
	registerResource[models.CommunityMember](v1, v2, db, validate, audit, "community-members")
	registerResource[models.CommunityPost](v1, v2, db, validate, audit, "community-posts")
	registerResource[models.CommunityEvent](v1, v2, db, validate, audit, "community-events")
	registerResource[models.EventAttendee](v1, v2, db, validate, audit, "event-attendees")
	registerResource[models.PostReport](v1, v2, db, validate, audit, "post-reports")
	registerResource[models.CommentReport](v1, v2, db, validate, audit, "comment-reports")
	registerResource[models.CommunityReport](v1, v2, db, validate, audit, "community-reports")
	registerResource[models.PostTag](v1, v2, db, validate, audit, "post-tags")
	registerResource[models.UserSettings](v1, v2, db, validate, audit, "user-settings")
	registerResource[models.BlockedUser](v1, v2, db, validate, audit, "blocked-users")
	registerResource[models.Farmer](v1, v2, db, validate, audit, "farmers")
	registerResource[models.Share](v1, v2, db, validate, audit, "shares")
}

func registerResource[T any](v1, v2 *gin.RouterGroup, db *gorm.DB, validate *validator.Validate, audit gin.HandlerFunc, path string) {
	plain := controllers.NewResourceController[T](db, nil)
	validated := controllers.NewResourceController[T](db, validate)

	g1 := v1.Group("/" + path)
	{
		g1.POST("/", plain.Create)
		g1.GET("/", plain.List)
		g1.GET("/:id", plain.GetByID)
		g1.PUT("/:id", plain.Update)
		g1.DELETE("/:id", plain.Delete)
	}

	g2 := v2.Group("/" + path)
	{
		g2.POST("/", audit, validated.Create)
		g2.GET("/", validated.List)
		g2.GET("/:id", validated.GetByID)
		g2.PUT("/:id", audit, validated.Update)
		g2.DELETE("/:id", audit, validated.Delete)
	}
}
