package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"agrinet-api/config"
	"agrinet-api/models"
	"agrinet-api/services"
	"agrinet-api/utils"
)

type AuthController struct {
	db     *gorm.DB
	config *config.Config
	mailer services.OTPMailer
}

func NewAuthController(db *gorm.DB, cfg *config.Config, mailer services.OTPMailer) *AuthController {
	return &AuthController{
		db:     db,
		config: cfg,
		mailer: mailer,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Message      string      `json:"message"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if user already exists
	var existingUser models.User
	if err := ac.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashedPassword),
		Location:   req.Location,
		Bio:        req.Bio,
		IsVerified: false,
	}

	if err := ac.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	code := services.GenerateOTP()
	if err := ac.storeOTP(req.Email, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store verification code"})
		return
	}

	if err := ac.mailer.SendOTP(user.Email, user.Name, code); err != nil {
		utils.Logger.Error("failed to send verification email",
			zap.String("email", user.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email"})
		return
	}

	user.Password = ""

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Please verify your email with the OTP sent to your inbox.",
		"user":    user,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Email not verified",
			"message": "Please verify your email before logging in.",
		})
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	user.Password = ""

	c.JSON(http.StatusOK, AuthResponse{
		Message:      "Login successful.",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	// Stateless JWT: logout is acknowledged, token disposal is client-side
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful."})
}

type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required"`
}

func (ac *AuthController) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already verified"})
		return
	}

	var otp models.Otp
	if err := ac.db.Where("email = ?", req.Email).First(&otp).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	if otp.Expired(time.Now()) {
		ac.db.Delete(&otp)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	if otp.Code != req.Otp {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	if err := ac.db.Model(&user).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}

	ac.db.Delete(&otp)

	accessToken, refreshToken, err := ac.issueTokens(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	user.Password = ""
	user.IsVerified = true

	c.JSON(http.StatusOK, AuthResponse{
		Message:      "OTP verified successfully. Login successful.",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}

type ResendOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (ac *AuthController) ResendOtp(c *gin.Context) {
	var req ResendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already verified"})
		return
	}

	code := services.GenerateOTP()
	if err := ac.storeOTP(req.Email, code); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store verification code"})
		return
	}

	if err := ac.mailer.SendOTP(user.Email, user.Name, code); err != nil {
		utils.Logger.Error("failed to resend verification email",
			zap.String("email", user.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP resent successfully"})
}

// storeOTP upserts the single pending code for an email.
func (ac *AuthController) storeOTP(email, code string) error {
	expiresAt := time.Now().Add(ac.config.OTPTTL)

	var existing models.Otp
	err := ac.db.Where("email = ?", email).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ac.db.Create(&models.Otp{
				Email:     email,
				Code:      code,
				ExpiresAt: expiresAt,
			}).Error
		}
		return err
	}

	return ac.db.Model(&existing).Updates(map[string]interface{}{
		"code":       code,
		"expires_at": expiresAt,
	}).Error
}

func (ac *AuthController) issueTokens(userID, email string) (string, string, error) {
	accessClaims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(ac.config.AccessTokenTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(ac.config.JWTSecret))
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"type":    "refresh",
		"exp":     time.Now().Add(ac.config.RefreshTokenTTL).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(ac.config.JWTSecret))
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
