package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/homeserve/booking-backend/internal/database"
	"github.com/homeserve/booking-backend/internal/middleware"
	"github.com/homeserve/booking-backend/internal/models"
	"github.com/homeserve/booking-backend/pkg/jwt"
)

// AuthHandler handles account registration, login and profile operations
type AuthHandler struct {
	users      *database.UserRepository
	jwtService *jwt.Service
	bcryptCost int
	tokenTTL   int64
	logger     *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(users *database.UserRepository, jwtService *jwt.Service, bcryptCost int, tokenTTL int64, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// Register creates a new account and issues an email verification token
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Passwords do not match",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		h.logger.WithError(err).Error("failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Could not create account"})
		return
	}

	verificationToken := uuid.New().String()

	user, err := h.users.CreateUser(email, string(hash), verificationToken)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "conflict",
				"message": "An account with this email already exists",
			})
			return
		}
		h.logger.WithError(err).Error("failed to create account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Could not create account"})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("account registered")

	// The verification token would normally be emailed. It is returned in the
	// response until an email delivery channel is wired up.
	c.JSON(http.StatusCreated, gin.H{
		"message":            "Account created. Please verify your email.",
		"user":               user,
		"verification_token": verificationToken,
	})
}

// VerifyEmail marks an account as verified using the emailed token
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Verification token is required"})
		return
	}

	if err := h.users.VerifyEmail(token); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "Verification token is invalid or already used",
			})
			return
		}
		h.logger.WithError(err).Error("failed to verify email")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Could not verify email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified. You can now log in."})
}

// Login authenticates an account and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_credentials",
				"message": "Invalid email or password",
			})
			return
		}
		h.logger.WithError(err).Error("failed to fetch account")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Could not log in"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_credentials",
			"message": "Invalid email or password",
		})
		return
	}

	if !user.EmailVerified {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "email_not_verified",
			"message": "Please verify your email before logging in",
		})
		return
	}

	if user.Status != models.UserStatusActive {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "account_disabled",
			"message": "This account has been disabled",
		})
		return
	}

	pair, err := h.issueTokens(user)
	if err != nil {
		h.logger.WithError(err).Error("failed to issue tokens")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Could not log in"})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("login successful")

	c.JSON(http.StatusOK, gin.H{"user": user, "tokens": pair})
}

// RefreshToken exchanges a refresh token for a new token pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_token",
			"message": "Refresh token is invalid or expired",
		})
		return
	}

	user, err := h.users.GetUserByID(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_token",
			"message": "Account no longer exists",
		})
		return
	}

	if user.Status != models.UserStatusActive {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "account_disabled",
			"message": "This account has been disabled",
		})
		return
	}

	pair, err := h.issueTokens(user)
	if err != nil {
		h.logger.WithError(err).Error("failed to issue tokens")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Could not refresh tokens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": pair})
}

// GetProfile returns the authenticated account
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.users.GetUserByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Account not found"})
			return
		}
		h.logger.WithError(err).Error("failed to fetch profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Could not fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates the authenticated account's profile fields
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	if err := h.users.UpdateProfile(userCtx.UserID, &req); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "Account not found"})
			return
		}
		h.logger.WithError(err).Error("failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": "Could not update profile"})
		return
	}

	user, err := h.users.GetUserByID(userCtx.UserID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "user": user})
}

func (h *AuthHandler) issueTokens(user *models.User) (*models.TokenPair, error) {
	accessToken, err := h.jwtService.GenerateAccessToken(user.ID, user.Email, user.Roles)
	if err != nil {
		return nil, err
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    h.tokenTTL,
	}, nil
}
