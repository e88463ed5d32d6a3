package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// UserStatus represents account status
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// User represents a requester account. Bookings are owned by email, which is
// unique per account and carried in the access token.
type User struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	Email         string         `json:"email" db:"email"`
	PasswordHash  string         `json:"-" db:"password_hash"`
	Name          string         `json:"name" db:"name"`
	Phone         string         `json:"phone" db:"phone"`
	Address       string         `json:"address" db:"address"`
	DateOfBirth   string         `json:"dob" db:"date_of_birth"`
	AvatarURL     *string        `json:"avatar,omitempty" db:"avatar_url"`
	Roles         pq.StringArray `json:"roles" db:"roles"`
	Status        UserStatus     `json:"status" db:"status"`
	EmailVerified bool           `json:"email_verified" db:"email_verified"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// RegisterRequest is the signup payload
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest is the profile update payload
type UpdateProfileRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	Address     string  `json:"address"`
	DateOfBirth string  `json:"dob"`
	AvatarURL   *string `json:"avatar"`
}

// TokenPair is returned on successful login or refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
