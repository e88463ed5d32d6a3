package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homeserve/booking-backend/internal/models"
)

// UserRepository handles account database operations
type UserRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, password_hash, name, phone, address,
	       date_of_birth, avatar_url, roles, status, email_verified,
	       created_at, updated_at`

// CreateUser creates a new account with a hashed password and an unverified
// email. The verification token is stored alongside the account.
func (r *UserRepository) CreateUser(email, passwordHash, verificationToken string) (*models.User, error) {
	user := &models.User{}
	query := `
		INSERT INTO users (id, email, password_hash, verification_token, roles, status, email_verified)
		VALUES ($1, $2, $3, $4, '{customer}', 'active', false)
		RETURNING ` + userColumns

	err := r.db.QueryRow(query, uuid.New(), email, passwordHash, verificationToken).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Phone, &user.Address,
		&user.DateOfBirth, &user.AvatarURL, &user.Roles, &user.Status, &user.EmailVerified,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("account %s already exists: %w", email, models.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	err := r.db.Get(user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return user, nil
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := r.db.Get(user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return user, nil
}

// VerifyEmail marks the account matching the verification token as verified
func (r *UserRepository) VerifyEmail(token string) error {
	query := `
		UPDATE users
		SET email_verified = true, verification_token = NULL, updated_at = $1
		WHERE verification_token = $2 AND email_verified = false`

	result, err := r.db.Exec(query, time.Now(), token)
	if err != nil {
		return fmt.Errorf("failed to verify email: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check email verification: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("verification token not found: %w", models.ErrNotFound)
	}

	return nil
}

// UpdateProfile updates the mutable profile fields of an account
func (r *UserRepository) UpdateProfile(id uuid.UUID, req *models.UpdateProfileRequest) error {
	query := `
		UPDATE users
		SET name = $1, phone = $2, address = $3, date_of_birth = $4,
		    avatar_url = COALESCE($5, avatar_url), updated_at = $6
		WHERE id = $7`

	result, err := r.db.Exec(query, req.Name, req.Phone, req.Address, req.DateOfBirth,
		req.AvatarURL, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check profile update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found: %w", models.ErrNotFound)
	}

	return nil
}
