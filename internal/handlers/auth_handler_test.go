package handlers

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/homeserve/booking-backend/internal/database"
	"github.com/homeserve/booking-backend/pkg/jwt"
)

var pqUniqueViolation = pq.Error{Code: "23505"}

var authUserRows = []string{
	"id", "email", "password_hash", "name", "phone", "address",
	"date_of_birth", "avatar_url", "roles", "status", "email_verified",
	"created_at", "updated_at",
}

// setupAuthHandler wires an AuthHandler over a sqlmock-backed repository
func setupAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := &database.PostgresDB{DB: sqlx.NewDb(mockDB, "sqlmock")}
	repo := database.NewUserRepository(db)
	jwtService := jwt.NewService("test-secret", "test-refresh-secret", time.Hour, 24*time.Hour)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return NewAuthHandler(repo, jwtService, bcrypt.MinCost, 3600, logger), mock
}

func newJSONContext(t *testing.T, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	jsonRequest(t, c, http.MethodPost, body)
	return c, w
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mock := setupAuthHandler(t)
		now := time.Now()

		mock.ExpectQuery(`(?s)INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "alice@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(authUserRows).AddRow(
				uuid.New(), "alice@example.com", "hash", "", "", "",
				"", nil, []byte(`{customer}`), "active", false,
				now, now,
			))

		c, w := newJSONContext(t, gin.H{
			"email":            "Alice@Example.com",
			"password":         "supersecret",
			"confirm_password": "supersecret",
		})

		handler.Register(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "verification_token")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Password Mismatch", func(t *testing.T) {
		handler, _ := setupAuthHandler(t)

		c, w := newJSONContext(t, gin.H{
			"email":            "alice@example.com",
			"password":         "supersecret",
			"confirm_password": "different",
		})

		handler.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Short Password", func(t *testing.T) {
		handler, _ := setupAuthHandler(t)

		c, w := newJSONContext(t, gin.H{
			"email":            "alice@example.com",
			"password":         "short",
			"confirm_password": "short",
		})

		handler.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		handler, mock := setupAuthHandler(t)

		mock.ExpectQuery(`(?s)INSERT INTO users`).
			WillReturnError(&pqUniqueViolation)

		c, w := newJSONContext(t, gin.H{
			"email":            "alice@example.com",
			"password":         "supersecret",
			"confirm_password": "supersecret",
		})

		handler.Register(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, err)

	userRow := func(verified bool) *sqlmock.Rows {
		now := time.Now()
		return sqlmock.NewRows(authUserRows).AddRow(
			uuid.New(), "alice@example.com", string(hash), "Alice", "", "",
			"", nil, []byte(`{customer}`), "active", verified,
			now, now,
		)
	}

	t.Run("Success", func(t *testing.T) {
		handler, mock := setupAuthHandler(t)

		mock.ExpectQuery(`(?s)SELECT (.+) FROM users WHERE email`).
			WithArgs("alice@example.com").
			WillReturnRows(userRow(true))

		c, w := newJSONContext(t, gin.H{
			"email":    "alice@example.com",
			"password": "supersecret",
		})

		handler.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "access_token")
		assert.Contains(t, w.Body.String(), "refresh_token")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Wrong Password", func(t *testing.T) {
		handler, mock := setupAuthHandler(t)

		mock.ExpectQuery(`(?s)SELECT (.+) FROM users WHERE email`).
			WithArgs("alice@example.com").
			WillReturnRows(userRow(true))

		c, w := newJSONContext(t, gin.H{
			"email":    "alice@example.com",
			"password": "wrong-password",
		})

		handler.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown Email", func(t *testing.T) {
		handler, mock := setupAuthHandler(t)

		mock.ExpectQuery(`(?s)SELECT (.+) FROM users WHERE email`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		c, w := newJSONContext(t, gin.H{
			"email":    "nobody@example.com",
			"password": "supersecret",
		})

		handler.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unverified Email", func(t *testing.T) {
		handler, mock := setupAuthHandler(t)

		mock.ExpectQuery(`(?s)SELECT (.+) FROM users WHERE email`).
			WithArgs("alice@example.com").
			WillReturnRows(userRow(false))

		c, w := newJSONContext(t, gin.H{
			"email":    "alice@example.com",
			"password": "supersecret",
		})

		handler.Login(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVerifyEmailHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mock := setupAuthHandler(t)

		mock.ExpectExec(`(?s)UPDATE users\s+SET email_verified`).
			WithArgs(sqlmock.AnyArg(), "token-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/?token=token-1", nil)

		handler.VerifyEmail(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Token", func(t *testing.T) {
		handler, _ := setupAuthHandler(t)

		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		handler.VerifyEmail(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
