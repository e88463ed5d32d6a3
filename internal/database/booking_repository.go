package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/homeserve/booking-backend/internal/models"
	"github.com/lib/pq"
)

// BookingRepository handles booking persistence. Records live in a single
// flat bookings table keyed by the synthetic composite id; owner_email and
// service_id are stored as explicit columns so ownership filtering never
// depends on parsing the id.
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, service_id, service_name, owner_email,
	       service_amount, gst_amount, total_amount,
	       scheduled_date, scheduled_time, note,
	       status, payment_method, image_url, review, rating, created_at`

// isUniqueViolation reports whether err is a Postgres duplicate-key error
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Create persists a new booking atomically.
// Returns models.ErrConflict when the id already exists.
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, service_id, service_name, owner_email,
			service_amount, gst_amount, total_amount,
			scheduled_date, scheduled_time, note,
			status, payment_method, image_url, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)`

	_, err := r.db.Exec(query,
		booking.ID, booking.ServiceID, booking.ServiceName, booking.OwnerEmail,
		booking.ServiceAmount, booking.GSTAmount, booking.TotalAmount,
		booking.ScheduledDate, booking.ScheduledTime, booking.Note,
		booking.Status, booking.PaymentMethod, booking.ImageURL, booking.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("booking id %s already exists: %w", booking.ID, models.ErrConflict)
		}
		return fmt.Errorf("failed to create booking: %w: %v", models.ErrStoreUnavailable, err)
	}

	return nil
}

// GetByID retrieves one booking.
// Returns models.ErrNotFound when the id is absent.
func (r *BookingRepository) GetByID(id string) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	err := r.db.Get(booking, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch booking: %w: %v", models.ErrStoreUnavailable, err)
	}

	return booking, nil
}

// ListAll retrieves every booking record, most recent first.
// Ownership filtering is the caller's responsibility; requester-facing code
// must use ListByOwner instead.
func (r *BookingRepository) ListAll() ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	var bookings []models.Booking
	if err := r.db.Select(&bookings, query); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w: %v", models.ErrStoreUnavailable, err)
	}

	return bookings, nil
}

// ListByOwner retrieves all bookings for one owner, most recent first.
// An owner with no bookings yields an empty slice, not an error.
func (r *BookingRepository) ListByOwner(ownerEmail string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
		WHERE owner_email = $1
		ORDER BY created_at DESC`

	var bookings []models.Booking
	if err := r.db.Select(&bookings, query, ownerEmail); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w: %v", models.ErrStoreUnavailable, err)
	}

	return bookings, nil
}

// UpdateReview attaches a review and rating to a booking, leaving every
// other field untouched. Returns models.ErrNotFound when the id is absent.
func (r *BookingRepository) UpdateReview(id, review string, rating int) error {
	query := `UPDATE bookings SET review = $1, rating = $2 WHERE id = $3`

	result, err := r.db.Exec(query, review, rating, id)
	if err != nil {
		return fmt.Errorf("failed to update review: %w: %v", models.ErrStoreUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check review update: %w: %v", models.ErrStoreUnavailable, err)
	}
	if rows == 0 {
		return fmt.Errorf("booking %s: %w", id, models.ErrNotFound)
	}

	return nil
}

// UpdateStatus transitions a booking's status.
// Returns models.ErrNotFound when the id is absent.
func (r *BookingRepository) UpdateStatus(id string, status models.BookingStatus) error {
	query := `UPDATE bookings SET status = $1 WHERE id = $2`

	result, err := r.db.Exec(query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w: %v", models.ErrStoreUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update: %w: %v", models.ErrStoreUnavailable, err)
	}
	if rows == 0 {
		return fmt.Errorf("booking %s: %w", id, models.ErrNotFound)
	}

	return nil
}

// Delete removes a booking.
// Returns models.ErrNotFound when the id is absent.
func (r *BookingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w: %v", models.ErrStoreUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check booking delete: %w: %v", models.ErrStoreUnavailable, err)
	}
	if rows == 0 {
		return fmt.Errorf("booking %s: %w", id, models.ErrNotFound)
	}

	return nil
}
