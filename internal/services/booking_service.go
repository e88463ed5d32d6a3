package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/homeserve/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// CatalogResolver resolves a service id to its priced definition
type CatalogResolver interface {
	Resolve(serviceID string) (*models.ServiceDefinition, error)
}

// BookingStore is the persistence contract the lifecycle depends on
type BookingStore interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	ListAll() ([]models.Booking, error)
	ListByOwner(ownerEmail string) ([]models.Booking, error)
	UpdateReview(id, review string, rating int) error
	UpdateStatus(id string, status models.BookingStatus) error
	Delete(id string) error
}

// BookingService orchestrates the booking lifecycle: create, list, cancel,
// review and the administrative completion event. The owner identity is an
// explicit parameter on every call, never ambient state.
type BookingService struct {
	catalog CatalogResolver
	store   BookingStore
	pricing *PricingService
	logger  *logrus.Logger

	now func() time.Time
}

// NewBookingService creates a new BookingService
func NewBookingService(catalog CatalogResolver, store BookingStore, pricing *PricingService, logger *logrus.Logger) *BookingService {
	return &BookingService{
		catalog: catalog,
		store:   store,
		pricing: pricing,
		logger:  logger,
		now:     time.Now,
	}
}

// Create resolves the selected service, prices it, mints the booking id and
// persists the frozen snapshot with status Booked. A create that collides on
// id is retried exactly once with a freshly minted id before the conflict is
// surfaced.
func (s *BookingService) Create(ownerEmail string, req *models.CreateBookingRequest) (*models.Booking, error) {
	if ownerEmail == "" {
		return nil, fmt.Errorf("booking requires an owner: %w", models.ErrNotAuthenticated)
	}

	svc, err := s.catalog.Resolve(req.ServiceID)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricing.Price(svc.Amount)
	if err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	booking := &models.Booking{
		ID:            MintBookingID(ownerEmail, svc.ID, createdAt),
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		OwnerEmail:    ownerEmail,
		ServiceAmount: FormatAmount(quote.ServiceAmount),
		GSTAmount:     FormatAmount(quote.GSTAmount),
		TotalAmount:   FormatAmount(quote.TotalAmount),
		ScheduledDate: req.ScheduledDate,
		ScheduledTime: req.ScheduledTime,
		Note:          req.Note,
		Status:        models.BookingStatusBooked,
		PaymentMethod: req.PaymentMethod,
		ImageURL:      svc.ImageURL,
		CreatedAt:     createdAt,
	}

	if err := s.store.Create(booking); err != nil {
		if !errors.Is(err, models.ErrConflict) {
			return nil, err
		}

		// Same owner, service and millisecond: mint a fresh id and retry once.
		retryAt := s.now().UTC()
		if !retryAt.After(createdAt) {
			retryAt = createdAt.Add(time.Millisecond)
		}
		booking.ID = MintBookingID(ownerEmail, svc.ID, retryAt)
		booking.CreatedAt = retryAt

		s.logger.WithFields(logrus.Fields{
			"owner":   ownerEmail,
			"service": svc.ID,
		}).Warn("Booking id collision, retrying with fresh id")

		if err := s.store.Create(booking); err != nil {
			return nil, err
		}
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"owner":      ownerEmail,
		"total":      booking.TotalAmount,
	}).Info("Booking created")

	return booking, nil
}

// List returns the owner's bookings, most recent first. An owner with no
// bookings gets an empty slice; a store failure is surfaced as an error so
// callers never conflate "no bookings" with "store unreachable".
func (s *BookingService) List(ownerEmail string) ([]models.Booking, error) {
	if ownerEmail == "" {
		return nil, fmt.Errorf("listing requires an owner: %w", models.ErrNotAuthenticated)
	}

	bookings, err := s.store.ListByOwner(ownerEmail)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	return bookings, nil
}

// ListAll returns every booking regardless of owner. Administrative surface
// only; requester-facing callers must use List.
func (s *BookingService) ListAll() ([]models.Booking, error) {
	bookings, err := s.store.ListAll()
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}

	return bookings, nil
}

// Cancel deletes the owner's booking. Deletion is permitted from either
// status; ownership is checked against the stored owner column.
func (s *BookingService) Cancel(ownerEmail, bookingID string) error {
	if ownerEmail == "" {
		return fmt.Errorf("cancel requires an owner: %w", models.ErrNotAuthenticated)
	}

	booking, err := s.store.GetByID(bookingID)
	if err != nil {
		return err
	}
	if booking.OwnerEmail != ownerEmail {
		return fmt.Errorf("booking %s belongs to another owner: %w", bookingID, models.ErrForbidden)
	}

	if err := s.store.Delete(bookingID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"owner":      ownerEmail,
	}).Info("Booking cancelled")

	return nil
}

// SubmitReview attaches a review and rating to a completed booking. The
// attach is monotonic: once a review exists the booking accepts no further
// edits. Rating must be an integer in [0,5].
func (s *BookingService) SubmitReview(ownerEmail, bookingID, review string, rating int) error {
	if ownerEmail == "" {
		return fmt.Errorf("review requires an owner: %w", models.ErrNotAuthenticated)
	}
	if rating < 0 || rating > 5 {
		return fmt.Errorf("rating %d outside 0-5: %w", rating, models.ErrInvalidRating)
	}

	booking, err := s.store.GetByID(bookingID)
	if err != nil {
		return err
	}
	if booking.OwnerEmail != ownerEmail {
		return fmt.Errorf("booking %s belongs to another owner: %w", bookingID, models.ErrForbidden)
	}
	if booking.Status != models.BookingStatusCompleted {
		return fmt.Errorf("booking %s is not completed: %w", bookingID, models.ErrInvalidState)
	}
	if booking.IsReviewed() {
		return fmt.Errorf("booking %s already reviewed: %w", bookingID, models.ErrInvalidState)
	}

	if err := s.store.UpdateReview(bookingID, review, rating); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"rating":     rating,
	}).Info("Review submitted")

	return nil
}

// MarkCompleted records the external completion event for a booking. The
// requester-facing flow never calls this; it is an administrative input the
// lifecycle reacts to.
func (s *BookingService) MarkCompleted(bookingID string) error {
	booking, err := s.store.GetByID(bookingID)
	if err != nil {
		return err
	}
	if booking.Status == models.BookingStatusCompleted {
		return nil
	}

	return s.store.UpdateStatus(bookingID, models.BookingStatusCompleted)
}
