package models

import (
	"fmt"
	"time"
)

// BookingStatus represents the booking lifecycle status
type BookingStatus string

const (
	// BookingStatusBooked is the initial status of every booking.
	BookingStatusBooked BookingStatus = "Booked"
	// BookingStatusCompleted is set by an administrative completion event;
	// nothing in the requester-facing flow transitions a booking here.
	BookingStatusCompleted BookingStatus = "Completed"
)

// Booking is a frozen, priced request for a service at a chosen date/time,
// owned by one requester. Pricing fields are snapshotted at creation and
// never recomputed; currency fields are two-decimal strings on the wire.
type Booking struct {
	ID            string        `json:"id" db:"id"`
	ServiceID     string        `json:"serviceId" db:"service_id"`
	ServiceName   string        `json:"serviceName" db:"service_name"`
	OwnerEmail    string        `json:"email" db:"owner_email"`
	ServiceAmount string        `json:"serviceAmount" db:"service_amount"`
	GSTAmount     string        `json:"gstAmount" db:"gst_amount"`
	TotalAmount   string        `json:"totalAmount" db:"total_amount"`
	ScheduledDate string        `json:"scheduledDate" db:"scheduled_date"`
	ScheduledTime string        `json:"scheduledTime" db:"scheduled_time"`
	Note          string        `json:"note" db:"note"`
	Status        BookingStatus `json:"status" db:"status"`
	PaymentMethod string        `json:"paymentMethod" db:"payment_method"`
	ImageURL      *string       `json:"image,omitempty" db:"image_url"`
	Review        *string       `json:"review,omitempty" db:"review"`
	Rating        *int          `json:"rating,omitempty" db:"rating"`
	CreatedAt     time.Time     `json:"createdAt" db:"created_at"`
}

// IsReviewed reports whether a review has already been attached
func (b *Booking) IsReviewed() bool {
	return b.Review != nil
}

// CreateBookingRequest is the selection supplied by the presentation boundary
type CreateBookingRequest struct {
	ServiceID     string `json:"serviceId" binding:"required"`
	ScheduledDate string `json:"scheduledDate" binding:"required"`
	ScheduledTime string `json:"scheduledTime" binding:"required"`
	Note          string `json:"note"`
	PaymentMethod string `json:"paymentMethod"`
}

// Validate validates the booking selection beyond binding tags
func (r *CreateBookingRequest) Validate() error {
	if _, err := time.Parse("2006-01-02", r.ScheduledDate); err != nil {
		return fmt.Errorf("scheduledDate must be YYYY-MM-DD")
	}
	return nil
}

// SubmitReviewRequest carries the one-time review attachment
type SubmitReviewRequest struct {
	Review string `json:"review"`
	Rating int    `json:"rating"`
}
