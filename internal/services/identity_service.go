package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/homeserve/booking-backend/internal/models"
)

// idSeparator joins the segments of a booking id. Owner emails may legally
// contain it, so DecodeBookingID splits from the right: the trailing two
// segments (service id, epoch millis) never contain an underscore.
const idSeparator = "_"

// BookingIdentity holds the owner and service reference recovered from a
// composite booking id.
type BookingIdentity struct {
	OwnerEmail string
	ServiceID  string
	CreatedAt  time.Time
}

// MintBookingID derives the booking identifier from the owner, the service
// and the creation instant: <ownerEmail>_<serviceId>_<epochMillis>. Two
// bookings minted in the same millisecond for the same owner and service
// collide; the lifecycle handles that by retrying create once with a fresh
// id.
func MintBookingID(ownerEmail, serviceID string, at time.Time) string {
	return ownerEmail + idSeparator + serviceID + idSeparator + strconv.FormatInt(at.UnixMilli(), 10)
}

// DecodeBookingID recovers the owner, service id and creation instant from a
// composite booking id. Access control must use the stored owner column, not
// this decode; the id is otherwise treated as an opaque unique key.
func DecodeBookingID(id string) (*BookingIdentity, error) {
	lastSep := strings.LastIndex(id, idSeparator)
	if lastSep <= 0 {
		return nil, fmt.Errorf("malformed booking id %q: %w", id, models.ErrNotFound)
	}

	millis, err := strconv.ParseInt(id[lastSep+1:], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed booking id %q: %w", id, models.ErrNotFound)
	}

	rest := id[:lastSep]
	svcSep := strings.LastIndex(rest, idSeparator)
	if svcSep <= 0 || svcSep == len(rest)-1 {
		return nil, fmt.Errorf("malformed booking id %q: %w", id, models.ErrNotFound)
	}

	return &BookingIdentity{
		OwnerEmail: rest[:svcSep],
		ServiceID:  rest[svcSep+1:],
		CreatedAt:  time.UnixMilli(millis).UTC(),
	}, nil
}
