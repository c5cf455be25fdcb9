package models

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingHold      BookingStatus = "HOLD"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingExpired   BookingStatus = "EXPIRED"
)

// Booking reserves a seat in a surf session for a bounded time pending
// payment. The hold TTL is server-owned; the client only observes it.
type Booking struct {
	ID            string        `json:"id"`
	SessionID     string        `json:"session_id"`
	Status        BookingStatus `json:"status"`
	HoldExpiresAt *time.Time    `json:"hold_expires_at,omitempty"`
	Price         Money         `json:"price"`
	CreatedAt     time.Time     `json:"created_at"`
}

// IsHold reports whether the booking is still in the HOLD state
func (b *Booking) IsHold() bool {
	return b.Status == BookingHold
}

// IsActiveHold reports whether the booking is a HOLD whose TTL has not
// elapsed at the given instant. A hold without an expiry hint is treated
// as active; the server rejects payment against it if it has expired.
func (b *Booking) IsActiveHold(now time.Time) bool {
	if b.Status != BookingHold {
		return false
	}
	if b.HoldExpiresAt == nil {
		return true
	}
	return now.Before(*b.HoldExpiresAt)
}
