package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"surfpass/internal/models"
	"surfpass/pkg/logger"
)

// BookingHoldManager makes sure a HOLD booking exists for a session
// purchase. An existing unexpired hold is reused as-is; creating a
// second one would decrement the session's seats twice.
type BookingHoldManager struct {
	api BookingAPIInterface
	now func() time.Time
	log *logger.Logger
}

// NewBookingHoldManager creates a new hold manager
func NewBookingHoldManager(api BookingAPIInterface, log *logger.Logger) *BookingHoldManager {
	return &BookingHoldManager{
		api: api,
		now: time.Now,
		log: log,
	}
}

// EnsureBooking returns a HOLD booking for the session, reusing the
// user's existing unexpired hold or creating a new one with an
// idempotency key derived from the attempt. It does not touch any local
// cache; invalidation stays with the caller.
func (m *BookingHoldManager) EnsureBooking(ctx context.Context, sessionID, attemptID string) (*models.Booking, error) {
	existing, err := m.FindActiveHold(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		m.log.LogBookingHeld(ctx, existing.ID, sessionID, true)
		return existing, nil
	}

	key := DeriveIdempotencyKey("booking", sessionID, attemptID)
	booking, err := m.api.CreateBooking(ctx, sessionID, key)
	if err != nil {
		return nil, m.mapCreateError(err)
	}

	m.log.LogBookingHeld(ctx, booking.ID, sessionID, false)
	return booking, nil
}

// FindActiveHold looks up the current user's unexpired HOLD booking for
// the session, if any.
func (m *BookingHoldManager) FindActiveHold(ctx context.Context, sessionID string) (*models.Booking, error) {
	bookings, err := m.api.ListMyBookings(ctx, BookingFilter{
		SessionID: sessionID,
		Status:    models.BookingHold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing holds: %w", err)
	}

	now := m.now()
	for _, b := range bookings {
		if b.IsActiveHold(now) {
			return b, nil
		}
	}
	return nil, nil
}

// mapCreateError translates structured API errors into the sentinels the
// rest of the orchestration dispatches on.
func (m *BookingHoldManager) mapCreateError(err error) error {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case models.CodeNoSeats:
			return fmt.Errorf("%w: %s", models.ErrNoSeats, apiErr.Message)
		case models.CodeSessionNotFound, models.CodeNotFound:
			return fmt.Errorf("%w: %s", models.ErrSessionNotFound, apiErr.Message)
		}
	}
	return err
}
