package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surfpass/internal/models"
	"surfpass/pkg/logger"
)

// mockBookingAPI is an in-memory BookingAPIInterface for tests
type mockBookingAPI struct {
	holds       []*models.Booking
	listErr     error
	createErr   error
	createCalls int
	createKeys  []string
}

func (m *mockBookingAPI) CreateBooking(ctx context.Context, sessionID, idempotencyKey string) (*models.Booking, error) {
	m.createCalls++
	m.createKeys = append(m.createKeys, idempotencyKey)
	if m.createErr != nil {
		return nil, m.createErr
	}
	expires := time.Now().Add(10 * time.Minute)
	return &models.Booking{
		ID:            "bk-new",
		SessionID:     sessionID,
		Status:        models.BookingHold,
		HoldExpiresAt: &expires,
		Price:         models.Money{AmountMinor: 790000, Currency: "RUB"},
	}, nil
}

func (m *mockBookingAPI) ListMyBookings(ctx context.Context, filter BookingFilter) ([]*models.Booking, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*models.Booking
	for _, b := range m.holds {
		if filter.SessionID != "" && b.SessionID != filter.SessionID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func holdBooking(id, sessionID string, expiresIn time.Duration) *models.Booking {
	expires := time.Now().Add(expiresIn)
	return &models.Booking{
		ID:            id,
		SessionID:     sessionID,
		Status:        models.BookingHold,
		HoldExpiresAt: &expires,
		Price:         models.Money{AmountMinor: 790000, Currency: "RUB"},
	}
}

func TestEnsureBooking_ReusesExistingHold(t *testing.T) {
	api := &mockBookingAPI{holds: []*models.Booking{holdBooking("bk-1", "sess-1", 5*time.Minute)}}
	m := NewBookingHoldManager(api, logger.Discard())

	booking, err := m.EnsureBooking(context.Background(), "sess-1", "attempt-1")

	require.NoError(t, err)
	assert.Equal(t, "bk-1", booking.ID)
	// Reuse means no booking-creation call and no second seat decrement.
	assert.Zero(t, api.createCalls)
}

func TestEnsureBooking_IgnoresExpiredHold(t *testing.T) {
	api := &mockBookingAPI{holds: []*models.Booking{holdBooking("bk-old", "sess-1", -time.Minute)}}
	m := NewBookingHoldManager(api, logger.Discard())

	booking, err := m.EnsureBooking(context.Background(), "sess-1", "attempt-1")

	require.NoError(t, err)
	assert.Equal(t, "bk-new", booking.ID)
	assert.Equal(t, 1, api.createCalls)
}

func TestEnsureBooking_CreatesWithDerivedKey(t *testing.T) {
	api := &mockBookingAPI{}
	m := NewBookingHoldManager(api, logger.Discard())

	_, err := m.EnsureBooking(context.Background(), "sess-1", "attempt-1")
	require.NoError(t, err)

	require.Len(t, api.createKeys, 1)
	assert.Equal(t, DeriveIdempotencyKey("booking", "sess-1", "attempt-1"), api.createKeys[0])
	assert.NoError(t, ValidateIdempotencyKey(api.createKeys[0]))
}

func TestEnsureBooking_MapsNoSeats(t *testing.T) {
	api := &mockBookingAPI{createErr: &models.APIError{Status: 409, Code: models.CodeNoSeats, Message: "session full"}}
	m := NewBookingHoldManager(api, logger.Discard())

	_, err := m.EnsureBooking(context.Background(), "sess-1", "attempt-1")

	assert.ErrorIs(t, err, models.ErrNoSeats)
}

func TestEnsureBooking_MapsSessionNotFound(t *testing.T) {
	api := &mockBookingAPI{createErr: &models.APIError{Status: 404, Code: models.CodeSessionNotFound, Message: "no such session"}}
	m := NewBookingHoldManager(api, logger.Discard())

	_, err := m.EnsureBooking(context.Background(), "sess-missing", "attempt-1")

	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}
