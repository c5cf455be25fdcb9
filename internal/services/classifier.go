package services

import (
	"context"
	"errors"
	"net"
	"strings"

	"surfpass/internal/models"
)

// Classify maps any failure to exactly one FailureKind. It is total: it
// never panics and always returns a value, so every error path funnels
// into the same fixed taxonomy.
//
// Structured API error codes are authoritative. Keyword matching on
// free-text messages exists only for older API responses that carry no
// code, and the keyword set is not assumed complete: anything it misses
// falls through to GENERIC.
func Classify(err error) models.FailureKind {
	if err == nil {
		return models.KindGeneric
	}

	// Sentinels raised locally before or during orchestration.
	switch {
	case errors.Is(err, models.ErrNoSeats):
		return models.KindNoSeats
	case errors.Is(err, models.ErrSessionNotFound):
		return models.KindNotFound
	case errors.Is(err, models.ErrHoldExpired):
		return models.KindHoldExpired
	case errors.Is(err, models.ErrAmountTooLow):
		return models.KindAmountTooLow
	case errors.Is(err, models.ErrInvalidAmount), errors.Is(err, models.ErrMissingSelection):
		return models.KindInvalidAmount
	}

	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		if kind, ok := classifyCode(apiErr.Code); ok {
			return kind
		}
		if kind, ok := classifyStatus(apiErr.Status); ok {
			return kind
		}
		if kind, ok := classifyMessage(apiErr.Message); ok {
			return kind
		}
		return models.KindGeneric
	}

	// Transport-level failures: the provider or network did not answer.
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return models.KindProviderUnavailable
	}

	if kind, ok := classifyMessage(err.Error()); ok {
		return kind
	}
	return models.KindGeneric
}

func classifyCode(code models.ErrorCode) (models.FailureKind, bool) {
	switch code {
	case models.CodeAuthRequired:
		return models.KindAuthRequired, true
	case models.CodeAmountMismatch:
		return models.KindAmountMismatch, true
	case models.CodeProviderUnavailable:
		return models.KindProviderUnavailable, true
	case models.CodeInvalidAmount:
		return models.KindInvalidAmount, true
	case models.CodeAmountTooLow:
		return models.KindAmountTooLow, true
	case models.CodeNoSeats:
		return models.KindNoSeats, true
	case models.CodeHoldExpired:
		return models.KindHoldExpired, true
	case models.CodeNotFound, models.CodeSessionNotFound:
		return models.KindNotFound, true
	case models.CodeActiveBookingExists:
		return models.KindConflictExistingHold, true
	}
	return "", false
}

func classifyStatus(status int) (models.FailureKind, bool) {
	switch status {
	case 401, 403:
		return models.KindAuthRequired, true
	case 404:
		return models.KindNotFound, true
	case 502, 503, 504:
		return models.KindProviderUnavailable, true
	}
	return "", false
}

// classifyMessage matches known substrings of legacy free-text errors
func classifyMessage(message string) (models.FailureKind, bool) {
	msg := strings.ToLower(message)
	switch {
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "auth required"):
		return models.KindAuthRequired, true
	case strings.Contains(msg, "amount mismatch"):
		return models.KindAmountMismatch, true
	case strings.Contains(msg, "provider unavailable"), strings.Contains(msg, "payment provider"):
		return models.KindProviderUnavailable, true
	case strings.Contains(msg, "minimum amount"), strings.Contains(msg, "amount too low"):
		return models.KindAmountTooLow, true
	case strings.Contains(msg, "invalid amount"):
		return models.KindInvalidAmount, true
	case strings.Contains(msg, "no seats"), strings.Contains(msg, "sold out"), strings.Contains(msg, "no free places"):
		return models.KindNoSeats, true
	case strings.Contains(msg, "hold expired"), strings.Contains(msg, "booking expired"):
		return models.KindHoldExpired, true
	case strings.Contains(msg, "active booking"), strings.Contains(msg, "existing hold"):
		return models.KindConflictExistingHold, true
	case strings.Contains(msg, "not found"):
		return models.KindNotFound, true
	}
	return "", false
}
