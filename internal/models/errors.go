package models

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrNoSeats            = errors.New("no seats left in session")
	ErrHoldExpired        = errors.New("booking hold has expired")
	ErrAmountTooLow       = errors.New("amount is below the allowed minimum")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrMissingSelection   = errors.New("required selection is missing")
	ErrPurchaseInProgress = errors.New("another purchase is already in progress")
	ErrNotHostEnvironment = errors.New("payment dialog is only available inside the host mini-app")
	ErrDialogInFlight     = errors.New("payment dialog is already open for this payment")
	ErrPaymentCancelled   = errors.New("payment was cancelled")
)

// ErrorCode is the structured error code returned by the booking API.
// Free-text messages still arrive on older API versions, so classification
// falls back to keyword matching when the code is empty.
type ErrorCode string

const (
	CodeAuthRequired        ErrorCode = "AUTH_REQUIRED"
	CodeAmountMismatch      ErrorCode = "AMOUNT_MISMATCH"
	CodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	CodeInvalidAmount       ErrorCode = "INVALID_AMOUNT"
	CodeAmountTooLow        ErrorCode = "AMOUNT_TOO_LOW"
	CodeNoSeats             ErrorCode = "NO_SEATS"
	CodeHoldExpired         ErrorCode = "HOLD_EXPIRED"
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeSessionNotFound     ErrorCode = "SESSION_NOT_FOUND"
	CodeActiveBookingExists ErrorCode = "ACTIVE_BOOKING_EXISTS"
)

// APIError represents an error response from the booking API
type APIError struct {
	Status  int       `json:"-"`
	Code    ErrorCode `json:"code,omitempty"`
	Message string    `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// FailureKind is the stable failure taxonomy surfaced to the UI layer.
// Every error that reaches the user maps to exactly one of these.
type FailureKind string

const (
	KindAuthRequired         FailureKind = "AUTH_REQUIRED"
	KindAmountMismatch       FailureKind = "AMOUNT_MISMATCH"
	KindProviderUnavailable  FailureKind = "PROVIDER_UNAVAILABLE"
	KindInvalidAmount        FailureKind = "INVALID_AMOUNT"
	KindAmountTooLow         FailureKind = "AMOUNT_TOO_LOW"
	KindNoSeats              FailureKind = "NO_SEATS"
	KindHoldExpired          FailureKind = "HOLD_EXPIRED"
	KindNotFound             FailureKind = "NOT_FOUND"
	KindConflictExistingHold FailureKind = "CONFLICT_EXISTING_HOLD"
	KindGeneric              FailureKind = "GENERIC"
)
