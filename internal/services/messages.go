package services

import "surfpass/internal/models"

// User-facing messages for each failure kind. AUTH_REQUIRED deliberately
// maps to an empty string: the attempt is abandoned silently and handed
// to the re-authentication collaborator instead.
var failureMessages = map[models.FailureKind]string{
	models.KindAuthRequired:         "",
	models.KindAmountMismatch:       "The session price has changed. Please refresh and try again.",
	models.KindProviderUnavailable:  "The payment provider is temporarily unavailable. Please try again in a minute.",
	models.KindInvalidAmount:        "The entered amount is invalid.",
	models.KindAmountTooLow:         "The amount is below the minimum for a gift certificate.",
	models.KindNoSeats:              "No seats left in this session.",
	models.KindHoldExpired:          "Your seat reservation expired. Please book again.",
	models.KindNotFound:             "This offer is no longer available.",
	models.KindConflictExistingHold: "You already have a pending booking for this session.",
	models.KindGeneric:              "Something went wrong while processing the payment. Please try again.",
}

// messageCancelled is shown when the user dismisses the payment dialog
const messageCancelled = "Payment was cancelled."

// UserMessage returns the localized message for a failure kind, or the
// generic fallback for an unknown kind. An empty return means "surface
// nothing".
func UserMessage(kind models.FailureKind) string {
	if msg, ok := failureMessages[kind]; ok {
		return msg
	}
	return failureMessages[models.KindGeneric]
}
