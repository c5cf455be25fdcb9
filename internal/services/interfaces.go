package services

import (
	"context"

	"surfpass/internal/models"
)

// ProductType identifies which purchase flow an orchestrator drives
type ProductType string

const (
	ProductSession      ProductType = "session"
	ProductSeasonTicket ProductType = "season_ticket"
	ProductCertificate  ProductType = "certificate"
)

// BookingAPIInterface defines the booking endpoints the orchestration
// core consumes. Implemented by APIClient; mocked in tests.
type BookingAPIInterface interface {
	CreateBooking(ctx context.Context, sessionID, idempotencyKey string) (*models.Booking, error)
	ListMyBookings(ctx context.Context, filter BookingFilter) ([]*models.Booking, error)
}

// PaymentAPIInterface defines the idempotent purchase/payment endpoints.
// The idempotency key is always supplied by the caller; it is never
// generated in the client.
type PaymentAPIInterface interface {
	CreateBookingPayment(ctx context.Context, bookingID string, methods models.PaymentMethodsRequest, idempotencyKey string) (*models.Payment, error)
	PurchaseSeasonTicket(ctx context.Context, planID string, methods models.PaymentMethodsRequest, idempotencyKey string) (*models.Payment, error)
	PurchaseCertificate(ctx context.Context, req CertificatePurchaseRequest, methods models.PaymentMethodsRequest, idempotencyKey string) (*CertificatePurchaseResult, error)
}

// HostBridgeInterface is the chat-platform mini-app runtime the client
// runs inside. OpenInvoice blocks until the host resolves the payment
// dialog and returns a terminal status string (paid|cancelled|failed|
// pending|<other>).
type HostBridgeInterface interface {
	IsHostEnvironment(ctx context.Context) (bool, error)
	OpenInvoice(ctx context.Context, slug string) (string, error)
}

// NavigatorInterface is the external navigation collaborator: success
// screens after a settled purchase and non-blocking external redirects.
type NavigatorInterface interface {
	ShowSuccess(ctx context.Context, product ProductType, ref string) error
	OpenExternalURL(ctx context.Context, url string) error
}

// ErrorPresenterInterface is the single UI error slot. It is cleared at
// the start of each attempt and written at most once per attempt.
type ErrorPresenterInterface interface {
	ShowError(message string)
	Clear()
}

// ReauthHandlerInterface is the external re-authentication collaborator.
// AUTH_REQUIRED failures are handed to it silently.
type ReauthHandlerInterface interface {
	RequireReauth(ctx context.Context)
}

// BookingFilter narrows a bookings listing
type BookingFilter struct {
	SessionID string
	Status    models.BookingStatus
}

// CertificatePurchaseRequest describes what certificate to buy
type CertificatePurchaseRequest struct {
	Kind        models.CertificateKind `json:"kind"`
	AmountMinor int64                  `json:"amount_minor,omitempty"`
	Passes      int                    `json:"passes,omitempty"`
}

// CertificatePurchaseResult is returned by POST /certificates
type CertificatePurchaseResult struct {
	Certificate models.Certificate `json:"certificate"`
	Payment     models.Payment     `json:"payment"`
}

// CertificateFunding applies a previously issued gift certificate as a
// fixed-value funding source.
type CertificateFunding struct {
	CertificateID string `validate:"required"`
	BalanceMinor  int64  `validate:"gte=0"`
}

// PassFunding redeems one season-ticket pass for the purchase
type PassFunding struct {
	PassID string `validate:"required"`
}

// FundingSelection captures which funding sources the user toggled on.
// Zero value means "pay the full price by card".
type FundingSelection struct {
	Certificate        *CertificateFunding `validate:"omitempty"`
	SeasonPass         *PassFunding        `validate:"omitempty"`
	LoyaltyAmountMinor int64               `validate:"gte=0"`
}

// SessionPurchaseSelection is the input to the session orchestrator
type SessionPurchaseSelection struct {
	SessionID string `validate:"required"`
	Funding   FundingSelection
}

// SeasonTicketSelection is the input to the season-ticket orchestrator
type SeasonTicketSelection struct {
	PlanID  string       `validate:"required"`
	Price   models.Money `validate:"required"`
	Funding FundingSelection
}

// CertificateSelection is the input to the certificate orchestrator
type CertificateSelection struct {
	Kind        models.CertificateKind `validate:"required,oneof=denomination passes"`
	AmountMinor int64                  `validate:"gte=0"`
	Passes      int                    `validate:"gte=0"`
	Currency    string
	Funding     FundingSelection
}
