package models

// PaymentStatus represents the provider-declared state of a payment
type PaymentStatus string

const (
	PaymentRequiresAction PaymentStatus = "REQUIRES_ACTION"
	PaymentPending        PaymentStatus = "PENDING"
	PaymentSucceeded      PaymentStatus = "SUCCEEDED"
	PaymentFailed         PaymentStatus = "FAILED"
	PaymentCanceled       PaymentStatus = "CANCELED"
)

// NextActionType discriminates the follow-up step a payment declares
type NextActionType string

const (
	NextActionNone        NextActionType = "none"
	NextActionOpenInvoice NextActionType = "open_invoice"
	NextActionRedirect    NextActionType = "redirect"
)

// NextAction is the server-declared follow-up required to complete a
// payment: open the host payment dialog, redirect to an external
// checkout, or nothing (already settled by non-interactive funding).
type NextAction struct {
	Type        NextActionType `json:"type"`
	InvoiceSlug string         `json:"invoice_slug,omitempty"`
	RedirectURL string         `json:"redirect_url,omitempty"`
}

// Payment represents a payment intent returned by the booking API
type Payment struct {
	ID         string        `json:"id"`
	BookingID  string        `json:"booking_id,omitempty"`
	Status     PaymentStatus `json:"status"`
	Amount     Money         `json:"amount"`
	Provider   string        `json:"provider"`
	NextAction NextAction    `json:"next_action"`
}

// IsTerminal reports whether the payment has reached a final state
func (p *Payment) IsTerminal() bool {
	switch p.Status {
	case PaymentSucceeded, PaymentFailed, PaymentCanceled:
		return true
	}
	return false
}
