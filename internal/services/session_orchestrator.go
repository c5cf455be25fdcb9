package services

import (
	"context"
	"fmt"

	"surfpass/internal/models"
)

// SessionPurchaseOrchestrator drives the purchase of a single surf
// session: hold a seat, compose funding, create the payment and resolve
// its next action.
type SessionPurchaseOrchestrator struct {
	orchestrator
}

// NewSessionPurchaseOrchestrator creates the session purchase flow
func NewSessionPurchaseOrchestrator(deps OrchestratorDeps) *SessionPurchaseOrchestrator {
	return &SessionPurchaseOrchestrator{orchestrator: newOrchestrator(deps)}
}

// ProcessPayment runs one session purchase attempt end to end
func (o *SessionPurchaseOrchestrator) ProcessPayment(ctx context.Context, sel SessionPurchaseSelection) error {
	if err := o.acquire(); err != nil {
		return err
	}
	defer o.release()

	o.deps.Presenter.Clear()
	if err := o.validate.Struct(sel); err != nil {
		return o.fail(ctx, nil, fmt.Errorf("%w: %v", models.ErrMissingSelection, err))
	}

	attempt := o.deps.Recorder.StartAttempt("session-purchase")
	booking, err := o.deps.Holds.EnsureBooking(ctx, sel.SessionID, attempt.ID)
	if err != nil {
		return o.fail(ctx, attempt, err)
	}

	methods := ComposePaymentMethods(sel.Funding, booking.Price)
	key := DeriveIdempotencyKey("session-payment", booking.ID, attempt.ID)
	payment, err := o.deps.Payments.CreateBookingPayment(ctx, booking.ID, methods, key)
	if err != nil && Classify(err) == models.KindConflictExistingHold {
		// The server refused because another active hold exists, which
		// happens when the hold listing was stale. Pay against the hold
		// the server knows about instead of surfacing the conflict. One
		// retry only; the re-derived key covers the new target.
		attempt.Record("conflict_recovery", booking.ID)
		existing, lookupErr := o.deps.Holds.FindActiveHold(ctx, sel.SessionID)
		if lookupErr == nil && existing != nil && existing.ID != booking.ID {
			booking = existing
			methods = ComposePaymentMethods(sel.Funding, booking.Price)
			key = DeriveIdempotencyKey("session-payment", booking.ID, attempt.ID)
			payment, err = o.deps.Payments.CreateBookingPayment(ctx, booking.ID, methods, key)
		}
	}
	if err != nil {
		return o.fail(ctx, attempt, err)
	}

	o.deps.Logger.LogPaymentCreated(ctx, payment.ID, payment.Provider, string(payment.NextAction.Type))
	outcome, rerr := o.deps.Resolver.Resolve(ctx, payment, attempt)
	return o.finish(ctx, attempt, outcome, rerr, ProductSession, booking.ID)
}
