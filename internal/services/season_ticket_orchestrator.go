package services

import (
	"context"
	"fmt"

	"surfpass/internal/models"
)

// SeasonTicketOrchestrator drives the purchase of a season-ticket plan
type SeasonTicketOrchestrator struct {
	orchestrator
}

// NewSeasonTicketOrchestrator creates the season-ticket purchase flow
func NewSeasonTicketOrchestrator(deps OrchestratorDeps) *SeasonTicketOrchestrator {
	return &SeasonTicketOrchestrator{orchestrator: newOrchestrator(deps)}
}

// ProcessPayment runs one season-ticket purchase attempt end to end
func (o *SeasonTicketOrchestrator) ProcessPayment(ctx context.Context, sel SeasonTicketSelection) error {
	if err := o.acquire(); err != nil {
		return err
	}
	defer o.release()

	o.deps.Presenter.Clear()
	if err := o.validate.Struct(sel); err != nil {
		return o.fail(ctx, nil, fmt.Errorf("%w: %v", models.ErrMissingSelection, err))
	}
	if !sel.Price.IsPositive() {
		return o.fail(ctx, nil, fmt.Errorf("%w: plan price must be positive", models.ErrInvalidAmount))
	}

	attempt := o.deps.Recorder.StartAttempt("season-ticket-purchase")
	methods := ComposePaymentMethods(sel.Funding, sel.Price)
	key := DeriveIdempotencyKey("season-ticket", sel.PlanID, attempt.ID)
	payment, err := o.deps.Payments.PurchaseSeasonTicket(ctx, sel.PlanID, methods, key)
	if err != nil {
		return o.fail(ctx, attempt, err)
	}

	o.deps.Logger.LogPaymentCreated(ctx, payment.ID, payment.Provider, string(payment.NextAction.Type))
	outcome, rerr := o.deps.Resolver.Resolve(ctx, payment, attempt)
	return o.finish(ctx, attempt, outcome, rerr, ProductSeasonTicket, payment.ID)
}
