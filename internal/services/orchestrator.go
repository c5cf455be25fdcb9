package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-playground/validator/v10"

	"surfpass/internal/diagnostics"
	"surfpass/internal/models"
	"surfpass/pkg/logger"
)

// OrchestratorDeps bundles the collaborators shared by all product
// orchestrators.
type OrchestratorDeps struct {
	Payments  PaymentAPIInterface
	Holds     *BookingHoldManager
	Resolver  *NextActionResolver
	Recorder  *diagnostics.Recorder
	Navigator NavigatorInterface
	Presenter ErrorPresenterInterface
	Reauth    ReauthHandlerInterface
	Logger    *logger.Logger
}

// orchestrator carries the state shared by the product orchestrators:
// the idle→running guard, local validation, and the common failure and
// outcome handling.
type orchestrator struct {
	deps     OrchestratorDeps
	validate *validator.Validate
	running  atomic.Bool
}

func newOrchestrator(deps OrchestratorDeps) orchestrator {
	return orchestrator{
		deps:     deps,
		validate: validator.New(),
	}
}

// acquire flips the guard from idle to running. At most one orchestration
// runs per orchestrator instance; a second ProcessPayment while one is in
// flight returns ErrPurchaseInProgress without any side effect.
func (o *orchestrator) acquire() error {
	if !o.running.CompareAndSwap(false, true) {
		return models.ErrPurchaseInProgress
	}
	return nil
}

func (o *orchestrator) release() {
	o.running.Store(false)
}

// fail classifies the error, ends the attempt and surfaces a localized
// message through the single UI error slot. AUTH_REQUIRED surfaces
// nothing and defers to the re-authentication collaborator instead.
func (o *orchestrator) fail(ctx context.Context, attempt *diagnostics.Attempt, err error) error {
	kind := Classify(err)
	if attempt != nil {
		attempt.Record("failure", string(kind))
		attempt.End(false, err)
	}

	if kind == models.KindAuthRequired {
		o.deps.Logger.InfoContext(ctx, "attempt abandoned, re-authentication required")
		if o.deps.Reauth != nil {
			o.deps.Reauth.RequireReauth(ctx)
		}
		return err
	}

	o.deps.Logger.ErrorWithContext(ctx, "purchase failed", err, map[string]interface{}{
		"kind": string(kind),
	})
	if msg := UserMessage(kind); msg != "" {
		o.deps.Presenter.ShowError(msg)
	}
	return err
}

// finish turns a resolver outcome into the attempt's final record and the
// product-specific success hand-off.
func (o *orchestrator) finish(ctx context.Context, attempt *diagnostics.Attempt, outcome Outcome, rerr error, product ProductType, successRef string) error {
	switch outcome.Status {
	case OutcomePaid:
		attempt.End(true, nil)
		if err := o.deps.Navigator.ShowSuccess(ctx, product, successRef); err != nil {
			o.deps.Logger.WarnContext(ctx, "success navigation failed", "error", err.Error())
		}
		return nil

	case OutcomePending:
		// Settlement arrives out-of-band; the attempt itself did its job.
		attempt.Record("pending", outcome.ProviderStatus)
		attempt.End(true, nil)
		return nil

	case OutcomeCancelled:
		attempt.End(false, models.ErrPaymentCancelled)
		o.deps.Presenter.ShowError(messageCancelled)
		return models.ErrPaymentCancelled

	default:
		if rerr == nil {
			rerr = fmt.Errorf("payment failed with provider status %q", outcome.ProviderStatus)
		}
		return o.fail(ctx, attempt, rerr)
	}
}
